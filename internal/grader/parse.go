package grader

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// stripCodeFences removes an optional markdown code fence wrapping a model
// reply. Models frequently wrap JSON in ```json ... ``` despite instructions.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// decodeValidated fence-strips a model reply, validates it against the named
// schema, and decodes it into dest. Any shape mismatch comes back as a plain
// error for the caller to convert into its typed failure.
func decodeValidated(name string, definition map[string]any, raw string, dest any) error {
	cleaned := stripCodeFences(raw)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(name, definition)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value, not raw bytes.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

// subScoreSchema is the {score, explanation} object shape shared by the
// letter grading sub-scores.
func subScoreSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"score"},
		"properties": map[string]any{
			"score":       map[string]any{"type": "number"},
			"explanation": map[string]any{"type": "string"},
		},
	}
}

// letterReplySchema is the expected shape of a letter grading reply:
// exactly the three AI-graded rubric keys.
var letterReplySchema = map[string]any{
	"type":     "object",
	"required": []any{"content_relevance", "layout_structure", "presentation"},
	"properties": map[string]any{
		"content_relevance": subScoreSchema(),
		"layout_structure":  subScoreSchema(),
		"presentation":      subScoreSchema(),
	},
}

// excelReplySchema is the expected shape of a spreadsheet grading reply.
var excelReplySchema = map[string]any{
	"type":     "object",
	"required": []any{"score", "feedback"},
	"properties": map[string]any{
		"score":    map[string]any{"type": "number"},
		"feedback": map[string]any{"type": "string"},
	},
}

// analysisReplySchema is the expected shape of a coaching analysis reply.
var analysisReplySchema = map[string]any{
	"type":     "object",
	"required": []any{"strengths", "improvements", "tips"},
	"properties": map[string]any{
		"strengths":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"improvements": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"tips":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
}
