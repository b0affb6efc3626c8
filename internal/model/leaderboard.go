package model

import "time"

// Timeframe restricts leaderboard aggregation to a submission window.
type Timeframe string

const (
	TimeframeAll   Timeframe = "all"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
)

// Category names one of the seven published leaderboards.
type Category string

const (
	CategoryStdOverall Category = "std_overall"
	CategoryStdTyping  Category = "std_typing"
	CategoryStdLetter  Category = "std_letter"
	CategoryStdExcel   Category = "std_excel"
	CategoryNewOverall Category = "new_overall"
	CategoryNewTyping  Category = "new_typing"
	CategoryNewMCQ     Category = "new_mcq"
)

// AllCategories is the fixed publication order of the leaderboards.
var AllCategories = []Category{
	CategoryStdOverall, CategoryStdTyping, CategoryStdLetter, CategoryStdExcel,
	CategoryNewOverall, CategoryNewTyping, CategoryNewMCQ,
}

// LeaderboardEntry is one row of a category leaderboard: a user's best
// result in that category within the timeframe.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      int       `json:"user_id"`
	UserName    string    `json:"user_name"`
	SessionID   string    `json:"session_id"`
	Score       int       `json:"score"`
	WPM         *float64  `json:"wpm,omitempty"`
	Accuracy    *float64  `json:"accuracy,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Leaderboards is the full seven-category result for one timeframe.
type Leaderboards struct {
	StdOverall []LeaderboardEntry `json:"std_overall"`
	StdTyping  []LeaderboardEntry `json:"std_typing"`
	StdLetter  []LeaderboardEntry `json:"std_letter"`
	StdExcel   []LeaderboardEntry `json:"std_excel"`
	NewOverall []LeaderboardEntry `json:"new_overall"`
	NewTyping  []LeaderboardEntry `json:"new_typing"`
	NewMCQ     []LeaderboardEntry `json:"new_mcq"`
}

// Trend compares a user's two most recent completed sessions in a pattern.
type Trend struct {
	Delta     int    `json:"delta"`
	Direction string `json:"direction"` // "up" or "down"
}

// PatternRank is a user's standing within one test pattern.
type PatternRank struct {
	BestScore  int    `json:"best_score"`
	Rank       int    `json:"rank"`
	TotalUsers int    `json:"total_users"`
	Percentile int    `json:"percentile"`
	Trend      *Trend `json:"trend,omitempty"`
}

// MyRank is the per-pattern ranking summary for the calling user.
// A nil pattern entry means the user has no completed session there.
type MyRank struct {
	Standard   *PatternRank `json:"standard"`
	NewPattern *PatternRank `json:"new_pattern"`
}

// CompareGap is one category row of a head-to-head comparison.
type CompareGap struct {
	Category string `json:"category"`
	Yours    int    `json:"yours"`
	Theirs   int    `json:"theirs"`
	Diff     int    `json:"diff"`
	Ahead    bool   `json:"ahead"`
	Tip      string `json:"tip"`
}

// CompareSide is one participant's scores in a comparison.
type CompareSide struct {
	UserName    string    `json:"user_name"`
	SessionID   string    `json:"session_id"`
	TotalScore  int       `json:"total_score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// CompareResult is the full head-to-head payload. You is nil (with Message
// set) when the caller has no completed session in the target's pattern.
type CompareResult struct {
	Them    *CompareSide `json:"them"`
	You     *CompareSide `json:"you"`
	Gaps    []CompareGap `json:"gaps,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Percentile is the standing of a single session among all completed
// sessions of the same pattern.
type Percentile struct {
	SessionID  string `json:"session_id"`
	TotalScore int    `json:"total_score"`
	Rank       int    `json:"rank"`
	TotalUsers int    `json:"total_users"`
	Percentile int    `json:"percentile"`
}
