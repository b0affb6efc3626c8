package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Upload validation errors.
var (
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
	ErrFileType     = errors.New("unsupported file type")
)

// workbookExtensions lists the spreadsheet formats accepted for submissions
// and answer keys.
var workbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// UploadService stores uploaded workbooks on local disk under random names.
type UploadService struct {
	dir      string
	maxBytes int64
	log      zerolog.Logger
}

// NewUploadService creates an UploadService rooted at dir.
func NewUploadService(dir string, maxBytes int64, log zerolog.Logger) *UploadService {
	return &UploadService{
		dir:      dir,
		maxBytes: maxBytes,
		log:      log.With().Str("component", "uploads").Logger(),
	}
}

// SaveWorkbook validates and persists an uploaded spreadsheet, returning the
// stored path. The original filename is discarded; only its extension
// survives.
func (s *UploadService) SaveWorkbook(file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, file.Size)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !workbookExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrFileType, ext)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, uuid.New().String()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}

	s.log.Debug().Str("path", path).Int64("size", file.Size).Msg("workbook stored")
	return path, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *UploadService) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
