package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"quizgen/internal/quiz"
)

// File is the on-disk form of a completed quiz.
type File struct {
	ID          string      `json:"id"`
	CompletedAt time.Time   `json:"completedAt"`
	Result      quiz.Result `json:"result"`
}

// NewFile wraps result with a fresh id and timestamp.
func NewFile(result quiz.Result, completedAt time.Time) File {
	return File{
		ID:          uuid.NewString(),
		CompletedAt: completedAt.UTC(),
		Result:      result.Clone(),
	}
}

// SaveFile writes file as indented JSON.
func SaveFile(path string, file File) error {
	payload, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create result dir: %w", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// LoadFile reads a result written by SaveFile.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read result: %w", err)
	}
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("parse result: %w", err)
	}
	if file.Result.TotalQuestions != len(file.Result.Questions) {
		return File{}, fmt.Errorf("parse result: totalQuestions %d does not match %d questions", file.Result.TotalQuestions, len(file.Result.Questions))
	}
	return file, nil
}
