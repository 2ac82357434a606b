package quizui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"quizgen/internal/quiz"
)

// ErrAborted is returned when the user quits before the last question.
var ErrAborted = errors.New("quiz aborted")

// RunOptions configures Run.
type RunOptions struct {
	Input   io.Reader
	Output  io.Writer
	NoColor bool
}

// Run takes the quiz interactively and returns the final result.
func Run(ctx context.Context, session *quiz.Session, opts RunOptions) (quiz.Result, error) {
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	program := tea.NewProgram(NewModel(session, Options{NoColor: opts.NoColor}), programOpts...)
	final, err := program.Run()
	if err != nil {
		return quiz.Result{}, fmt.Errorf("run quiz ui: %w", err)
	}
	if model, ok := final.(Model); ok && model.Aborted() {
		return quiz.Result{}, ErrAborted
	}
	result, ok := session.Result()
	if !ok {
		return quiz.Result{}, ErrAborted
	}
	return result, nil
}
