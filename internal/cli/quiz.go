package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"quizgen/internal/bank"
	"quizgen/internal/question"
	"quizgen/internal/quiz"
	"quizgen/internal/report"
	"quizgen/internal/ui/quizui"
)

// runQuiz builds the handler for the quiz command.
func runQuiz(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .quizgen/config.yml)")
		questionsPath := flags.String("questions", "", "Question file (.json, .yml, .yaml)")
		fromBank := flags.Bool("bank", false, "Take the quiz from the question bank")
		idsValue := flags.String("ids", "", "Comma-separated bank question ids")
		all := flags.Bool("all", false, "Use every bank question")
		uiMode := flags.String("ui", "auto", "UI mode: auto|live|plain")
		resultPath := flags.String("result", "", "Write the result to a JSON file")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if usageErr := checkQuizSource(*questionsPath, *fromBank, *idsValue, *all); usageErr != "" {
			fmt.Fprintln(stderr, usageErr)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		decision, err := resolveUIMode(*uiMode, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		ws, err := openWorkspace(*configPath, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
			return ExitError
		}
		defer ws.Close()

		ctx := context.Background()
		questions, err := quizQuestions(ctx, ws, *questionsPath, *idsValue, *all)
		if err != nil {
			fmt.Fprintf(stderr, "Quiz failed:\n%v\n", err)
			return ExitError
		}
		session, err := quiz.NewSession(questions)
		if err != nil {
			fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
			return ExitError
		}

		var result quiz.Result
		if decision.useLive {
			result, err = quizui.Run(ctx, session, quizui.RunOptions{
				Input:   stdinReader(),
				Output:  stdout,
				NoColor: *noColor,
			})
		} else {
			result, err = runPlainQuiz(session, bufio.NewReader(stdinReader()), stdout)
			if err == nil {
				fmt.Fprintln(stdout)
				fmt.Fprint(stdout, report.Render(result, report.Options{NoColor: *noColor}))
			}
		}
		if err != nil {
			if errors.Is(err, quizui.ErrAborted) {
				fmt.Fprintln(stderr, "Quiz aborted.")
				return ExitError
			}
			fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
			return ExitError
		}
		ws.logger.Info("quiz completed",
			zap.Int("total", result.TotalQuestions),
			zap.Int("correct", result.CorrectAnswers),
			zap.Float64("score", result.Score),
		)

		if *resultPath != "" {
			if err := report.SaveFile(*resultPath, report.NewFile(result, time.Now())); err != nil {
				fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Saved result to %s\n", *resultPath)
		}
		return ExitOK
	}
}

// checkQuizSource returns a usage message when the question source flags conflict.
func checkQuizSource(questionsPath string, fromBank bool, ids string, all bool) string {
	hasFile := strings.TrimSpace(questionsPath) != ""
	hasIDs := strings.TrimSpace(ids) != ""
	switch {
	case hasFile && fromBank:
		return "--questions and --bank are mutually exclusive"
	case !hasFile && !fromBank:
		return "one of --questions or --bank is required"
	case hasFile && (hasIDs || all):
		return "--ids and --all require --bank"
	case fromBank && hasIDs && all:
		return "--ids and --all are mutually exclusive"
	case fromBank && !hasIDs && !all:
		return "--bank requires --ids or --all"
	}
	return ""
}

// quizQuestions loads the questions for a session from a file or the bank.
func quizQuestions(ctx context.Context, ws *workspace, questionsPath, ids string, all bool) ([]question.Question, error) {
	if strings.TrimSpace(questionsPath) != "" {
		return question.LoadFile(questionsPath)
	}
	store, closeBank, err := ws.openBank(ctx)
	if err != nil {
		return nil, err
	}
	defer closeBank()
	stored := store.Load(ctx)
	if all {
		return bank.SelectAll(stored)
	}
	return bank.SelectByIDs(stored, splitIDs(ids))
}

func splitIDs(value string) []string {
	var ids []string
	for _, part := range strings.Split(value, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
