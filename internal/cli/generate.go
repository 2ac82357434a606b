package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"quizgen/internal/generate"
	"quizgen/internal/question"
)

// runGenerate builds the handler for the generate command.
func runGenerate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .quizgen/config.yml)")
		textPath := flags.String("text", "", "Study text file, or - for stdin")
		typeValue := flags.String("type", "", "Question type (default: defaults.question_type)")
		count := flags.Int("count", 0, "Number of questions, 1-10 (default: defaults.count)")
		outPath := flags.String("out", "", "Write questions to a .json or .yml file instead of stdout")
		save := flags.Bool("save", false, "Add the generated questions to the bank")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if strings.TrimSpace(*textPath) == "" {
			fmt.Fprintln(stderr, "--text is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		ws, err := openWorkspace(*configPath, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Generation failed: %v\n", err)
			return ExitError
		}
		defer ws.Close()

		text, err := readText(*textPath)
		if err != nil {
			fmt.Fprintf(stderr, "Generation failed: %v\n", err)
			return ExitError
		}
		if strings.TrimSpace(*typeValue) == "" {
			*typeValue = ws.cfg.Defaults.QuestionType
		}
		questionType, ok := question.ParseType(*typeValue)
		if !ok {
			fmt.Fprintf(stderr, "invalid question type %q (expected %s)\n", *typeValue, typeNames())
			return ExitUsage
		}
		if *count == 0 {
			*count = ws.cfg.Defaults.Count
		}

		key, err := generate.APIKeyFromEnv()
		if err != nil {
			fmt.Fprintf(stderr, "Generation failed: %v\n", err)
			return ExitError
		}
		client, err := generate.NewClient(key, clientOptions(ws))
		if err != nil {
			fmt.Fprintf(stderr, "Generation failed: %v\n", err)
			return ExitError
		}

		ctx := context.Background()
		questions, err := client.Generate(ctx, generate.Request{Text: text, Type: questionType, Count: *count})
		if err != nil {
			var generationErr *generate.GenerationError
			if errors.As(err, &generationErr) {
				fmt.Fprintln(stderr, generate.UserMessage)
				return ExitError
			}
			fmt.Fprintf(stderr, "Generation failed: %v\n", err)
			return ExitError
		}

		if *outPath != "" {
			if err := question.SaveFile(*outPath, questions); err != nil {
				fmt.Fprintf(stderr, "Generation failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Wrote %d questions to %s\n", len(questions), *outPath)
		} else {
			data, err := question.Encode(questions, "questions.json")
			if err != nil {
				fmt.Fprintf(stderr, "Generation failed: %v\n", err)
				return ExitError
			}
			_, _ = stdout.Write(data)
		}

		if *save {
			store, closeBank, err := ws.openBank(ctx)
			if err != nil {
				fmt.Fprintf(stderr, "Save failed: %v\n", err)
				return ExitError
			}
			defer closeBank()
			added, err := store.AddAll(ctx, questions)
			if err != nil {
				fmt.Fprintf(stderr, "Save failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stderr, "Added %d of %d questions to the bank\n", added, len(questions))
		}
		return ExitOK
	}
}

// clientOptions maps generator config onto client options.
func clientOptions(ws *workspace) generate.Options {
	timeout := ws.cfg.Generator.Timeout()
	if timeout == 0 {
		timeout = -time.Second
	}
	return generate.Options{
		Model:             ws.cfg.Generator.Model,
		BaseURL:           ws.cfg.Generator.BaseURL,
		Timeout:           timeout,
		RequestsPerMinute: ws.cfg.Generator.RequestsPerMinute,
		RekeyIDs:          ws.cfg.Generator.RekeyIDs,
		Logger:            ws.logger.Named("generate"),
	}
}

// readText reads study text from a file, or stdin when path is "-".
func readText(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdinReader())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return string(data), nil
}

func typeNames() string {
	names := make([]string, 0, len(question.Types))
	for _, t := range question.Types {
		names = append(names, string(t))
	}
	return strings.Join(names, "|")
}
