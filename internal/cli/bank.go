package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quizgen/internal/question"
	"quizgen/internal/quiz"
	"quizgen/internal/report"
)

// runBank builds the handler for the bank command and its subcommands.
func runBank(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if len(args) == 0 {
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if isHelpArg(args[0]) || wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		sub, ok := bankSubcommands[args[0]]
		if !ok {
			fmt.Fprintf(stderr, "Unknown bank command: %s\n\n", args[0])
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		return sub(cmd, args[1:], stdout, stderr)
	}
}

type bankSubcommand func(cmd *Command, args []string, stdout, stderr io.Writer) int

var bankSubcommands = map[string]bankSubcommand{
	"list":   runBankList,
	"add":    runBankAdd,
	"remove": runBankRemove,
	"edit":   runBankEdit,
	"export": runBankExport,
}

// withBank opens the workspace and bank, then runs fn.
func withBank(configPath string, stderr io.Writer, fn func(ctx context.Context, store bankStore) int) int {
	ws, err := openWorkspace(configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Bank failed: %v\n", err)
		return ExitError
	}
	defer ws.Close()
	ctx := context.Background()
	store, closeBank, err := ws.openBank(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Bank failed: %v\n", err)
		return ExitError
	}
	defer closeBank()
	return fn(ctx, store)
}

// bankStore is the part of bank.Store the bank commands use.
type bankStore interface {
	Load(ctx context.Context) []question.Question
	AddAll(ctx context.Context, questions []question.Question) (int, error)
	Remove(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, q question.Question) (bool, error)
}

func runBankList(cmd *Command, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("bank list", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "Path to config file")
	noColor := flags.Bool("no-color", false, "Disable colored output")
	if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
		return code
	}
	return withBank(*configPath, stderr, func(ctx context.Context, store bankStore) int {
		fmt.Fprint(stdout, report.RenderBank(store.Load(ctx), report.Options{NoColor: *noColor}))
		return ExitOK
	})
}

func runBankAdd(cmd *Command, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("bank add", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "Path to config file")
	if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
		return code
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(stderr, "bank add expects exactly one question file")
		printCommandUsage(cmd, stderr)
		return ExitUsage
	}
	questions, err := question.LoadFile(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Bank failed:\n%v\n", err)
		return ExitError
	}
	return withBank(*configPath, stderr, func(ctx context.Context, store bankStore) int {
		added, err := store.AddAll(ctx, questions)
		if err != nil {
			fmt.Fprintf(stderr, "Bank failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Added %d of %d questions\n", added, len(questions))
		return ExitOK
	})
}

func runBankRemove(cmd *Command, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("bank remove", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "Path to config file")
	if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
		return code
	}
	if flags.NArg() == 0 {
		fmt.Fprintln(stderr, "bank remove expects at least one question id")
		printCommandUsage(cmd, stderr)
		return ExitUsage
	}
	return withBank(*configPath, stderr, func(ctx context.Context, store bankStore) int {
		for _, id := range flags.Args() {
			removed, err := store.Remove(ctx, id)
			if err != nil {
				fmt.Fprintf(stderr, "Bank failed: %v\n", err)
				return ExitError
			}
			if removed {
				fmt.Fprintf(stdout, "Removed %s\n", id)
			} else {
				fmt.Fprintf(stdout, "Not in bank: %s\n", id)
			}
		}
		return ExitOK
	})
}

func runBankExport(cmd *Command, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("bank export", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "Path to config file")
	outPath := flags.String("out", "", "Write to a .json or .yml file instead of stdout")
	if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
		return code
	}
	return withBank(*configPath, stderr, func(ctx context.Context, store bankStore) int {
		questions := store.Load(ctx)
		if *outPath != "" {
			if err := question.SaveFile(*outPath, questions); err != nil {
				fmt.Fprintf(stderr, "Bank failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Wrote %d questions to %s\n", len(questions), *outPath)
			return ExitOK
		}
		data, err := question.Encode(questions, "bank.json")
		if err != nil {
			fmt.Fprintf(stderr, "Bank failed: %v\n", err)
			return ExitError
		}
		_, _ = stdout.Write(data)
		return ExitOK
	})
}

// listFlag collects repeated flag values.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// questionEdits are the bank edit flags, applied in field order.
type questionEdits struct {
	text        *string
	explanation *string
	options     listFlag
	stems       listFlag
	answer      *string
	pairs       listFlag
}

// editFlagNames are the flags registered by addEditFlags.
var editFlagNames = []string{"text", "explanation", "option", "stem", "answer", "pair"}

func addEditFlags(flags *flag.FlagSet) *questionEdits {
	edits := &questionEdits{
		text:        flags.String("text", "", "New question text"),
		explanation: flags.String("explanation", "", "New explanation"),
		answer:      flags.String("answer", "", "New correct answer (option text, true/false, or blank text)"),
	}
	flags.Var(&edits.options, "option", "Replace option <n>=<text> (1-based, repeatable)")
	flags.Var(&edits.stems, "stem", "Replace matching stem <n>=<text> (1-based, repeatable)")
	flags.Var(&edits.pairs, "pair", "Map matching <stem>=<option> (repeatable)")
	return edits
}

func runBankEdit(cmd *Command, args []string, stdout, stderr io.Writer) int {
	var id string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		id, args = args[0], args[1:]
	}
	flags := flag.NewFlagSet("bank edit", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "Path to config file")
	edits := addEditFlags(flags)
	if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
		return code
	}
	if id == "" && flags.NArg() == 1 {
		id = flags.Arg(0)
	} else if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
		printCommandUsage(cmd, stderr)
		return ExitUsage
	}
	if id == "" {
		fmt.Fprintln(stderr, "bank edit expects a question id")
		printCommandUsage(cmd, stderr)
		return ExitUsage
	}
	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	return withBank(*configPath, stderr, func(ctx context.Context, store bankStore) int {
		current, ok := findQuestion(store.Load(ctx), id)
		if !ok {
			fmt.Fprintf(stderr, "Bank failed: %v\n", &question.RangeError{Field: "question id", Value: strconv.Quote(id)})
			return ExitError
		}
		edited, err := applyEdits(current, edits, set)
		if err != nil {
			fmt.Fprintf(stderr, "Edit failed: %v\n", err)
			return ExitError
		}
		if _, err := store.Update(ctx, edited); err != nil {
			fmt.Fprintf(stderr, "Edit failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Updated %s\n", id)
		return ExitOK
	})
}

func findQuestion(questions []question.Question, id string) (question.Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return question.Question{}, false
}

// applyEdits runs each requested edit through the question edit operations.
func applyEdits(q question.Question, edits *questionEdits, set map[string]bool) (question.Question, error) {
	var err error
	if set["text"] {
		if q, err = question.SetQuestionText(q, *edits.text); err != nil {
			return question.Question{}, err
		}
	}
	if set["explanation"] {
		q = question.SetExplanation(q, *edits.explanation)
	}
	for _, entry := range edits.options {
		index, text, err := parseIndexed(entry)
		if err != nil {
			return question.Question{}, err
		}
		if q, err = question.EditOption(q, index, text); err != nil {
			return question.Question{}, err
		}
	}
	for _, entry := range edits.stems {
		index, text, err := parseIndexed(entry)
		if err != nil {
			return question.Question{}, err
		}
		if q, err = question.EditStem(q, index, text); err != nil {
			return question.Question{}, err
		}
	}
	if set["answer"] {
		if q, err = question.SetCorrectAnswer(q, parseAnswer(q, *edits.answer)); err != nil {
			return question.Question{}, err
		}
	}
	for _, entry := range edits.pairs {
		stem, option, found := strings.Cut(entry, "=")
		if !found {
			return question.Question{}, &question.ValidationError{Field: "pair", Message: fmt.Sprintf("expected <stem>=<option>, got %q", entry)}
		}
		if q, err = question.SetMatchingPair(q, strings.TrimSpace(stem), strings.TrimSpace(option)); err != nil {
			return question.Question{}, err
		}
	}
	return q, nil
}

// parseIndexed splits "<n>=<text>" and converts n to a zero-based index.
func parseIndexed(entry string) (int, string, error) {
	raw, text, found := strings.Cut(entry, "=")
	if !found {
		return 0, "", &question.ValidationError{Field: "edit", Message: fmt.Sprintf("expected <n>=<text>, got %q", entry)}
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, "", &question.ValidationError{Field: "edit", Message: fmt.Sprintf("invalid index %q", raw)}
	}
	return n - 1, text, nil
}

// parseAnswer reads true/false values (or their labels) for true/false
// questions and text otherwise.
func parseAnswer(q question.Question, value string) question.Answer {
	if q.QuestionType != question.TrueFalse {
		return question.TextAnswer(value)
	}
	value = strings.TrimSpace(value)
	switch value {
	case quiz.BoolLabel(true):
		return question.BoolAnswer(true)
	case quiz.BoolLabel(false):
		return question.BoolAnswer(false)
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return question.BoolAnswer(b)
	}
	return question.TextAnswer(value)
}
