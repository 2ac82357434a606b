package cli

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"quizgen/internal/question"
	"quizgen/internal/report"
)

// runReview builds the handler for the review command, which lists, drops,
// and edits questions in a question file before a quiz.
func runReview(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		var path string
		if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
			path, args = args[0], args[1:]
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		var drops listFlag
		flags.Var(&drops, "drop", "Remove the question with this id (repeatable)")
		editID := flags.String("edit", "", "Id of the question to edit")
		edits := addEditFlags(flags)
		noColor := flags.Bool("no-color", false, "Disable colored output")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if path == "" && flags.NArg() == 1 {
			path = flags.Arg(0)
		} else if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if path == "" {
			fmt.Fprintln(stderr, "review expects a question file")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		set := map[string]bool{}
		flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if *editID == "" && slices.ContainsFunc(editFlagNames, func(name string) bool { return set[name] }) {
			fmt.Fprintln(stderr, "edit flags require --edit <id>")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		questions, err := question.LoadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "Review failed:\n%v\n", err)
			return ExitError
		}
		if len(drops) == 0 && *editID == "" {
			fmt.Fprint(stdout, report.RenderBank(questions, report.Options{NoColor: *noColor}))
			return ExitOK
		}

		for _, id := range drops {
			before := len(questions)
			questions = slices.DeleteFunc(questions, func(q question.Question) bool { return q.ID == id })
			if len(questions) == before {
				fmt.Fprintf(stdout, "Not in file: %s\n", id)
				continue
			}
			fmt.Fprintf(stdout, "Dropped %s\n", id)
		}
		if len(questions) == 0 {
			fmt.Fprintf(stderr, "Review failed: %v\n", &question.ConfigurationError{Message: "a question file needs at least one question"})
			return ExitError
		}

		if *editID != "" {
			index := slices.IndexFunc(questions, func(q question.Question) bool { return q.ID == *editID })
			if index < 0 {
				fmt.Fprintf(stderr, "Edit failed: %v\n", &question.RangeError{Field: "question id", Value: *editID})
				return ExitError
			}
			edited, err := applyEdits(questions[index], edits, set)
			if err != nil {
				fmt.Fprintf(stderr, "Edit failed: %v\n", err)
				return ExitError
			}
			questions[index] = edited
			fmt.Fprintf(stdout, "Updated %s\n", *editID)
		}

		if err := question.SaveFile(path, questions); err != nil {
			fmt.Fprintf(stderr, "Review failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %d questions to %s\n", len(questions), path)
		return ExitOK
	}
}
