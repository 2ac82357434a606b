package cli

import (
	"flag"
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  quizgen <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"quizgen <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func runNotImplemented(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fmt.Fprintf(stderr, "quizgen %s is not implemented yet\n", cmd.Name)
		return ExitError
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	if runner == nil {
		cmd.Run = runNotImplemented(cmd)
	} else {
		cmd.Run = runner(cmd)
	}
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .quizgen/config.yml", []string{
		"quizgen init [--config <path>]",
	}, runInit),
	command("validate", "Validate the config and question files", []string{
		"quizgen validate [--config <path>] [--questions <file>]",
	}, runValidate),
	command("generate", "Generate questions from study text", []string{
		"quizgen generate --text <file|-> [--type <type>] [--count <n>] [--out <file>] [--save]",
	}, runGenerate),
	command("review", "List, drop, or edit questions in a question file", []string{
		"quizgen review <file> [--no-color]",
		"quizgen review <file> [--drop <id>]... [--edit <id> [--text <t>] [--explanation <t>] [--option <i>=<t>] [--stem <i>=<t>] [--answer <a>] [--pair <stem>=<option>]]",
	}, runReview),
	command("bank", "Manage the saved question bank", []string{
		"quizgen bank list",
		"quizgen bank add <file>",
		"quizgen bank remove <id>...",
		"quizgen bank edit <id> [--text <t>] [--explanation <t>] [--option <i>=<t>] [--stem <i>=<t>] [--answer <a>] [--pair <stem>=<option>]",
		"quizgen bank export [--out <file>]",
	}, runBank),
	command("quiz", "Take a quiz", []string{
		"quizgen quiz --questions <file> [--ui auto|live|plain] [--result <file>]",
		"quizgen quiz --bank (--ids <a,b> | --all) [--ui auto|live|plain] [--result <file>]",
	}, runQuiz),
	command("report", "Print a saved quiz result", []string{
		"quizgen report <result-file> [--no-color]",
	}, runReport),
}

// parseFlags parses args into flags. When ok is false the caller returns code.
func parseFlags(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (code int, ok bool) {
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}
