package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"quizgen/internal/report"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
			fmt.Fprintln(stderr, "report expects a result file")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		file, err := report.LoadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Completed %s\n\n", file.CompletedAt.Format("2006-01-02 15:04"))
		fmt.Fprint(stdout, report.Render(file.Result, report.Options{NoColor: *noColor}))
		return ExitOK
	}
}
