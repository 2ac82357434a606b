package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quizgen/internal/config"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: <repo root>/.quizgen/config.yml)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		reader := bufio.NewReader(stdinReader())

		var targetPath string
		var configDir string
		var repoRoot string

		pathValue := strings.TrimSpace(*configPath)
		if pathValue == "" {
			repoRoot = discoverGitRoot("")
			baseDir := repoRoot
			if baseDir == "" {
				wd, err := os.Getwd()
				if err != nil {
					fmt.Fprintf(stderr, "Init failed: %v\n", err)
					return ExitError
				}
				baseDir = wd
			}
			configDir = filepath.Join(baseDir, config.ConfigDirName)
			targetPath = filepath.Join(configDir, config.ConfigFileName)
		} else {
			absPath, err := filepath.Abs(pathValue)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			targetPath = absPath
			configDir = filepath.Dir(targetPath)
			repoRoot = discoverGitRoot(config.RepoRootFromConfigPath(targetPath))
		}

		if info, err := os.Stat(configDir); err == nil && !info.IsDir() {
			fmt.Fprintf(stderr, "Init failed: config directory %q is not a directory\n", configDir)
			return ExitError
		}
		if info, err := os.Stat(targetPath); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: config path %q is a directory\n", targetPath)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: config file already exists at %q\n", targetPath)
			return ExitError
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Init failed: stat config file: %v\n", err)
			return ExitError
		}

		confirm, err := promptYesNo(reader, stdout, fmt.Sprintf("Initialize quizgen config in %s?", configDir), true)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if !confirm {
			fmt.Fprintln(stderr, "Init cancelled.")
			return ExitError
		}

		addGitignore := false
		if repoRoot != "" {
			answer, err := promptYesNo(reader, stdout, "Add .env, logs, and the question bank to .gitignore?", true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			addGitignore = answer
		}

		if err := config.Scaffold(targetPath); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Wrote %s\n", targetPath)
		if addGitignore {
			updated := false
			for _, entry := range gitignoreEntries(repoRoot, configDir) {
				added, err := addGitignoreEntry(repoRoot, entry)
				if err != nil {
					fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
					return ExitError
				}
				updated = updated || added
			}
			if updated {
				fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(repoRoot, ".gitignore"))
			}
		}
		return ExitOK
	}
}

// stdin allows tests to override the reader used for prompts and piped input.
var stdin io.Reader = os.Stdin

func stdinReader() io.Reader {
	if stdin == nil {
		return os.Stdin
	}
	return stdin
}

// gitignoreEntries lists the local-only files init offers to ignore.
func gitignoreEntries(repoRoot, configDir string) []string {
	return []string{
		filepath.Join(repoRoot, config.EnvFileName),
		filepath.Join(configDir, "logs"),
		filepath.Join(configDir, "bank.*"),
	}
}
