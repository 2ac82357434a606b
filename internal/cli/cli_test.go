package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestRootHelp(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"--help"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if err.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", err.String())
	}
	output := out.String()
	if !strings.Contains(output, "quizgen <command>") {
		t.Fatalf("expected usage header, got %q", output)
	}
	for _, cmd := range commands {
		if !strings.Contains(output, cmd.Name) || !strings.Contains(output, cmd.Summary) {
			t.Fatalf("expected command %q with its summary in output", cmd.Name)
		}
	}
}

func TestNoArgsShowsUsage(t *testing.T) {
	var out, err bytes.Buffer
	code := Run(nil, &out, &err)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("expected usage output, got %q", out.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"serve"}, &out, &err)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output, got %q", out.String())
	}
	if !strings.Contains(err.String(), "Unknown command: serve") {
		t.Fatalf("expected unknown command error, got %q", err.String())
	}
}

func TestCommandHelp(t *testing.T) {
	for _, cmd := range commands {
		var out, err bytes.Buffer
		code := Run([]string{cmd.Name, "--help"}, &out, &err)
		if code != ExitOK {
			t.Fatalf("%s: expected exit %d, got %d", cmd.Name, ExitOK, code)
		}
		if err.Len() != 0 {
			t.Fatalf("%s: expected no stderr output, got %q", cmd.Name, err.String())
		}
		for _, line := range cmd.Usage {
			if !strings.Contains(out.String(), line) {
				t.Fatalf("%s: expected usage line %q", cmd.Name, line)
			}
		}
	}
}

func TestBankSubcommandErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing", args: []string{"bank"}, want: "Usage:"},
		{name: "unknown", args: []string{"bank", "purge"}, want: "Unknown bank command: purge"},
		{name: "add without file", args: []string{"bank", "add"}, want: "expects exactly one question file"},
		{name: "remove without id", args: []string{"bank", "remove"}, want: "expects at least one question id"},
		{name: "edit without id", args: []string{"bank", "edit", "--text", "x"}, want: "expects a question id"},
		{name: "bad flag", args: []string{"bank", "list", "--nope"}, want: "Usage:"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out, err bytes.Buffer
			code := Run(tc.args, &out, &err)
			if code != ExitUsage {
				t.Fatalf("expected exit %d, got %d (stderr %q)", ExitUsage, code, err.String())
			}
			if !strings.Contains(err.String(), tc.want) {
				t.Fatalf("expected %q in stderr, got %q", tc.want, err.String())
			}
		})
	}
}

func TestPromptYesNo(t *testing.T) {
	cases := []struct {
		input      string
		defaultYes bool
		want       bool
		wantErr    bool
	}{
		{input: "\n", defaultYes: true, want: true},
		{input: "", defaultYes: false, want: false},
		{input: "YES\n", want: true},
		{input: "n\n", defaultYes: true, want: false},
		{input: "maybe\ny\n", want: true},
		{input: "maybe", wantErr: true},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		got, err := promptYesNo(bufio.NewReader(strings.NewReader(tc.input)), &out, "Continue?", tc.defaultYes)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.input, tc.want, got)
		}
	}
}
