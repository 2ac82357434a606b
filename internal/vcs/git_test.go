package vcs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"quizgen/internal/testutil"
)

func TestDiscoverRepoRoot(t *testing.T) {
	ctx := testutil.Context(t, 0)
	root := filepath.Join(t.TempDir(), "repo")
	fake := &fakeGitRunner{responses: map[string]string{
		"rev-parse --show-toplevel": root,
	}}
	client := NewClient(fake)

	actual, err := client.DiscoverRepoRoot(ctx, filepath.Join(root, "nested"))
	if err != nil {
		t.Fatalf("discover repo root: %v", err)
	}
	if actual != root {
		t.Fatalf("expected root %q, got %q", root, actual)
	}
	if fake.dirs[0] != filepath.Join(root, "nested") {
		t.Fatalf("expected git to run in the start dir, got %q", fake.dirs[0])
	}
}

func TestDiscoverRepoRootOutsideRepo(t *testing.T) {
	ctx := testutil.Context(t, 0)
	client := NewClient(&fakeGitRunner{responses: map[string]string{}})
	if _, err := client.DiscoverRepoRoot(ctx, t.TempDir()); err == nil {
		t.Fatalf("expected error outside a repository")
	}
}

// fakeGitRunner returns canned outputs for git commands in tests.
type fakeGitRunner struct {
	responses map[string]string
	dirs      []string
}

// Run satisfies gitRunner for test doubles.
func (f *fakeGitRunner) Run(_ context.Context, dir string, args ...string) (string, error) {
	f.dirs = append(f.dirs, dir)
	key := strings.Join(args, " ")
	if value, ok := f.responses[key]; ok {
		return value, nil
	}
	return "", fmt.Errorf("unexpected git args: %s", key)
}
