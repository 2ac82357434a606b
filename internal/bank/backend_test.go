package bank

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"quizgen/internal/testutil"
)

func TestBackendsPersistAcrossReopen(t *testing.T) {
	for _, backend := range Backends {
		t.Run(string(backend), func(t *testing.T) {
			ctx := testutil.Context(t, 0)
			path := DefaultPath(filepath.Join(t.TempDir(), ".quizgen"), backend)

			persistence, err := Open(ctx, backend, path)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			store := NewStore(persistence, nil)
			if got := store.Load(ctx); len(got) != 0 {
				t.Fatalf("expected empty bank before first save, got %d", len(got))
			}
			if _, err := store.AddAll(ctx, sampleQuestions()); err != nil {
				t.Fatalf("add all: %v", err)
			}
			if _, err := store.Remove(ctx, "q1"); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if err := persistence.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			reopened, err := Open(ctx, backend, path)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			t.Cleanup(func() { _ = reopened.Close() })
			got := ids(NewStore(reopened, nil).Load(ctx))
			if !slices.Equal(got, []string{"q2", "q3"}) {
				t.Fatalf("unexpected ids after reopen: %v", got)
			}
		})
	}
}

func TestFileBlobLeavesNoTempFile(t *testing.T) {
	ctx := testutil.Context(t, 0)
	path := filepath.Join(t.TempDir(), "bank.json")
	blob := NewFileBlob(path)
	if err := blob.Save(ctx, []byte("[]")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, got %v", err)
	}
	data, ok, err := blob.Load(ctx)
	if err != nil || !ok || string(data) != "[]" {
		t.Fatalf("unexpected load: data=%q ok=%v err=%v", data, ok, err)
	}
}

func TestSQLBlobUsesStorageKey(t *testing.T) {
	ctx := testutil.Context(t, 0)
	blob, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "bank.sqlite"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = blob.Close() })
	if err := blob.Save(ctx, []byte("[]")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := blob.Save(ctx, []byte(`[{"id":"x"}]`)); err != nil {
		t.Fatalf("save again: %v", err)
	}
	var count int
	if err := blob.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quizgen_kv WHERE key = ?`, StorageKey).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row under %s, got %d", StorageKey, count)
	}
}
