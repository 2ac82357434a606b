package bank

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Backend names a persistence implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendDuckDB Backend = "duckdb"
)

// Backends lists the configurable backends.
var Backends = []Backend{BackendFile, BackendSQLite, BackendDuckDB}

// DefaultPath returns the bank location for backend under the config directory.
func DefaultPath(configDir string, backend Backend) string {
	switch backend {
	case BackendSQLite:
		return filepath.Join(configDir, "bank.sqlite")
	case BackendDuckDB:
		return filepath.Join(configDir, "bank.duckdb")
	default:
		return filepath.Join(configDir, "bank.json")
	}
}

// Open returns persistence for backend at path. Callers must Close it.
func Open(ctx context.Context, backend Backend, path string) (Persistence, error) {
	switch backend {
	case BackendFile, "":
		return NewFileBlob(path), nil
	case BackendSQLite, BackendDuckDB:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create bank dir: %w", err)
		}
		if backend == BackendSQLite {
			return OpenSQLite(ctx, path)
		}
		return OpenDuckDB(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported bank backend %q", backend)
	}
}
