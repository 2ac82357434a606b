package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"quizgen/internal/bank"
	"quizgen/internal/config"
	"quizgen/internal/logging"
	"quizgen/internal/vcs"
)

// resolveConfigPath normalizes a config path or finds it from CWD. An empty
// result with a nil error means no config exists and defaults apply.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		found, err := config.FindConfigPath("")
		if errors.Is(err, config.ErrConfigNotFound) {
			return "", nil
		}
		return found, err
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// workspace is the loaded config, repo root, and logger shared by commands.
type workspace struct {
	root     string
	cfg      config.Config
	logger   *zap.Logger
	closeLog func() error
}

// openWorkspace loads the config (or defaults), the .env file, and the logger.
func openWorkspace(configFlag string, stderr io.Writer) (*workspace, error) {
	configPath, err := resolveConfigPath(configFlag)
	if err != nil {
		return nil, err
	}

	var root string
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		root = config.RepoRootFromConfigPath(configPath)
	} else {
		root = discoverGitRoot("")
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("get working directory: %w", err)
			}
			root = wd
		}
	}

	if err := config.LoadEnv(root); err != nil {
		return nil, err
	}
	logger, closeLog, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    config.ResolvePath(root, cfg.Log.File),
		Console: stderr,
	})
	if err != nil {
		return nil, err
	}
	return &workspace{root: root, cfg: cfg, logger: logger, closeLog: closeLog}, nil
}

// Close flushes the logger.
func (w *workspace) Close() {
	if w.closeLog != nil {
		_ = w.closeLog()
	}
}

// openBank opens the configured bank backend.
func (w *workspace) openBank(ctx context.Context) (*bank.Store, func() error, error) {
	path := config.ResolvePath(w.root, w.cfg.Bank.Path)
	persistence, err := bank.Open(ctx, bank.Backend(w.cfg.Bank.Backend), path)
	if err != nil {
		return nil, nil, err
	}
	logger := w.logger.With(zap.String("backend", w.cfg.Bank.Backend), zap.String("path", path))
	return bank.NewStore(persistence, logger), persistence.Close, nil
}

// discoverGitRoot returns the git root or empty when not found.
func discoverGitRoot(startDir string) string {
	root, err := vcs.DiscoverRepoRoot(context.Background(), startDir)
	if err != nil {
		return ""
	}
	return root
}
