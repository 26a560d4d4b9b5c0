package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/internal/config"
	"github.com/aretw0/formation/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/aretw0/formation/pkg/models"
)

// Env carries what every command needs.
type Env struct {
	Config   config.Config
	Logger   *slog.Logger
	Out      io.Writer
	Registry *formation.Registry
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
}

// NewEnv builds the command environment from cfg. Commands print to out and
// log to stderr.
func NewEnv(cfg config.Config, debug bool, out io.Writer) (*Env, error) {
	logger, err := createLogger(cfg.LogLevel, debug)
	if err != nil {
		return nil, err
	}
	return NewEnvWithLogger(cfg, logger, out)
}

// NewEnvWithLogger is NewEnv with a caller-supplied logger.
func NewEnvWithLogger(cfg config.Config, logger *slog.Logger, out io.Writer) (*Env, error) {
	env := &Env{
		Config:   cfg,
		Logger:   logger,
		Out:      out,
		Registry: formation.DefaultRegistry(),
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		m, err := observability.NewMetrics(reg)
		if err != nil {
			return nil, err
		}
		env.Metrics, env.Gatherer = m, reg
	}
	return env, nil
}

// FormationOptions returns the options every loaded formation gets.
func (e *Env) FormationOptions() []formation.Option {
	hooks := observability.LogHooks(e.Logger)
	if e.Metrics != nil {
		hooks = observability.MergeHooks(hooks, e.Metrics.Hooks())
	}
	return []formation.Option{
		formation.WithLogger(e.Logger),
		formation.WithLifecycleHooks(hooks),
	}
}

// Load decodes the document at path. "-" reads stdin.
func (e *Env) Load(path string) (*formation.Formation, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
		defer file.Close()
		r = file
	}
	f, err := e.Registry.Decode(r, e.FormationOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Write prints f to path, or to Out when path is "-".
func (e *Env) Write(path string, f *formation.Formation) error {
	if path == "-" {
		return f.Print(e.Out)
	}
	doc, err := f.Encode()
	if err != nil {
		return err
	}
	return writeFile(path, doc)
}

// writeFile replaces path through a temporary file in the same directory.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".formation-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
