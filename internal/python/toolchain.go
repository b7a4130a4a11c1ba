package python

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/djboot-dev/djboot/internal/errors"
)

// Toolchain runs the Python toolchain commands inside a project directory.
type Toolchain struct {
	// Dir is the project directory commands run in.
	Dir string

	// Python is the interpreter used for bootstrap commands (default
	// "python3").
	Python string

	log *charmlog.Logger
}

// NewToolchain creates a toolchain rooted at dir.
func NewToolchain(dir string) *Toolchain {
	return &Toolchain{
		Dir:    dir,
		Python: "python3",
		log: charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          "python",
		}),
	}
}

// PoetryInstalled reports whether poetry is runnable.
func (t *Toolchain) PoetryInstalled(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "poetry", "--version")
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// EnsurePoetry installs Poetry via pip when it is not already on PATH.
func (t *Toolchain) EnsurePoetry(ctx context.Context) error {
	if t.PoetryInstalled(ctx) {
		t.log.Info("poetry already installed")
		return nil
	}

	t.log.Info("installing poetry")
	if err := t.run(ctx, "", t.Python, "-m", "pip", "install", "poetry"); err != nil {
		return errors.New("E070").
			WithSuggestion("Install Poetry manually: https://python-poetry.org/docs/").
			Wrap(err)
	}
	t.log.Info("poetry installed")
	return nil
}

// CreateVenv creates the project virtual environment.
func (t *Toolchain) CreateVenv(ctx context.Context) error {
	if err := t.run(ctx, t.Dir, t.Python, "-m", "venv", ".venv"); err != nil {
		return errors.New("E071").WithPath(t.Dir).Wrap(err)
	}
	return nil
}

// InstallDeps installs the project dependencies with Poetry.
func (t *Toolchain) InstallDeps(ctx context.Context) error {
	if err := t.run(ctx, t.Dir, "poetry", "install"); err != nil {
		return errors.New("E072").WithPath(t.Dir).Wrap(err)
	}
	return nil
}

// Format formats the materialized tree with black.
func (t *Toolchain) Format(ctx context.Context) error {
	if err := t.run(ctx, t.Dir, "poetry", "run", "black", "."); err != nil {
		return errors.New("E073").WithPath(t.Dir).Wrap(err)
	}
	return nil
}

// run executes one command to completion, streaming output to the terminal.
func (t *Toolchain) run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout

	var stderr bytes.Buffer
	cmd.Stderr = &multiWriter{a: os.Stderr, b: &stderr}

	if err := cmd.Run(); err != nil {
		t.log.Error("command failed", "cmd", name, "err", err)
		return err
	}
	return nil
}

// multiWriter duplicates writes without the stdlib's error short-circuit on
// the secondary sink.
type multiWriter struct {
	a *os.File
	b *bytes.Buffer
}

func (w *multiWriter) Write(p []byte) (int, error) {
	w.b.Write(p)
	return w.a.Write(p)
}
