package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"backup-pipeline/internal/config"
)

// Launcher spawns the backuper and reporter under the configured interpreter
// as two concurrent child processes joined by an OS pipe. The credential set
// is appended to each child's environment at spawn time only; the launcher's
// own environment is never mutated, so nothing leaks across invocations.
type Launcher struct {
	interpreter    string
	backuperScript string
	reporterScript string
	credentials    config.Credentials

	// Reporter output and both programs' diagnostics; overridable in tests.
	stdout io.Writer
	stderr io.Writer
}

// NewLauncher creates a Launcher from the provided configuration.
func NewLauncher(cfg *config.Config) (*Launcher, error) {
	const op = "pipeline.NewLauncher"

	if cfg == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilConfig)
	}

	return &Launcher{
		interpreter:    cfg.GetInterpreter(),
		backuperScript: cfg.GetBackuperScript(),
		reporterScript: cfg.GetReporterScript(),
		credentials:    cfg.GetCredentials(),
		stdout:         os.Stdout,
		stderr:         os.Stderr,
	}, nil
}

// Run executes one pipeline pass and returns the reporter's exit code.
//
// The interpreter is resolved before anything is spawned; a bad interpreter
// means neither program runs. A backuper that fails to start or exits
// non-zero does not abort the run: the reporter still executes against an
// immediately-closed input stream, exactly as a shell pipeline would behave.
// The returned error covers launcher-level failures only, never a non-zero
// reporter exit.
func (l *Launcher) Run(ctx context.Context) (int, error) {
	const op = "pipeline.Launcher.Run"

	interp, err := exec.LookPath(l.interpreter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %q", op, ErrInterpreterNotFound, l.interpreter)
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to create pipe: %w", op, err)
	}

	env := append(os.Environ(), l.credentials.Environ()...)

	backuper := exec.CommandContext(ctx, interp, l.backuperScript)
	backuper.Env = env
	backuper.Stdout = pw
	backuper.Stderr = l.stderr

	reporter := exec.CommandContext(ctx, interp, l.reporterScript)
	reporter.Env = env
	reporter.Stdin = pr
	reporter.Stdout = l.stdout
	reporter.Stderr = l.stderr

	backErr := backuper.Start()
	if backErr != nil {
		slog.Warn("backuper failed to start, reporter will see an empty stream",
			"script", l.backuperScript, "error", backErr)
	}

	repErr := reporter.Start()

	// The children hold duplicates of the pipe ends now. The parent's copies
	// must be closed, or the reporter never sees end-of-stream.
	_ = pw.Close()
	_ = pr.Close()

	if repErr != nil {
		if backErr == nil {
			_ = backuper.Wait()
		}
		return 0, fmt.Errorf("%s: failed to start reporter: %w", op, repErr)
	}

	if backErr == nil {
		if err := backuper.Wait(); err != nil {
			slog.Warn("backuper exited with failure",
				"script", l.backuperScript,
				"exit_code", backuper.ProcessState.ExitCode(),
				"error", err)
		}
	}

	if err := reporter.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("%s: reporter: %w", op, err)
	}

	return 0, nil
}
