package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	shiperrors "github.com/klaus-strele/shipshape/pkg/errors"
	"github.com/klaus-strele/shipshape/pkg/logging"
	"github.com/klaus-strele/shipshape/pkg/types"
	"github.com/rs/zerolog"
)

// ShellExecutor runs command lines through the platform shell.
type ShellExecutor struct {
	// Shell overrides the platform default shell binary.
	Shell string
	// ShellArgs override the arguments placed before the command string.
	ShellArgs []string

	// Stdout, Stderr and Stdin default to the process streams. Tests
	// point them at buffers.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	logger zerolog.Logger
}

var _ types.CommandRunner = (*ShellExecutor)(nil)

// New creates a shell executor with the platform defaults.
func New() *ShellExecutor {
	return &ShellExecutor{
		logger: logging.GetLogger("executor"),
	}
}

// Run executes one command string in dir and blocks until it finishes.
// Success means exit status 0; any other exit status, or a failure to
// start the process at all, is a CommandFailed error carrying the
// command and what is known about why.
func (e *ShellExecutor) Run(ctx context.Context, command, dir string) error {
	if command == "" {
		return shiperrors.New(shiperrors.ErrInvalidInput, "command string is empty")
	}

	shell, err := e.shell()
	if err != nil {
		return shiperrors.Wrap(err, shiperrors.ErrCommandFailed, "no shell available").
			WithDetail("command", command)
	}

	args := append(e.shellArgs(shell), command)
	logging.LogCommand(shell, args)

	cmd := exec.CommandContext(ctx, shell, args...)
	cmd.Dir = dir
	cmd.Stdout = e.stdout()
	cmd.Stderr = e.stderr()
	cmd.Stdin = e.stdin()

	e.logger.Info().
		Str("command", command).
		Str("workingDir", dir).
		Msg("Executing command")

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			e.logger.Error().
				Str("command", command).
				Int("exitCode", code).
				Msg("Command exited with failure status")
			return shiperrors.Newf(shiperrors.ErrCommandFailed,
				"command exited with status %d: %s", code, command).
				WithDetail("command", command).
				WithDetail("exitCode", code)
		}

		e.logger.Error().
			Err(err).
			Str("command", command).
			Msg("Command failed to start")
		return shiperrors.Wrapf(err, shiperrors.ErrCommandFailed,
			"failed to start command: %s", command).
			WithDetail("command", command)
	}

	e.logger.Debug().
		Str("command", command).
		Msg("Command executed successfully")

	return nil
}

// shell determines which shell binary to use.
func (e *ShellExecutor) shell() (string, error) {
	if e.Shell != "" {
		return e.Shell, nil
	}

	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return comspec, nil
		}
		return exec.LookPath("cmd")
	}
	return exec.LookPath("sh")
}

// shellArgs returns the arguments to pass to the shell before the
// command string.
func (e *ShellExecutor) shellArgs(shell string) []string {
	if len(e.ShellArgs) > 0 {
		return e.ShellArgs
	}

	base := strings.TrimSuffix(filepath.Base(shell), ".exe")
	switch strings.ToLower(base) {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		// Assume POSIX shell
		return []string{"-c"}
	}
}

func (e *ShellExecutor) stdout() io.Writer {
	if e.Stdout != nil {
		return e.Stdout
	}
	return os.Stdout
}

func (e *ShellExecutor) stderr() io.Writer {
	if e.Stderr != nil {
		return e.Stderr
	}
	return os.Stderr
}

func (e *ShellExecutor) stdin() io.Reader {
	if e.Stdin != nil {
		return e.Stdin
	}
	return os.Stdin
}
