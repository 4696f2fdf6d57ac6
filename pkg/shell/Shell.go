package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"
)

func New(logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Executor{
		Logger: logger,
	}
}

func (result Result) Success() bool {
	return result.ExitCode == 0
}

func (executor *Executor) Run(ctx context.Context, argv []string, opts Options) Result {
	if len(argv) == 0 {
		return Result{Output: "empty command", ExitCode: EXIT_SPAWN_FAILED}
	}

	if opts.AsUser != "" {
		argv = []string{"su", "-", opts.AsUser, "-c", Quote(argv)}
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	logged := Masked(argv, opts.Mask, opts.AsUser != "")
	executor.Logger.Debug("executing command", zap.String("command", logged))

	var output bytes.Buffer

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &output
	cmd.Stderr = &output
	cmd.WaitDelay = WAIT_DELAY

	err := cmd.Start()

	if err != nil {
		executor.Logger.Warn("failed to spawn command", zap.String("command", logged), zap.Error(err))

		return Result{
			Output:   fmt.Sprintf("failed to execute %s: %s", argv[0], err.Error()),
			ExitCode: EXIT_SPAWN_FAILED,
		}
	}

	err = cmd.Wait()

	if ctx.Err() != nil {
		executor.Logger.Warn("command killed", zap.String("command", logged), zap.Error(ctx.Err()))

		return Result{
			Output:   output.String(),
			ExitCode: EXIT_TIMEOUT,
		}
	}

	result := Result{Output: output.String()}

	if err != nil {
		var exitErr *exec.ExitError

		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = EXIT_SPAWN_FAILED
			result.Output = fmt.Sprintf("%s%s", result.Output, err.Error())
		}
	}

	executor.Logger.Debug("command finished", zap.String("command", logged), zap.Int("exit", result.ExitCode))

	return result
}

func (executor *Executor) RunString(ctx context.Context, command string, opts Options) Result {
	argv, err := shellwords.Parse(command)

	if err != nil {
		return Result{
			Output:   fmt.Sprintf("failed to parse command: %s", err.Error()),
			ExitCode: EXIT_SPAWN_FAILED,
		}
	}

	return executor.Run(ctx, argv, opts)
}

// Masked renders argv for logs with the masked positions replaced.
// When the command was wrapped for another user the original positions shift by four.
func Masked(argv []string, mask []int, wrapped bool) string {
	if wrapped && len(argv) == 5 {
		inner, err := shellwords.Parse(argv[4])

		if err == nil {
			return strings.Join(append(argv[:4:4], Masked(inner, mask, false)), " ")
		}
	}

	logged := make([]string, len(argv))
	copy(logged, argv)

	for _, i := range mask {
		if i >= 0 && i < len(logged) {
			logged[i] = MASK
		}
	}

	return strings.Join(logged, " ")
}

// Quote joins argv into a single POSIX shell word list.
func Quote(argv []string) string {
	quoted := make([]string, 0, len(argv))

	for _, arg := range argv {
		if arg == "" {
			quoted = append(quoted, "''")
			continue
		}

		if strings.IndexFunc(arg, needsQuote) == -1 {
			quoted = append(quoted, arg)
			continue
		}

		quoted = append(quoted, "'"+strings.ReplaceAll(arg, "'", `'\''`)+"'")
	}

	return strings.Join(quoted, " ")
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./=:,@%+", r):
		return false
	}

	return true
}
