package components

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/simplecontainer/sapha/pkg/shell"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/static"
	"go.uber.org/zap"
)

func NewHost(runner shell.Runner, root string, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Host{
		Runner:  runner,
		Root:    root,
		Timeout: static.DEFAULT_COMMAND_TIMEOUT,
		Logger:  logger,
	}
}

func (host *Host) run(ctx context.Context, command string, opts shell.Options) (string, error) {
	if opts.Timeout == 0 {
		opts.Timeout = host.Timeout
	}

	result := host.Runner.RunString(ctx, command, opts)

	if !result.Success() {
		return result.Output, fmt.Errorf("%w: %s exited %d: %s", ERROR_COMMAND_FAILED, shell.Masked(strings.Fields(command), opts.Mask, false), result.ExitCode, strings.TrimSpace(result.Output))
	}

	return result.Output, nil
}

func (host *Host) write(path string, content string) error {
	full := filepath.Join(host.Root, path)

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}

	host.Logger.Debug("writing configuration file", zap.String("path", full))

	return os.WriteFile(full, []byte(content), 0644)
}

func component(s *snapshot.Snapshot, id string) (snapshot.Component, error) {
	c, ok := s.Component(id)

	if !ok {
		return snapshot.Component{}, fmt.Errorf("%w: %s", ERROR_COMPONENT_MISSING, id)
	}

	return c, nil
}

func checkRole(role string) error {
	if role != static.ROLE_MASTER && role != static.ROLE_SLAVE {
		return fmt.Errorf("%w: %q", ERROR_UNKNOWN_ROLE, role)
	}

	return nil
}
