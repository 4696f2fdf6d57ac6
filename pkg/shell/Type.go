package shell

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	EXIT_TIMEOUT      = -1
	EXIT_SPAWN_FAILED = 127
	MASK              = "********"
)

// Grace period for pipes held open by grandchildren after the child is killed
const WAIT_DELAY = 500 * time.Millisecond

type Runner interface {
	Run(ctx context.Context, argv []string, opts Options) Result
	RunString(ctx context.Context, command string, opts Options) Result
}

type Executor struct {
	Logger *zap.Logger
}

type Options struct {
	AsUser  string
	Timeout time.Duration
	Mask    []int
}

type Result struct {
	Output   string
	ExitCode int
}
