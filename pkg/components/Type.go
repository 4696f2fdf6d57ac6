package components

import (
	"context"
	"time"

	"github.com/simplecontainer/sapha/pkg/shell"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"go.uber.org/zap"
)

// Applier configures one component on the node it runs on.
type Applier interface {
	ID() string
	Apply(ctx context.Context, s *snapshot.Snapshot, role string) error
	// Async reports whether the remote side should run the apply in the background.
	Async(role string) bool
}

type Registry struct {
	appliers map[string]Applier
}

// Host is what every applier needs to touch the local machine.
type Host struct {
	Runner  shell.Runner
	Root    string
	Timeout time.Duration
	Logger  *zap.Logger
}

type Ntp struct{ *Host }
type Watchdog struct{ *Host }
type Fencing struct{ *Host }
type Cluster struct{ *Host }
type Hana struct{ *Host }
