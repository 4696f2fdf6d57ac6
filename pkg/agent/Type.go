package agent

import (
	"context"
	"sync"

	"github.com/simplecontainer/sapha/pkg/components"
	"github.com/simplecontainer/sapha/pkg/rpc"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"go.uber.org/zap"
)

// Gate opens and closes the inbound path to the RPC port.
type Gate interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error
}

type Agent struct {
	Registry *components.Registry
	Server   *rpc.Server
	Gate     Gate
	Logger   *zap.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	snapshot *snapshot.Snapshot
	active   map[string]components.Applier
	busy     bool
	stopping bool
	last     rpc.Response
	lock     sync.Mutex
	inflight sync.WaitGroup
	done     chan struct{}
	once     sync.Once
}
