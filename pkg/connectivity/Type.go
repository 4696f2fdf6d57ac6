package connectivity

import (
	"context"
	"sync"

	"github.com/simplecontainer/sapha/pkg/node"
	"go.uber.org/zap"
)

// Bootstrapper prepares a peer so its RPC listener can be reached.
type Bootstrapper interface {
	EnsureTrust(ctx context.Context, host string, ips []string) error
	StartAgent(ctx context.Context, host string, ips []string) error
	StopAgent(ctx context.Context, host string, ips []string) error
	CheckReachable(ctx context.Context, host string, ips []string) error
}

type Manager struct {
	Nodes        *node.Nodes
	Bootstrapper Bootstrapper
	Dialer       node.Dialer
	Policy       node.Policy
	Logger       *zap.Logger
	lock         sync.Mutex
}
