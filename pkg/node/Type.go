package node

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/simplecontainer/sapha/pkg/rpc"
	"go.uber.org/zap"
)

type Outcome string

const (
	OUTCOME_SUCCEEDED Outcome = "succeeded"
	OUTCOME_FAILED    Outcome = "failed"
	OUTCOME_FATAL     Outcome = "fatal"
)

// Result is all the orchestrator sees of a remote operation.
type Result struct {
	Outcome  Outcome
	Response rpc.Response
	Message  string
}

// Dialer opens a transport to a peer given its name and addresses.
type Dialer func(ctx context.Context, host string, ips []string) (rpc.Transport, error)

// Policy holds the retry and polling budget. Unit scales every delay.
type Policy struct {
	Unit    time.Duration
	Retries int
	Ceiling int
	Timer   func() backoff.Timer
}

type Node struct {
	Host    string
	IPs     []string
	Role    string
	Busy    bool
	Retries int
	Policy  Policy
	Logger  *zap.Logger

	dial      Dialer
	transport rpc.Transport
	lock      sync.Mutex
}

// Nodes keeps peers unique by host name in registration order.
type Nodes struct {
	Nodes []*Node
}
