package orchestrator

import (
	"time"

	"github.com/simplecontainer/sapha/pkg/components"
	"github.com/simplecontainer/sapha/pkg/connectivity"
	"github.com/simplecontainer/sapha/pkg/node"
	"github.com/simplecontainer/sapha/pkg/nodelog"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"go.uber.org/zap"
)

type Options struct {
	// Local is the host name of the node running the installation.
	Local string
	// Teardown bounds the remote shutdown call, which runs even after cancellation.
	Teardown time.Duration
}

type Orchestrator struct {
	Snapshot     *snapshot.Snapshot
	Registry     *components.Registry
	Connectivity *connectivity.Manager
	Log          *nodelog.Logger
	Progress     nodelog.Progress
	Options      Options
	Logger       *zap.Logger
}

type TaskResult struct {
	Node      string
	Component string
	Outcome   node.Outcome
	Message   string
}

type Summary struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Results  []TaskResult
	Fatal    bool
}

// PreflightError lists every reason an unattended run refused to start.
type PreflightError struct {
	Messages []string
}
