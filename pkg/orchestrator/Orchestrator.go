package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simplecontainer/sapha/pkg/components"
	"github.com/simplecontainer/sapha/pkg/connectivity"
	"github.com/simplecontainer/sapha/pkg/metrics"
	"github.com/simplecontainer/sapha/pkg/node"
	"github.com/simplecontainer/sapha/pkg/nodelog"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/static"
	"go.uber.org/zap"
)

const DEFAULT_TEARDOWN = 30 * time.Second

// New takes its own copy of s, sorted into apply order; later edits by the
// caller do not reach a run.
func New(s *snapshot.Snapshot, registry *components.Registry, connectivity *connectivity.Manager, log *nodelog.Logger, progress nodelog.Progress, opts Options) *Orchestrator {
	if progress == nil {
		progress = nodelog.NopProgress{}
	}

	if opts.Teardown == 0 {
		opts.Teardown = DEFAULT_TEARDOWN
	}

	clone := s.Clone()
	clone.Sort()

	return &Orchestrator{
		Snapshot:     clone,
		Registry:     registry,
		Connectivity: connectivity,
		Log:          log,
		Progress:     progress,
		Options:      opts,
		Logger:       log.Zap,
	}
}

// Run applies every component locally as master, then on each other member
// in membership order as slave. Failures are recorded and never abort the run.
func (o *Orchestrator) Run(ctx context.Context) Summary {
	summary := Summary{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}

	o.Logger.Info("installation started", zap.String("run", summary.RunID), zap.String("local", o.Options.Local))

	if _, found := o.Snapshot.Member(o.Options.Local); !found {
		o.Log.Warning(o.Options.Local, fmt.Sprintf("%s: %s", ERROR_LOCAL_MEMBER, o.Options.Local))
	}

	others := o.register()
	total := len(others) + 1

	o.Progress.OnNodeStart(o.Options.Local, 1, total)
	o.local(ctx, &summary)

	for i, member := range others {
		o.Progress.OnNodeStart(member.Host, i+2, total)
		o.remote(ctx, member, &summary)
	}

	summary.Finished = time.Now()
	summary.Fatal = o.Log.HasFatal()

	o.Logger.Info("installation finished",
		zap.String("run", summary.RunID),
		zap.Int("failures", len(summary.Failures())),
		zap.Bool("fatal", summary.Fatal),
	)

	return summary
}

// Unattended refuses to start unless the configuration is valid and every
// other member is reachable over SSH. Nothing is applied on refusal.
func (o *Orchestrator) Unattended(ctx context.Context) (Summary, error) {
	messages := o.Snapshot.Validate()

	if _, found := o.Snapshot.Member(o.Options.Local); !found {
		messages = append(messages, fmt.Sprintf("%s: %s", ERROR_LOCAL_MEMBER, o.Options.Local))
	}

	if len(messages) == 0 {
		o.register()
		messages = o.Connectivity.Reachable(ctx)
	}

	if len(messages) > 0 {
		for _, message := range messages {
			o.Log.Error(o.Options.Local, message)
		}

		return Summary{}, &PreflightError{Messages: messages}
	}

	return o.Run(ctx), nil
}

func (o *Orchestrator) register() []snapshot.Member {
	others := o.Snapshot.Others(o.Options.Local)

	for _, member := range others {
		o.Connectivity.Register(member.Host, member.IPs)
	}

	return others
}

func (o *Orchestrator) local(ctx context.Context, summary *Summary) {
	host := o.Options.Local
	master := o.Snapshot.WithRole(static.ROLE_MASTER)

	for _, id := range o.Snapshot.ComponentIDs() {
		o.Progress.OnTaskStart(host, id)

		result := TaskResult{Node: host, Component: id, Outcome: node.OUTCOME_SUCCEEDED}
		applier, err := o.Registry.Get(id)

		if err == nil {
			start := time.Now()
			err = applier.Apply(ctx, master, static.ROLE_MASTER)
			metrics.ApplyDuration.Observe(time.Since(start).Seconds(), id, static.ROLE_MASTER)
		}

		if err != nil {
			result.Outcome = node.OUTCOME_FAILED
			result.Message = err.Error()
			o.Log.Error(host, fmt.Sprintf("%s failed: %s", id, err.Error()))
		} else {
			o.Log.Info(host, fmt.Sprintf("%s applied", id))
		}

		metrics.Applies.Increment(id, static.ROLE_MASTER, string(result.Outcome))
		o.finish(summary, result)
	}
}

func (o *Orchestrator) remote(ctx context.Context, member snapshot.Member, summary *Summary) {
	host := member.Host

	if err := o.Connectivity.Bootstrap(ctx, host); err != nil {
		o.fatal(summary, host, "connect", err.Error())
		return
	}

	if err := o.Connectivity.Connect(ctx, host); err != nil {
		o.fatal(summary, host, "connect", err.Error())
		o.stop(ctx, host)
		return
	}

	defer o.teardown(ctx, host)

	data, err := o.Snapshot.Marshal()

	if err != nil {
		o.fatal(summary, host, "import_config", err.Error())
		return
	}

	imported, err := o.Connectivity.Call(ctx, host, static.METHOD_IMPORT_CONFIG, string(data))

	if err != nil {
		o.fatal(summary, host, "import_config", err.Error())
		return
	}

	if imported.Outcome != node.OUTCOME_SUCCEEDED {
		o.fatal(summary, host, "import_config", imported.Message)
		return
	}

	for _, id := range o.Snapshot.ComponentIDs() {
		o.Progress.OnTaskStart(host, id)

		result, err := o.Connectivity.Call(ctx, host, static.METHOD_APPLY, id, static.ROLE_SLAVE)

		if err != nil {
			result = node.Result{Outcome: node.OUTCOME_FATAL, Message: err.Error()}
		}

		switch result.Outcome {
		case node.OUTCOME_SUCCEEDED:
			o.Log.Info(host, fmt.Sprintf("%s applied", id))
			o.finish(summary, TaskResult{Node: host, Component: id, Outcome: result.Outcome, Message: result.Message})
		case node.OUTCOME_FAILED:
			o.Log.Error(host, fmt.Sprintf("%s failed: %s", id, result.Message))
			o.finish(summary, TaskResult{Node: host, Component: id, Outcome: result.Outcome, Message: result.Message})
		default:
			o.fatal(summary, host, id, result.Message)
			return
		}
	}
}

// teardown always runs, with its own deadline, so a cancelled run still stops
// the remote listener.
func (o *Orchestrator) teardown(ctx context.Context, host string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.Options.Teardown)
	defer cancel()

	if err := o.Connectivity.Teardown(ctx, host); err != nil {
		o.Log.Warning(host, fmt.Sprintf("shutdown failed: %s", err.Error()))
		return
	}

	o.Log.Info(host, "remote agent stopped")
}

// stop kills an agent that was started but never answered, so it does not
// keep the port open after the run.
func (o *Orchestrator) stop(ctx context.Context, host string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.Options.Teardown)
	defer cancel()

	if err := o.Connectivity.StopAgent(ctx, host); err != nil {
		o.Log.Warning(host, fmt.Sprintf("failed to stop remote agent: %s", err.Error()))
		return
	}

	o.Log.Info(host, "remote agent stopped over ssh")
}

func (o *Orchestrator) fatal(summary *Summary, host string, task string, message string) {
	o.Log.Fatal(host, fmt.Sprintf("%s on %s aborted: %s", task, host, message))
	o.finish(summary, TaskResult{Node: host, Component: task, Outcome: node.OUTCOME_FATAL, Message: message})
}

func (o *Orchestrator) finish(summary *Summary, result TaskResult) {
	summary.Results = append(summary.Results, result)
	o.Progress.OnTaskDone(result.Node, result.Component, string(result.Outcome))
}
