package agent

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/simplecontainer/sapha/pkg/components"
	"github.com/simplecontainer/sapha/pkg/metrics"
	"github.com/simplecontainer/sapha/pkg/rpc"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/static"
	"go.uber.org/zap"
)

func New(registry *components.Registry, server *rpc.Server, gate Gate, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	agent := &Agent{
		Registry: registry,
		Server:   server,
		Gate:     gate,
		Logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		active:   make(map[string]components.Applier),
		last:     rpc.Failed(ERROR_NOTHING_APPLIED.Error()),
		done:     make(chan struct{}),
	}

	server.Handle(static.METHOD_PING, agent.Ping)
	server.Handle(static.METHOD_BUSY, agent.Busy)
	server.Handle(static.METHOD_IMPORT_CONFIG, agent.ImportConfig)
	server.Handle(static.METHOD_APPLY, agent.Apply)
	server.Handle(static.METHOD_LAST_RESULT, agent.LastResult)
	server.Handle(static.METHOD_SHUTDOWN, agent.Shutdown)

	return agent
}

// Serve opens the gate, serves until shutdown is requested or ctx ends, then
// waits for a running apply and closes the gate again. A gate that cannot be
// opened is logged and the agent serves anyway.
func (agent *Agent) Serve(ctx context.Context, ln net.Listener) error {
	opened := false

	if agent.Gate != nil {
		if err := agent.Gate.Open(ctx); err != nil {
			agent.Logger.Warn("failed to open firewall rule, serving without it", zap.Error(err))
		} else {
			opened = true
		}
	}

	errs := make(chan error, 1)

	go func() {
		errs <- agent.Server.Serve(ln)
	}()

	var err error

	select {
	case <-agent.done:
	case <-ctx.Done():
		agent.cancel()
	case err = <-errs:
	}

	agent.lock.Lock()
	agent.stopping = true
	agent.lock.Unlock()

	agent.inflight.Wait()
	agent.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if shutdownErr := agent.Server.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}

	if opened {
		if closeErr := agent.Gate.Close(shutdownCtx); closeErr != nil {
			agent.Logger.Warn("failed to close firewall rule", zap.Error(closeErr))
		}
	}

	agent.Logger.Info("agent stopped")

	return err
}

func (agent *Agent) ListenAndServe(ctx context.Context, port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))

	if err != nil {
		return err
	}

	agent.Logger.Info("agent listening", zap.String("address", ln.Addr().String()))

	return agent.Serve(ctx, ln)
}

func (agent *Agent) Done() <-chan struct{} {
	return agent.done
}

func (agent *Agent) Ping(ctx context.Context, params []string) rpc.Response {
	return rpc.Ok(true)
}

func (agent *Agent) Busy(ctx context.Context, params []string) rpc.Response {
	agent.lock.Lock()
	defer agent.lock.Unlock()

	return rpc.Ok(agent.busy)
}

// ImportConfig replaces the imported snapshot and the whole set of components
// that can be applied.
func (agent *Agent) ImportConfig(ctx context.Context, params []string) rpc.Response {
	if len(params) != 1 {
		return rpc.Failed(fmt.Sprintf("%s: import_config takes the serialized configuration", ERROR_BAD_PARAMETERS))
	}

	imported, err := snapshot.Unmarshal([]byte(params[0]))

	if err != nil {
		agent.Logger.Error("failed to import configuration", zap.Error(err))
		return rpc.Failed(err.Error())
	}

	if err = imported.Check(); err != nil {
		return rpc.Failed(err.Error())
	}

	active := make(map[string]components.Applier)

	for _, id := range imported.ComponentIDs() {
		applier, err := agent.Registry.Get(id)

		if err != nil {
			return rpc.Failed(err.Error())
		}

		active[id] = applier
	}

	agent.lock.Lock()
	defer agent.lock.Unlock()

	if agent.busy {
		return rpc.Failed(ERROR_BUSY.Error())
	}

	if agent.snapshot != nil {
		changes, err := snapshot.Diff(agent.snapshot, imported)

		if err == nil && len(changes) > 0 {
			agent.Logger.Info("configuration replaced", zap.Strings("changes", changes))
		}
	}

	agent.snapshot = imported
	agent.active = active

	agent.Logger.Info("configuration imported",
		zap.String("scenario", imported.Scenario),
		zap.Strings("components", imported.ComponentIDs()),
	)

	return rpc.Ok(true)
}

// Apply runs one component. Only one apply may be in flight; components that
// are asynchronous for the role answer pending and finish in the background.
func (agent *Agent) Apply(ctx context.Context, params []string) rpc.Response {
	if len(params) != 2 {
		return rpc.Failed(fmt.Sprintf("%s: apply takes component id and role", ERROR_BAD_PARAMETERS))
	}

	id, role := params[0], params[1]

	agent.lock.Lock()

	if agent.stopping {
		agent.lock.Unlock()
		return rpc.Failed(ERROR_STOPPING.Error())
	}

	if agent.busy {
		agent.lock.Unlock()
		return rpc.Failed(ERROR_BUSY.Error())
	}

	if agent.snapshot == nil {
		agent.lock.Unlock()
		return rpc.Failed(ERROR_NO_SNAPSHOT.Error())
	}

	applier, ok := agent.active[id]

	if !ok {
		agent.lock.Unlock()
		return rpc.Failed(fmt.Sprintf("%s: %s", ERROR_NOT_IMPORTED, id))
	}

	agent.busy = true
	s := agent.snapshot.WithRole(role)
	agent.inflight.Add(1)
	agent.lock.Unlock()

	if applier.Async(role) {
		go func() {
			agent.finish(agent.run(agent.ctx, applier, s, role))
		}()

		return rpc.Pending()
	}

	response := agent.run(agent.ctx, applier, s, role)
	agent.finish(response)

	return response
}

func (agent *Agent) run(ctx context.Context, applier components.Applier, s *snapshot.Snapshot, role string) rpc.Response {
	start := time.Now()

	agent.Logger.Info("applying component", zap.String("component", applier.ID()), zap.String("role", role))

	err := applier.Apply(ctx, s, role)
	metrics.ApplyDuration.Observe(time.Since(start).Seconds(), applier.ID(), role)

	if err != nil {
		metrics.Applies.Increment(applier.ID(), role, "failed")
		agent.Logger.Error("component apply failed", zap.String("component", applier.ID()), zap.Error(err))

		return rpc.Failed(err.Error())
	}

	metrics.Applies.Increment(applier.ID(), role, "succeeded")
	agent.Logger.Info("component applied", zap.String("component", applier.ID()))

	return rpc.Ok(true)
}

func (agent *Agent) finish(response rpc.Response) {
	agent.lock.Lock()
	agent.busy = false
	agent.last = response
	agent.lock.Unlock()

	agent.inflight.Done()
}

// LastResult reports the outcome of the most recent apply.
func (agent *Agent) LastResult(ctx context.Context, params []string) rpc.Response {
	agent.lock.Lock()
	defer agent.lock.Unlock()

	if agent.busy {
		return rpc.Pending()
	}

	return agent.last
}

func (agent *Agent) Shutdown(ctx context.Context, params []string) rpc.Response {
	agent.once.Do(func() {
		agent.lock.Lock()
		agent.stopping = true
		agent.lock.Unlock()

		agent.Logger.Info("shutdown requested")
		close(agent.done)
	})

	return rpc.Ok(true)
}
