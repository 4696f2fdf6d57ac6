package connectivity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/simplecontainer/sapha/pkg/node"
	"github.com/simplecontainer/sapha/pkg/rpc"
	"github.com/simplecontainer/sapha/pkg/static"
	"go.uber.org/zap"
)

func New(bootstrapper Bootstrapper, dialer node.Dialer, policy node.Policy, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manager{
		Nodes:        node.NewNodes(),
		Bootstrapper: bootstrapper,
		Dialer:       dialer,
		Policy:       policy,
		Logger:       logger,
	}
}

// HttpDialer tries each address of a node in order and keeps the first one
// whose agent answers ping. When none answers it falls back to the first
// address so the caller's retry policy applies there.
func HttpDialer(port int, timeout time.Duration) node.Dialer {
	return func(ctx context.Context, host string, ips []string) (rpc.Transport, error) {
		if len(ips) == 0 {
			return rpc.NewClient(host, port, timeout), nil
		}

		if len(ips) == 1 {
			return rpc.NewClient(ips[0], port, timeout), nil
		}

		for _, ip := range ips {
			client := rpc.NewClient(ip, port, timeout)

			if _, err := client.Call(ctx, static.METHOD_PING); !errors.Is(err, rpc.ERROR_TRANSIENT) {
				return client, nil
			}

			client.Close()
		}

		return rpc.NewClient(ips[0], port, timeout), nil
	}
}

// Register adds or replaces host. A replaced node loses its connection.
func (manager *Manager) Register(host string, ips []string) *node.Node {
	manager.lock.Lock()
	defer manager.lock.Unlock()

	if existing := manager.Nodes.Find(host); existing != nil {
		existing.Disconnect()
	}

	n := node.New(host, ips, manager.Dialer, manager.Policy, manager.Logger)
	manager.Nodes.Add(n)

	return n
}

func (manager *Manager) Hosts() []string {
	manager.lock.Lock()
	defer manager.lock.Unlock()

	return manager.Nodes.Hosts()
}

func (manager *Manager) Get(host string) (*node.Node, error) {
	manager.lock.Lock()
	defer manager.lock.Unlock()

	n := manager.Nodes.Find(host)

	if n == nil {
		return nil, fmt.Errorf("%w %s, known hosts: %s", ERROR_UNKNOWN_HOST, host, strings.Join(manager.Nodes.Hosts(), ", "))
	}

	return n, nil
}

// Bootstrap establishes trust with host and starts its remote agent.
func (manager *Manager) Bootstrap(ctx context.Context, host string) error {
	n, err := manager.Get(host)

	if err != nil {
		return err
	}

	if err = manager.Bootstrapper.EnsureTrust(ctx, n.Host, n.IPs); err != nil {
		return fmt.Errorf("%w: %s: %s", ERROR_BOOTSTRAP, host, err.Error())
	}

	if err = manager.Bootstrapper.StartAgent(ctx, n.Host, n.IPs); err != nil {
		return fmt.Errorf("%w: %s: %s", ERROR_BOOTSTRAP, host, err.Error())
	}

	return nil
}

// StopAgent kills the remote agent over SSH. It is the cleanup path for an
// agent that was started but never answered over RPC.
func (manager *Manager) StopAgent(ctx context.Context, host string) error {
	n, err := manager.Get(host)

	if err != nil {
		return err
	}

	n.Disconnect()

	return manager.Bootstrapper.StopAgent(ctx, n.Host, n.IPs)
}

// BootstrapAll tries every node and reports all failures together.
func (manager *Manager) BootstrapAll(ctx context.Context) error {
	var errs []error

	for _, host := range manager.Hosts() {
		if err := manager.Bootstrap(ctx, host); err != nil {
			manager.Logger.Error("bootstrap failed", zap.String("node", host), zap.Error(err))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (manager *Manager) Connect(ctx context.Context, host string) error {
	n, err := manager.Get(host)

	if err != nil {
		return err
	}

	if n.Connected() {
		return nil
	}

	return n.Connect(ctx)
}

func (manager *Manager) ConnectAll(ctx context.Context) error {
	var errs []error

	for _, host := range manager.Hosts() {
		if err := manager.Connect(ctx, host); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Reachable checks SSH reachability of every node and returns one message per failure.
func (manager *Manager) Reachable(ctx context.Context) []string {
	var messages []string

	for _, host := range manager.Hosts() {
		n, err := manager.Get(host)

		if err == nil {
			err = manager.Bootstrapper.CheckReachable(ctx, n.Host, n.IPs)
		}

		if err != nil {
			messages = append(messages, err.Error())
		}
	}

	return messages
}

// Call runs method on host with busy polling.
func (manager *Manager) Call(ctx context.Context, host string, method string, params ...string) (node.Result, error) {
	n, err := manager.Get(host)

	if err != nil {
		return node.Result{}, err
	}

	return n.PollingCall(ctx, method, params...), nil
}

// Broadcast runs method on every connected node in registration order. It does
// not wait for busy nodes, so it is meant for methods like ping.
func (manager *Manager) Broadcast(ctx context.Context, method string, params ...string) map[string]node.Result {
	results := make(map[string]node.Result)

	for _, host := range manager.Hosts() {
		n, err := manager.Get(host)

		if err != nil || !n.Connected() {
			continue
		}

		results[host] = n.Invoke(ctx, method, params...)
	}

	return results
}

// Teardown shuts down the remote agent on host and forgets the connection.
func (manager *Manager) Teardown(ctx context.Context, host string) error {
	n, err := manager.Get(host)

	if err != nil {
		return err
	}

	return n.Shutdown(ctx)
}
