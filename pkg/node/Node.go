package node

import (
	"context"
	"errors"
	"fmt"

	"github.com/simplecontainer/sapha/pkg/rpc"
	"github.com/simplecontainer/sapha/pkg/static"
	"go.uber.org/zap"
)

func DefaultPolicy() Policy {
	return Policy{
		Unit:    static.DEFAULT_TIME_UNIT,
		Retries: static.DEFAULT_CALL_RETRIES,
		Ceiling: static.DEFAULT_POLL_CEILING,
	}
}

func New(host string, ips []string, dial Dialer, policy Policy, logger *zap.Logger) *Node {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Node{
		Host:   host,
		IPs:    ips,
		Role:   static.ROLE_SLAVE,
		Policy: policy,
		Logger: logger.With(zap.String("node", host)),
		dial:   dial,
	}
}

// Address picks the primary ring address, falling back to the host name.
func (node *Node) Address() string {
	if len(node.IPs) > 0 {
		return node.IPs[0]
	}

	return node.Host
}

func (node *Node) Connected() bool {
	node.lock.Lock()
	defer node.lock.Unlock()

	return node.transport != nil
}

// Connect binds a new transport and confirms the listener answers.
func (node *Node) Connect(ctx context.Context) error {
	node.lock.Lock()

	if node.transport != nil {
		node.lock.Unlock()
		return fmt.Errorf("%w: %s", ERROR_ALREADY_CONNECTED, node.Host)
	}

	transport, err := node.dial(ctx, node.Host, node.IPs)

	if err != nil {
		node.lock.Unlock()
		return fmt.Errorf("%w: %s: %s", ERROR_FATAL_CONNECTION, node.Host, err.Error())
	}

	node.transport = transport
	node.lock.Unlock()

	if err = node.Ping(ctx); err != nil {
		node.Disconnect()
		return fmt.Errorf("%w: %s: %s", ERROR_FATAL_CONNECTION, node.Host, err.Error())
	}

	node.Logger.Info("connected to node", zap.String("address", node.Address()))

	return nil
}

func (node *Node) Disconnect() {
	node.lock.Lock()
	defer node.lock.Unlock()

	if node.transport != nil {
		_ = node.transport.Close()
		node.transport = nil
	}
}

func (node *Node) Ping(ctx context.Context) error {
	response, err := node.Call(ctx, static.METHOD_PING)

	if err != nil {
		return err
	}

	if !response.Succeeded() {
		return fmt.Errorf("ping to %s answered %s", node.Host, response.String())
	}

	return nil
}

// Shutdown asks the remote listener to exit and drops the handle. The peer may
// close the connection before answering, which is not an error.
func (node *Node) Shutdown(ctx context.Context) error {
	transport := node.current()

	if transport == nil {
		return nil
	}

	defer node.Disconnect()

	_, err := transport.Call(ctx, static.METHOD_SHUTDOWN)

	if err != nil && !errors.Is(err, rpc.ERROR_TRANSIENT) {
		return err
	}

	node.Logger.Info("remote agent shut down")

	return nil
}

func (node *Node) current() rpc.Transport {
	node.lock.Lock()
	defer node.lock.Unlock()

	return node.transport
}
