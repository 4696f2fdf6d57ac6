package node

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/simplecontainer/sapha/pkg/metrics"
	"github.com/simplecontainer/sapha/pkg/rpc"
	"github.com/simplecontainer/sapha/pkg/static"
	"go.uber.org/zap"
)

// Call retries transport faults with the call backoff and returns
// ERROR_FATAL_CALL once the budget is spent. Application failures come back
// in the response and are never retried.
func (node *Node) Call(ctx context.Context, method string, params ...string) (rpc.Response, error) {
	transport := node.current()

	if transport == nil {
		return rpc.Response{}, fmt.Errorf("%w: %w: %s", ERROR_FATAL_CALL, ERROR_NOT_CONNECTED, node.Host)
	}

	var response rpc.Response

	operation := func() error {
		var err error
		response, err = transport.Call(ctx, method, params...)

		if err == nil || errors.Is(err, rpc.ERROR_TRANSIENT) {
			return err
		}

		return backoff.Permanent(err)
	}

	notify := func(err error, delay time.Duration) {
		node.lock.Lock()
		node.Retries++
		node.lock.Unlock()

		metrics.RpcRetries.Increment(node.Host, method)
		node.Logger.Warn("rpc call failed, retrying",
			zap.String("method", method),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
	}

	err := backoff.RetryNotifyWithTimer(operation, backoff.WithContext(node.Policy.callBackOff(), ctx), notify, node.Policy.timer())

	if err != nil {
		return rpc.Response{}, fmt.Errorf("%w: %s on %s: %s", ERROR_FATAL_CALL, method, node.Host, err.Error())
	}

	return response, nil
}

// Invoke is Call without the busy handshake, for methods that are safe while
// an apply runs (ping, busy, last_result).
func (node *Node) Invoke(ctx context.Context, method string, params ...string) Result {
	response, err := node.Call(ctx, method, params...)

	if err != nil {
		return Result{Outcome: OUTCOME_FATAL, Message: err.Error()}
	}

	return resultOf(response)
}

// PollingCall refuses to start while the node is busy, calls method and, when
// the answer is pending, polls busy until it clears or the ceiling is reached.
func (node *Node) PollingCall(ctx context.Context, method string, params ...string) Result {
	busy, err := node.busy(ctx)

	if err != nil {
		return Result{Outcome: OUTCOME_FATAL, Message: err.Error()}
	}

	if busy {
		return Result{Outcome: OUTCOME_FAILED, Message: fmt.Sprintf("%s: %s refused %s", ERROR_NODE_BUSY, node.Host, method)}
	}

	response, err := node.Call(ctx, method, params...)

	if err != nil {
		return Result{Outcome: OUTCOME_FATAL, Message: err.Error()}
	}

	if !response.IsPending() {
		return resultOf(response)
	}

	node.Logger.Info("operation in progress, waiting for node", zap.String("method", method))

	operation := func() error {
		busy, err := node.busy(ctx)

		if err != nil {
			return backoff.Permanent(err)
		}

		if busy {
			return ERROR_STILL_BUSY
		}

		return nil
	}

	err = backoff.RetryNotifyWithTimer(operation, backoff.WithContext(node.Policy.pollBackOff(), ctx), nil, node.Policy.timer())

	if errors.Is(err, ERROR_STILL_BUSY) {
		return Result{
			Outcome:  OUTCOME_FAILED,
			Response: response,
			Message:  fmt.Sprintf("%s: %s did not finish %s within %d time units", ERROR_STILL_BUSY, node.Host, method, node.Policy.Ceiling),
		}
	}

	if err != nil {
		return Result{Outcome: OUTCOME_FATAL, Message: err.Error()}
	}

	last, err := node.Call(ctx, static.METHOD_LAST_RESULT)

	if err != nil {
		return Result{Outcome: OUTCOME_FATAL, Message: err.Error()}
	}

	return resultOf(last)
}

func (node *Node) busy(ctx context.Context) (bool, error) {
	response, err := node.Call(ctx, static.METHOD_BUSY)

	if err != nil {
		return false, err
	}

	node.lock.Lock()
	node.Busy = response.Bool()
	node.lock.Unlock()

	return response.Bool(), nil
}

func resultOf(response rpc.Response) Result {
	if response.Succeeded() {
		return Result{Outcome: OUTCOME_SUCCEEDED, Response: response, Message: response.String()}
	}

	return Result{Outcome: OUTCOME_FAILED, Response: response, Message: response.String()}
}
