package metrics

import "github.com/prometheus/client_golang/prometheus"

var RpcCalls = NewCounter("rpc_calls_total", "RPC calls served by the agent", []string{"method", "status"})
var RpcRetries = NewCounter("rpc_retries_total", "RPC calls retried after a transient fault", []string{"host", "method"})
var Applies = NewCounter("component_applies_total", "Component apply outcomes", []string{"component", "role", "outcome"})
var ApplyDuration = NewHistogram("component_apply_seconds", "Component apply duration", []string{"component", "role"}, prometheus.ExponentialBuckets(0.5, 2, 14))
