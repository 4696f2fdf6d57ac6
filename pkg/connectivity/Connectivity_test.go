package connectivity

import (
	"context"
	"errors"
	"net"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/simplecontainer/sapha/pkg/node"
	"github.com/simplecontainer/sapha/pkg/rpc"
	"github.com/simplecontainer/sapha/pkg/static"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBootstrapper struct {
	lock        sync.Mutex
	trustFails  map[string]error
	startFails  map[string]error
	unreachable map[string]error
	started     []string
	stopped     []string
}

func (f *fakeBootstrapper) EnsureTrust(ctx context.Context, host string, ips []string) error {
	return f.trustFails[host]
}

func (f *fakeBootstrapper) StartAgent(ctx context.Context, host string, ips []string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if err := f.startFails[host]; err != nil {
		return err
	}

	f.started = append(f.started, host)

	return nil
}

func (f *fakeBootstrapper) StopAgent(ctx context.Context, host string, ips []string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.stopped = append(f.stopped, host)

	return nil
}

func (f *fakeBootstrapper) CheckReachable(ctx context.Context, host string, ips []string) error {
	return f.unreachable[host]
}

func newManager(bootstrapper Bootstrapper, dialer node.Dialer) *Manager {
	return New(bootstrapper, dialer, node.DefaultPolicy(), nil)
}

func TestRegisterKeepsOrderAndLastWins(t *testing.T) {
	manager := newManager(&fakeBootstrapper{}, nil)

	manager.Register("hana02", []string{"192.168.100.12"})
	manager.Register("hana03", []string{"192.168.100.13"})
	manager.Register("hana02", []string{"10.0.0.12"})

	assert.Equal(t, []string{"hana02", "hana03"}, manager.Hosts())

	n, err := manager.Get("hana02")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.12"}, n.IPs)
}

func TestUnknownHostListsKnownHosts(t *testing.T) {
	manager := newManager(&fakeBootstrapper{}, nil)
	manager.Register("hana02", nil)
	manager.Register("hana03", nil)

	testCases := []struct {
		name string
		call func() error
	}{
		{"Call", func() error {
			_, err := manager.Call(context.Background(), "hana09", static.METHOD_PING)
			return err
		}},
		{"Connect", func() error { return manager.Connect(context.Background(), "hana09") }},
		{"Bootstrap", func() error { return manager.Bootstrap(context.Background(), "hana09") }},
		{"Teardown", func() error { return manager.Teardown(context.Background(), "hana09") }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()

			assert.ErrorIs(t, err, ERROR_UNKNOWN_HOST)
			assert.Contains(t, err.Error(), "hana09")
			assert.Contains(t, err.Error(), "hana02, hana03")
		})
	}
}

func TestBootstrapAllCollectsEveryFailure(t *testing.T) {
	bootstrapper := &fakeBootstrapper{
		trustFails: map[string]error{"hana02": errors.New("permission denied")},
		startFails: map[string]error{"hana04": errors.New("agent binary missing")},
	}

	manager := newManager(bootstrapper, nil)
	manager.Register("hana02", nil)
	manager.Register("hana03", nil)
	manager.Register("hana04", nil)

	err := manager.BootstrapAll(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ERROR_BOOTSTRAP)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Contains(t, err.Error(), "agent binary missing")
	assert.Equal(t, []string{"hana03"}, bootstrapper.started)
}

func TestReachable(t *testing.T) {
	manager := newManager(&fakeBootstrapper{
		unreachable: map[string]error{"hana03": errors.New("ssh hana03 unreachable")},
	}, nil)
	manager.Register("hana02", nil)
	manager.Register("hana03", nil)

	assert.Equal(t, []string{"ssh hana03 unreachable"}, manager.Reachable(context.Background()))
}

func TestCallOverHttp(t *testing.T) {
	server := rpc.NewServer(nil)

	var lock sync.Mutex
	applied := []string{}

	server.Handle(static.METHOD_PING, func(ctx context.Context, params []string) rpc.Response { return rpc.Ok(true) })
	server.Handle(static.METHOD_BUSY, func(ctx context.Context, params []string) rpc.Response { return rpc.Ok(false) })
	server.Handle(static.METHOD_SHUTDOWN, func(ctx context.Context, params []string) rpc.Response { return rpc.Ok(true) })
	server.Handle(static.METHOD_APPLY, func(ctx context.Context, params []string) rpc.Response {
		lock.Lock()
		defer lock.Unlock()

		applied = append(applied, params...)

		return rpc.Ok(true)
	})

	ts := httptest.NewServer(server.Engine)
	defer ts.Close()

	port := ts.Listener.Addr().(*net.TCPAddr).Port

	manager := newManager(&fakeBootstrapper{}, HttpDialer(port, 2*time.Second))
	manager.Register("hana02", []string{"127.0.0.1"})

	require.NoError(t, manager.ConnectAll(context.Background()))
	require.NoError(t, manager.Connect(context.Background(), "hana02"))

	result, err := manager.Call(context.Background(), "hana02", static.METHOD_APPLY, static.COMPONENT_NTP, static.ROLE_SLAVE)
	require.NoError(t, err)
	assert.Equal(t, node.OUTCOME_SUCCEEDED, result.Outcome)
	assert.Equal(t, []string{static.COMPONENT_NTP, static.ROLE_SLAVE}, applied)

	results := manager.Broadcast(context.Background(), static.METHOD_PING)
	assert.Equal(t, node.OUTCOME_SUCCEEDED, results["hana02"].Outcome)

	require.NoError(t, manager.Teardown(context.Background(), "hana02"))

	n, err := manager.Get("hana02")
	require.NoError(t, err)
	assert.False(t, n.Connected())
}

func TestHttpDialerFallsBackToNextAddress(t *testing.T) {
	server := rpc.NewServer(nil)
	server.Handle(static.METHOD_PING, func(ctx context.Context, params []string) rpc.Response { return rpc.Ok(true) })

	ts := httptest.NewServer(server.Engine)
	defer ts.Close()

	port := ts.Listener.Addr().(*net.TCPAddr).Port

	testCases := []struct {
		name     string
		ips      []string
		expected string
	}{
		{"First address answers", []string{"127.0.0.1", "127.0.0.2"}, "127.0.0.1"},
		{"Second address answers", []string{"127.0.0.2", "127.0.0.1"}, "127.0.0.1"},
		{"Nothing answers", []string{"127.0.0.2", "127.0.0.3"}, "127.0.0.2"},
		{"Single address", []string{"127.0.0.3"}, "127.0.0.3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			transport, err := HttpDialer(port, 2*time.Second)(context.Background(), "hana02", tc.ips)
			require.NoError(t, err)

			client, ok := transport.(*rpc.Client)
			require.True(t, ok)
			assert.Contains(t, client.URL, net.JoinHostPort(tc.expected, strconv.Itoa(port)))
		})
	}
}

func TestBroadcastDoesNotWaitForBusyNodes(t *testing.T) {
	server := rpc.NewServer(nil)
	server.Handle(static.METHOD_PING, func(ctx context.Context, params []string) rpc.Response { return rpc.Ok(true) })
	server.Handle(static.METHOD_BUSY, func(ctx context.Context, params []string) rpc.Response { return rpc.Ok(true) })

	ts := httptest.NewServer(server.Engine)
	defer ts.Close()

	port := ts.Listener.Addr().(*net.TCPAddr).Port

	manager := newManager(&fakeBootstrapper{}, HttpDialer(port, 2*time.Second))
	manager.Register("hana02", []string{"127.0.0.1"})

	require.NoError(t, manager.Connect(context.Background(), "hana02"))

	results := manager.Broadcast(context.Background(), static.METHOD_PING)
	assert.Equal(t, node.OUTCOME_SUCCEEDED, results["hana02"].Outcome)
}

func TestStopAgentDisconnects(t *testing.T) {
	bootstrapper := &fakeBootstrapper{}

	manager := newManager(bootstrapper, nil)
	manager.Register("hana02", nil)

	require.NoError(t, manager.StopAgent(context.Background(), "hana02"))
	assert.Equal(t, []string{"hana02"}, bootstrapper.stopped)
	assert.ErrorIs(t, manager.StopAgent(context.Background(), "hana09"), ERROR_UNKNOWN_HOST)
}
