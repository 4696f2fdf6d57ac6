package agent

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/simplecontainer/sapha/pkg/components"
	"github.com/simplecontainer/sapha/pkg/rpc"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/snapshot/mock"
	"github.com/simplecontainer/sapha/pkg/static"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApplier struct {
	id      string
	async   bool
	err     error
	release chan struct{}
	lock    sync.Mutex
	roles   []string
}

func (f *fakeApplier) ID() string { return f.id }

func (f *fakeApplier) Async(role string) bool { return f.async && role == static.ROLE_SLAVE }

func (f *fakeApplier) Apply(ctx context.Context, s *snapshot.Snapshot, role string) error {
	if f.release != nil {
		<-f.release
	}

	f.lock.Lock()
	f.roles = append(f.roles, s.Role)
	f.lock.Unlock()

	return f.err
}

type fakeGate struct {
	openErr error
	opened  bool
	closed  bool
}

func (g *fakeGate) Open(ctx context.Context) error {
	if g.openErr != nil {
		return g.openErr
	}

	g.opened = true
	return nil
}

func (g *fakeGate) Close(ctx context.Context) error { g.closed = true; return nil }

func newAgent(appliers ...components.Applier) *Agent {
	if len(appliers) == 0 {
		for _, id := range static.COMPONENT_ORDER {
			appliers = append(appliers, &fakeApplier{id: id})
		}
	}

	return New(components.NewRegistryFrom(appliers...), rpc.NewServer(nil), &fakeGate{}, nil)
}

func importSnapshot(t *testing.T, agent *Agent, s *snapshot.Snapshot) rpc.Response {
	data, err := s.Marshal()
	require.NoError(t, err)

	return agent.ImportConfig(context.Background(), []string{string(data)})
}

func TestApplyRequiresImport(t *testing.T) {
	agent := newAgent()

	response := agent.Apply(context.Background(), []string{static.COMPONENT_NTP, static.ROLE_SLAVE})

	assert.Equal(t, rpc.STATUS_FAILED, response.Status)
	assert.Equal(t, ERROR_NO_SNAPSHOT.Error(), response.Error)
}

func TestImportReplacesComponentSet(t *testing.T) {
	agent := newAgent()

	require.True(t, importSnapshot(t, agent, mock.TwoNode()).Succeeded())
	assert.True(t, agent.Apply(context.Background(), []string{static.COMPONENT_WATCHDOG, static.ROLE_SLAVE}).Succeeded())

	reduced := mock.TwoNode()
	reduced.Components = reduced.Components[:1]

	require.True(t, importSnapshot(t, agent, reduced).Succeeded())

	response := agent.Apply(context.Background(), []string{static.COMPONENT_WATCHDOG, static.ROLE_SLAVE})
	assert.Equal(t, rpc.STATUS_FAILED, response.Status)
	assert.Contains(t, response.Error, ERROR_NOT_IMPORTED.Error())

	assert.True(t, agent.Apply(context.Background(), []string{static.COMPONENT_NTP, static.ROLE_SLAVE}).Succeeded())
}

func TestImportRejectsInvalid(t *testing.T) {
	agent := newAgent()

	testCases := []struct {
		name   string
		params []string
	}{
		{"No parameters", nil},
		{"Garbage", []string{"::not yaml::"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, rpc.STATUS_FAILED, agent.ImportConfig(context.Background(), tc.params).Status)
		})
	}

	invalid := mock.TwoNode()
	delete(invalid.Components[4].Params, "sid")

	response := importSnapshot(t, agent, invalid)
	assert.Equal(t, rpc.STATUS_FAILED, response.Status)
	assert.Contains(t, response.Error, "sid")
}

func TestSynchronousApply(t *testing.T) {
	failing := &fakeApplier{id: static.COMPONENT_FENCING, err: errors.New("sbd device missing")}
	ntp := &fakeApplier{id: static.COMPONENT_NTP}

	agent := newAgent(ntp, failing, &fakeApplier{id: static.COMPONENT_WATCHDOG}, &fakeApplier{id: static.COMPONENT_CLUSTER}, &fakeApplier{id: static.COMPONENT_HANA})
	require.True(t, importSnapshot(t, agent, mock.TwoNode()).Succeeded())

	response := agent.Apply(context.Background(), []string{static.COMPONENT_NTP, static.ROLE_SLAVE})
	assert.True(t, response.Succeeded())
	assert.Equal(t, []string{static.ROLE_SLAVE}, ntp.roles)

	response = agent.Apply(context.Background(), []string{static.COMPONENT_FENCING, static.ROLE_SLAVE})
	assert.Equal(t, rpc.STATUS_FAILED, response.Status)
	assert.Equal(t, "sbd device missing", response.Error)

	assert.False(t, agent.Busy(context.Background(), nil).Bool())
	assert.Equal(t, response, agent.LastResult(context.Background(), nil))
}

func TestAsynchronousApplyIsExclusive(t *testing.T) {
	hana := &fakeApplier{id: static.COMPONENT_HANA, async: true, release: make(chan struct{})}
	appliers := []components.Applier{hana}
	for _, id := range static.COMPONENT_ORDER[:4] {
		appliers = append(appliers, &fakeApplier{id: id})
	}

	agent := newAgent(appliers...)
	require.True(t, importSnapshot(t, agent, mock.TwoNode()).Succeeded())

	response := agent.Apply(context.Background(), []string{static.COMPONENT_HANA, static.ROLE_SLAVE})
	assert.True(t, response.IsPending())
	assert.True(t, agent.Busy(context.Background(), nil).Bool())
	assert.True(t, agent.LastResult(context.Background(), nil).IsPending())

	second := agent.Apply(context.Background(), []string{static.COMPONENT_NTP, static.ROLE_SLAVE})
	assert.Equal(t, rpc.STATUS_FAILED, second.Status)
	assert.Equal(t, ERROR_BUSY.Error(), second.Error)

	assert.Equal(t, rpc.STATUS_FAILED, importSnapshot(t, agent, mock.TwoNode()).Status)

	close(hana.release)

	assert.Eventually(t, func() bool {
		return !agent.Busy(context.Background(), nil).Bool()
	}, 2*time.Second, 10*time.Millisecond)

	assert.True(t, agent.LastResult(context.Background(), nil).Succeeded())
}

func TestServeUntilShutdown(t *testing.T) {
	agent := newAgent()
	gate := agent.Gate.(*fakeGate)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	port := ln.Addr().(*net.TCPAddr).Port
	errs := make(chan error, 1)

	go func() {
		errs <- agent.Serve(context.Background(), ln)
	}()

	client := rpc.NewClient("127.0.0.1", port, 2*time.Second)

	response, err := client.Call(context.Background(), static.METHOD_PING)
	require.NoError(t, err)
	assert.True(t, response.Bool())

	response, err = client.Call(context.Background(), static.METHOD_SHUTDOWN)
	require.NoError(t, err)
	assert.True(t, response.Bool())

	select {
	case err = <-errs:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("agent did not stop after shutdown")
	}

	assert.True(t, gate.opened)
	assert.True(t, gate.closed)

	_, err = client.Call(context.Background(), static.METHOD_PING)
	assert.ErrorIs(t, err, rpc.ERROR_TRANSIENT)
}

func TestServeWithoutFirewall(t *testing.T) {
	agent := newAgent()
	gate := agent.Gate.(*fakeGate)
	gate.openErr = errors.New("no firewall backend available: iptables not found")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	port := ln.Addr().(*net.TCPAddr).Port
	errs := make(chan error, 1)

	go func() {
		errs <- agent.Serve(context.Background(), ln)
	}()

	client := rpc.NewClient("127.0.0.1", port, 2*time.Second)

	response, err := client.Call(context.Background(), static.METHOD_PING)
	require.NoError(t, err)
	assert.True(t, response.Bool())

	_, err = client.Call(context.Background(), static.METHOD_SHUTDOWN)
	require.NoError(t, err)

	select {
	case err = <-errs:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("agent did not stop after shutdown")
	}

	assert.False(t, gate.opened)
	assert.False(t, gate.closed)
}

func TestApplyRejectedAfterShutdown(t *testing.T) {
	ntp := &fakeApplier{id: static.COMPONENT_NTP}
	agent := newAgent(ntp, &fakeApplier{id: static.COMPONENT_WATCHDOG}, &fakeApplier{id: static.COMPONENT_FENCING}, &fakeApplier{id: static.COMPONENT_CLUSTER}, &fakeApplier{id: static.COMPONENT_HANA})
	require.True(t, importSnapshot(t, agent, mock.TwoNode()).Succeeded())

	require.True(t, agent.Shutdown(context.Background(), nil).Bool())

	response := agent.Apply(context.Background(), []string{static.COMPONENT_NTP, static.ROLE_SLAVE})

	assert.Equal(t, rpc.STATUS_FAILED, response.Status)
	assert.Equal(t, ERROR_STOPPING.Error(), response.Error)
	assert.Empty(t, ntp.roles)

	select {
	case <-agent.Done():
	default:
		t.Fatal("shutdown did not signal done")
	}
}
