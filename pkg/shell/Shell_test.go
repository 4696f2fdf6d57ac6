package shell

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	testCases := []struct {
		name     string
		argv     []string
		opts     Options
		exitCode int
		output   string
	}{
		{
			"Successful command",
			[]string{"sh", "-c", "echo hello"},
			Options{},
			0,
			"hello\n",
		},
		{
			"Non-zero exit is not an error",
			[]string{"sh", "-c", "echo failing >&2; exit 3"},
			Options{},
			3,
			"failing\n",
		},
		{
			"Timeout kills the child",
			[]string{"sh", "-c", "sleep 5"},
			Options{Timeout: 100 * time.Millisecond},
			EXIT_TIMEOUT,
			"",
		},
	}

	executor := New(nil)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := executor.Run(context.Background(), tc.argv, tc.opts)

			assert.Equal(t, tc.exitCode, result.ExitCode)
			assert.Equal(t, tc.output, result.Output)
		})
	}
}

func TestRunSpawnFailure(t *testing.T) {
	executor := New(nil)

	result := executor.Run(context.Background(), []string{"/nonexistent/sapha-binary"}, Options{})

	assert.Equal(t, EXIT_SPAWN_FAILED, result.ExitCode)
	assert.Contains(t, result.Output, "/nonexistent/sapha-binary")
	assert.False(t, result.Success())

	result = executor.Run(context.Background(), []string{}, Options{})
	assert.Equal(t, EXIT_SPAWN_FAILED, result.ExitCode)
}

func TestRunString(t *testing.T) {
	executor := New(nil)

	result := executor.RunString(context.Background(), `sh -c "echo 'quoted value'"`, Options{})
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "quoted value\n", result.Output)

	result = executor.RunString(context.Background(), `sh -c "unterminated`, Options{})
	assert.Equal(t, EXIT_SPAWN_FAILED, result.ExitCode)
}

func TestMasked(t *testing.T) {
	testCases := []struct {
		name    string
		argv    []string
		mask    []int
		wrapped bool
		wanted  string
	}{
		{
			"No mask",
			[]string{"hdbnsutil", "-sr_state"},
			nil,
			false,
			"hdbnsutil -sr_state",
		},
		{
			"Password argument masked",
			[]string{"hdbuserstore", "set", "KEY", "host:30015", "SYSTEM", "secret"},
			[]int{5},
			false,
			"hdbuserstore set KEY host:30015 SYSTEM ********",
		},
		{
			"Out of range index ignored",
			[]string{"true"},
			[]int{4, -1},
			false,
			"true",
		},
		{
			"Mask applies inside su wrapper",
			[]string{"su", "-", "ha1adm", "-c", Quote([]string{"hdbsql", "-p", "secret pass"})},
			[]int{2},
			true,
			"su - ha1adm -c hdbsql -p ********",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wanted, Masked(tc.argv, tc.mask, tc.wrapped))
		})
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "HDB start", Quote([]string{"HDB", "start"}))
	assert.Equal(t, `echo 'it'\''s' ''`, Quote([]string{"echo", "it's", ""}))
	assert.Equal(t, "ls '/tmp/a b'", Quote([]string{"ls", "/tmp/a b"}))
}
