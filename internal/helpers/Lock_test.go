package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "sapha.lock")

	first := NewLock(path)
	second := NewLock(path)

	require.NoError(t, first.Acquire())
	require.NoError(t, first.Acquire())

	err := second.Acquire()
	assert.ErrorIs(t, err, ERROR_LOCKED)
	assert.Contains(t, err.Error(), fmt.Sprint(os.Getpid()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(os.Getpid()), strings.TrimSpace(string(data)))

	require.NoError(t, first.Release())
	require.NoError(t, second.Acquire())
	require.NoError(t, second.Release())
	assert.NoError(t, second.Release())
}
