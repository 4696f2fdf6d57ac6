package nodelog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecord(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := New(zap.New(core))

	clock := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	logger.now = func() time.Time { return clock }

	logger.Info("hana01", "ntp applied")
	logger.Warning("hana02", "retrying busy")
	logger.Error("hana02", "fencing failed")

	assert.False(t, logger.HasFatal())

	logger.Fatal("hana03", "connection lost")

	assert.True(t, logger.HasFatal())
	assert.Len(t, logger.Entries(), 4)
	assert.Equal(t, clock, logger.Entries()[0].Time)
	assert.Len(t, logger.ForNode("hana02"), 2)

	failures := logger.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, "fencing failed", failures[0].Message)
	assert.Equal(t, SEVERITY_FATAL, failures[1].Severity)

	assert.Equal(t, 4, logs.Len())
	assert.Equal(t, "hana03", logs.All()[3].ContextMap()["node"])
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[3].Level)
}

func report() Report {
	started := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	return Report{
		RunID:    "6f1c1a9e",
		Started:  started,
		Finished: started.Add(time.Minute),
		Tasks: []Task{
			{Node: "hana01", Component: "ntp", Outcome: "succeeded", Message: "true"},
			{Node: "hana02", Component: "hana", Outcome: "failed", Message: "<script>alert(1)</script>"},
		},
		Entries: []Entry{
			{Time: started, Severity: SEVERITY_ERROR, Node: "hana02", Message: "sr_register failed"},
		},
	}
}

func TestWriteText(t *testing.T) {
	buffer := &bytes.Buffer{}

	require.NoError(t, report().WriteText(buffer))

	output := buffer.String()
	assert.Contains(t, output, "Run 6f1c1a9e")
	assert.Contains(t, output, "hana02")
	assert.Contains(t, output, "sr_register failed")
}

func TestWriteHTMLEscapes(t *testing.T) {
	buffer := &bytes.Buffer{}

	require.NoError(t, report().WriteHTML(buffer))

	output := buffer.String()
	assert.Contains(t, output, "HA installation 6f1c1a9e")
	assert.NotContains(t, output, "<script>")
	assert.Contains(t, output, "&lt;script&gt;")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name string
		path string
		html bool
	}{
		{"Html", filepath.Join(dir, "report.html"), true},
		{"Text", filepath.Join(dir, "nested", "report.txt"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, report().WriteFile(tc.path))

			data, err := os.ReadFile(tc.path)
			require.NoError(t, err)

			assert.Equal(t, tc.html, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
		})
	}
}

func TestConsoleProgress(t *testing.T) {
	buffer := &bytes.Buffer{}
	progress := NewConsoleProgress(buffer)

	progress.OnNodeStart("hana02", 2, 2)
	progress.OnTaskStart("hana02", "fencing")
	progress.OnTaskDone("hana02", "fencing", "failed")

	output := buffer.String()
	assert.Contains(t, output, "hana02 (2/2)")
	assert.Contains(t, output, "hana02: fencing ...")
	assert.Contains(t, output, "hana02: fencing failed")
}
