package nodelog

import (
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Severity string

const (
	SEVERITY_INFO    Severity = "info"
	SEVERITY_WARNING Severity = "warning"
	SEVERITY_ERROR   Severity = "error"
	SEVERITY_FATAL   Severity = "fatal"
)

type Entry struct {
	Time     time.Time
	Severity Severity
	Node     string
	Message  string
}

// Logger collects per node entries for the end of run report.
type Logger struct {
	Zap     *zap.Logger
	entries []Entry
	now     func() time.Time
	lock    sync.Mutex
}

// Progress receives coarse progress while the orchestrator runs.
type Progress interface {
	OnNodeStart(node string, index int, total int)
	OnTaskStart(node string, task string)
	OnTaskDone(node string, task string, outcome string)
}

type ConsoleProgress struct {
	Writer io.Writer
	lock   sync.Mutex
}

type NopProgress struct{}

type Task struct {
	Node      string
	Component string
	Outcome   string
	Message   string
}

type Report struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Tasks    []Task
	Entries  []Entry
}
