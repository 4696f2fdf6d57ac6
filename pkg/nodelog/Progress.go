package nodelog

import (
	"io"
	"os"

	"github.com/fatih/color"
)

func NewConsoleProgress(w io.Writer) *ConsoleProgress {
	if w == nil {
		w = os.Stdout
	}

	return &ConsoleProgress{Writer: w}
}

func (progress *ConsoleProgress) OnNodeStart(node string, index int, total int) {
	progress.lock.Lock()
	defer progress.lock.Unlock()

	color.New(color.FgCyan, color.Bold).Fprintf(progress.Writer, "==> %s (%d/%d)\n", node, index, total)
}

func (progress *ConsoleProgress) OnTaskStart(node string, task string) {
	progress.lock.Lock()
	defer progress.lock.Unlock()

	color.New(color.FgWhite).Fprintf(progress.Writer, "    %s: %s ...\n", node, task)
}

func (progress *ConsoleProgress) OnTaskDone(node string, task string, outcome string) {
	progress.lock.Lock()
	defer progress.lock.Unlock()

	outcomeColor(outcome).Fprintf(progress.Writer, "    %s: %s %s\n", node, task, outcome)
}

func outcomeColor(outcome string) *color.Color {
	switch outcome {
	case "succeeded":
		return color.New(color.FgGreen)
	case "failed":
		return color.New(color.FgYellow)
	}

	return color.New(color.FgRed, color.Bold)
}

func (NopProgress) OnNodeStart(node string, index int, total int)       {}
func (NopProgress) OnTaskStart(node string, task string)                {}
func (NopProgress) OnTaskDone(node string, task string, outcome string) {}
