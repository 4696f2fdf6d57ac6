package orchestrator

import (
	"github.com/simplecontainer/sapha/pkg/node"
	"github.com/simplecontainer/sapha/pkg/nodelog"
)

func (summary Summary) Failures() []TaskResult {
	var failures []TaskResult

	for _, result := range summary.Results {
		if result.Outcome != node.OUTCOME_SUCCEEDED {
			failures = append(failures, result)
		}
	}

	return failures
}

func (summary Summary) Succeeded() bool {
	return len(summary.Failures()) == 0
}

func (summary Summary) ForNode(host string) []TaskResult {
	var results []TaskResult

	for _, result := range summary.Results {
		if result.Node == host {
			results = append(results, result)
		}
	}

	return results
}

func (summary Summary) Report(log *nodelog.Logger) nodelog.Report {
	report := nodelog.Report{
		RunID:    summary.RunID,
		Started:  summary.Started,
		Finished: summary.Finished,
		Entries:  log.Entries(),
	}

	for _, result := range summary.Results {
		report.Tasks = append(report.Tasks, nodelog.Task{
			Node:      result.Node,
			Component: result.Component,
			Outcome:   string(result.Outcome),
			Message:   result.Message,
		})
	}

	return report
}
