package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/simplecontainer/sapha/internal/helpers"
	"github.com/simplecontainer/sapha/pkg/api"
	"github.com/simplecontainer/sapha/pkg/command"
	"github.com/simplecontainer/sapha/pkg/nodelog"
	"github.com/simplecontainer/sapha/pkg/orchestrator"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/static"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ERROR_ABORTED = errors.New("installation aborted")

func Install() {
	Commands = append(Commands,
		command.Engine{
			Parent:    "sapha",
			Name:      "install",
			Short:     "Configure the cluster on this node and every other member",
			Condition: EmptyCondition,
			Args:      cobra.NoArgs,
			Functions: []func(*api.Api, []string){
				func(a *api.Api, args []string) {
					if err := a.Snapshot.Check(); err != nil {
						helpers.PrintAndExit(err, 1)
					}

					announce(a)

					if !a.Settings.Yes && !helpers.Confirm(fmt.Sprintf("Install %s %s from %s", a.Snapshot.Product, a.Snapshot.Scenario, a.Settings.Local)) {
						helpers.PrintAndExit(ERROR_ABORTED, 1)
					}

					if a.Settings.Ssh.Password == "" {
						password, err := helpers.ReadPassword("SSH password for the other nodes (empty for key only): ")

						if err == nil {
							a.Settings.Ssh.Password = password
						}
					}

					ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
					defer stop()

					o, log := a.Orchestrator(os.Stdout)
					finish(a, o.Run(ctx), log)
				},
			},
			DependsOn: []func(*api.Api, []string){LoadSettings, LoadSnapshot, LockRun},
			Flags:     installFlags,
		},
	)
}

func installFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Cluster configuration file")
	cmd.Flags().String("report", "", "Write the run report to this path, html or text by extension")
	cmd.Flags().Bool("yes", false, "Do not ask for confirmation")
}

// announce prints what changed since the configuration last installed from this node.
func announce(a *api.Api) {
	previous, err := snapshot.Load(previousPath())

	if err != nil {
		return
	}

	changes, err := snapshot.Diff(previous, a.Snapshot)

	if err != nil || len(changes) == 0 {
		return
	}

	color.New(color.FgYellow).Println("Changes since the previous installation:")
	fmt.Println("  " + strings.Join(changes, "\n  "))
}

func previousPath() string {
	return filepath.Join(static.SAPHA_HOME, static.ROOTDIR, static.CONFIGDIR, "previous.yaml")
}

func finish(a *api.Api, summary orchestrator.Summary, log *nodelog.Logger) {
	report := summary.Report(log)

	if err := report.WriteText(os.Stdout); err != nil {
		a.Logger.Warn("failed to print report", zap.Error(err))
	}

	if a.Settings.Report != "" {
		if err := report.WriteFile(a.Settings.Report); err != nil {
			a.Logger.Warn("failed to write report", zap.String("path", a.Settings.Report), zap.Error(err))
		} else {
			fmt.Printf("Report written to %s\n", a.Settings.Report)
		}
	}

	path := previousPath()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err == nil {
		if err = a.Snapshot.Save(path); err != nil {
			a.Logger.Warn("failed to save configuration", zap.Error(err))
		}
	}

	if failures := summary.Failures(); len(failures) > 0 {
		helpers.PrintAndExit(fmt.Errorf("%d of %d tasks did not succeed", len(failures), len(summary.Results)), 1)
	}
}
