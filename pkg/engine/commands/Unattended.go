package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/simplecontainer/sapha/internal/helpers"
	"github.com/simplecontainer/sapha/pkg/api"
	"github.com/simplecontainer/sapha/pkg/command"
	"github.com/simplecontainer/sapha/pkg/orchestrator"
	"github.com/simplecontainer/sapha/pkg/startup"
	"github.com/spf13/cobra"
)

func Unattended() {
	Commands = append(Commands,
		command.Engine{
			Parent:    "sapha",
			Name:      "unattended",
			Short:     "Install without prompts, refusing to start on any invalid or unreachable node",
			Condition: EmptyCondition,
			Args:      cobra.NoArgs,
			Functions: []func(*api.Api, []string){
				func(a *api.Api, args []string) {
					ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
					defer stop()

					o, log := a.Orchestrator(nil)
					summary, err := o.Unattended(ctx)

					var preflight *orchestrator.PreflightError

					if errors.As(err, &preflight) {
						for _, message := range preflight.Messages {
							color.New(color.FgRed).Println(message)
						}

						helpers.PrintAndExit(orchestrator.ERROR_PREFLIGHT, 1)
					}

					finish(a, summary, log)
				},
			},
			DependsOn: []func(*api.Api, []string){LoadSettings, LoadSnapshot, LockRun},
			Flags: func(cmd *cobra.Command) {
				cmd.Flags().String("config", "", "Cluster configuration file")
				cmd.Flags().String("report", "", "Write the run report to this path, html or text by extension")
				cmd.Flags().String("env-file", "", "Dotenv file exporting "+startup.ENV_PREFIX+"_* settings such as the SSH password")
			},
		},
	)
}
