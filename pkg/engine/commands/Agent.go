package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/simplecontainer/sapha/internal/helpers"
	"github.com/simplecontainer/sapha/pkg/api"
	"github.com/simplecontainer/sapha/pkg/command"
	"github.com/spf13/cobra"
)

func Agent() {
	Commands = append(Commands,
		command.Engine{
			Parent:    "sapha",
			Name:      "agent",
			Short:     "Serve the installation RPC endpoint until told to shut down",
			Condition: EmptyCondition,
			Args:      cobra.NoArgs,
			Functions: []func(*api.Api, []string){
				func(a *api.Api, args []string) {
					ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
					defer stop()

					if err := a.Agent().ListenAndServe(ctx, a.Settings.Port); err != nil {
						helpers.PrintAndExit(err, 1)
					}
				},
			},
			DependsOn: []func(*api.Api, []string){LoadSettings},
			Flags:     EmptyFlag,
		},
	)
}
