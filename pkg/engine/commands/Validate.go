package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/simplecontainer/sapha/internal/helpers"
	"github.com/simplecontainer/sapha/pkg/api"
	"github.com/simplecontainer/sapha/pkg/command"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/spf13/cobra"
)

func Validate() {
	Commands = append(Commands,
		command.Engine{
			Parent:    "sapha",
			Name:      "validate",
			Short:     "Check a cluster configuration without touching any node",
			Condition: EmptyCondition,
			Args:      cobra.NoArgs,
			Functions: []func(*api.Api, []string){
				func(a *api.Api, args []string) {
					messages := a.Snapshot.Validate()

					for _, message := range messages {
						color.New(color.FgRed).Println(message)
					}

					if len(messages) > 0 {
						helpers.PrintAndExit(fmt.Errorf("%w: %s: %d problems", snapshot.ERROR_INVALID, a.Settings.Config, len(messages)), 1)
					}

					color.New(color.FgGreen).Printf("%s is valid\n", a.Settings.Config)
				},
			},
			DependsOn: []func(*api.Api, []string){LoadSettings, LoadSnapshot},
			Flags: func(cmd *cobra.Command) {
				cmd.Flags().String("config", "", "Cluster configuration file")
			},
		},
		command.Engine{
			Parent:    "sapha",
			Name:      "diff",
			Short:     "Show what changed between two cluster configurations",
			Condition: EmptyCondition,
			Args:      cobra.ExactArgs(2),
			Functions: []func(*api.Api, []string){
				func(a *api.Api, args []string) {
					previous, err := snapshot.Load(args[0])

					if err != nil {
						helpers.PrintAndExit(err, 1)
					}

					current, err := snapshot.Load(args[1])

					if err != nil {
						helpers.PrintAndExit(err, 1)
					}

					changes, err := snapshot.Diff(previous, current)

					if err != nil {
						helpers.PrintAndExit(err, 1)
					}

					for _, change := range changes {
						fmt.Println(change)
					}
				},
			},
			DependsOn: []func(*api.Api, []string){LoadSettings},
			Flags:     EmptyFlag,
		},
	)
}
