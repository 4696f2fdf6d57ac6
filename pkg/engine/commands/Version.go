package commands

import (
	"fmt"

	"github.com/simplecontainer/sapha/pkg/api"
	"github.com/simplecontainer/sapha/pkg/command"
	"github.com/spf13/cobra"
)

func Version() {
	Commands = append(Commands,
		command.Engine{
			Parent:    "sapha",
			Name:      "version",
			Short:     "Print the version",
			Condition: EmptyCondition,
			Args:      cobra.NoArgs,
			Functions: []func(*api.Api, []string){
				func(a *api.Api, args []string) {
					fmt.Println(a.Version.String())
				},
			},
			DependsOn: EmptyDepend,
			Flags:     EmptyFlag,
		},
	)
}
