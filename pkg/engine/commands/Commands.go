package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/simplecontainer/sapha/pkg/api"
	"github.com/simplecontainer/sapha/pkg/command"
	"github.com/simplecontainer/sapha/pkg/startup"
	"github.com/spf13/cobra"
)

var Commands []command.Engine

func PreloadCommands() {
	Commands = nil

	Install()    // Interactive installation from this node
	Unattended() // Fail fast installation without prompts
	Agent()      // RPC listener started on the other nodes
	Validate()   // Offline configuration checks
	Version()
}

func Run(api *api.Api, c *cobra.Command) {
	Build(api, c)
	c.SetArgs(os.Args[1:])

	_ = c.Execute()
}

// Build attaches every preloaded command to c.
func Build(api *api.Api, c *cobra.Command) {
	c.SetHelpCommand(&cobra.Command{
		Use:    "help",
		Hidden: true,
	})

	c.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Printf("error: %s\n\n", err)
		_ = c.Usage()
		return nil
	})

	c.Run = func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			fmt.Printf("unknown command: %s\n", strings.Join(args, " "))
		}
		_ = cmd.Usage()
	}

	startup.SetFlags(c.PersistentFlags())

	for _, cmd := range Commands {
		cobraCmd := &cobra.Command{
			Use:   cmd.Name,
			Short: cmd.Short,
			Args:  cmd.Args,
			PreRunE: func(c *cobra.Command, args []string) error {
				if !cmd.GetCondition(api) {
					return fmt.Errorf("condition failed for command %s", c.Use)
				}

				api.Flags = c.Flags()

				for _, dep := range cmd.GetDependsOn() {
					dep(api, args)
				}

				return nil
			},
			Run: func(c *cobra.Command, args []string) {
				for _, fn := range cmd.GetFunctions() {
					fn(api, args)
				}
			},
		}

		cmd.SetFlags(cobraCmd)

		if cmd.Parent == "sapha" || cmd.Parent == "" {
			c.AddCommand(cobraCmd)
		} else {
			parent := findCommand(c, cmd.Parent)

			if parent != nil {
				parent.AddCommand(cobraCmd)
			} else {
				fmt.Printf("warning: parent command '%s' not found for '%s'\n", cmd.Parent, cmd.Name)
			}
		}
	}
}

func findCommand(cmd *cobra.Command, name string) *cobra.Command {
	if cmd.Use == name {
		return cmd
	}
	for _, c := range cmd.Commands() {
		if result := findCommand(c, name); result != nil {
			return result
		}
	}
	return nil
}
