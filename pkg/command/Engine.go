package command

import (
	"github.com/simplecontainer/sapha/pkg/api"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "sapha",
		Short: "SAP HANA high availability cluster installer",
	}
}

func (command Engine) GetCondition(api *api.Api) bool {
	return command.Condition(api)
}

func (command Engine) GetFunctions() []func(*api.Api, []string) {
	return command.Functions
}

func (command Engine) GetDependsOn() []func(*api.Api, []string) {
	return command.DependsOn
}

func (command Engine) SetFlags(cmd *cobra.Command) {
	command.Flags(cmd)
}
