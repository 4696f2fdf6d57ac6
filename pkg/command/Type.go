package command

import (
	"github.com/simplecontainer/sapha/pkg/api"
	"github.com/spf13/cobra"
)

type Engine struct {
	Parent    string
	Name      string
	Short     string
	Args      func(*cobra.Command, []string) error
	Condition func(*api.Api) bool
	Functions []func(*api.Api, []string)
	DependsOn []func(*api.Api, []string)
	Flags     func(command *cobra.Command)
}
