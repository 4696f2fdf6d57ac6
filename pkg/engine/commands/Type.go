package commands

import (
	"github.com/simplecontainer/sapha/pkg/api"
	"github.com/spf13/cobra"
)

var (
	EmptyCondition = func(*api.Api) bool { return true }
	EmptyFunction  = func(a *api.Api, args []string) {}
	EmptyDepend    = []func(*api.Api, []string){EmptyFunction}
	EmptyFlag      = func(cmd *cobra.Command) {}
)
