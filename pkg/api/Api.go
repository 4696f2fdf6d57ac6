package api

import (
	"io"

	"github.com/simplecontainer/sapha/pkg/agent"
	"github.com/simplecontainer/sapha/pkg/components"
	"github.com/simplecontainer/sapha/pkg/configuration"
	"github.com/simplecontainer/sapha/pkg/connectivity"
	"github.com/simplecontainer/sapha/pkg/firewall"
	"github.com/simplecontainer/sapha/pkg/nodelog"
	"github.com/simplecontainer/sapha/pkg/orchestrator"
	"github.com/simplecontainer/sapha/pkg/rpc"
	"github.com/simplecontainer/sapha/pkg/shell"
	"github.com/simplecontainer/sapha/pkg/ssh"
	"github.com/simplecontainer/sapha/pkg/version"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func NewApi(v *version.Version, logger *zap.Logger) *Api {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Api{
		Settings: configuration.NewSettings(),
		Version:  v,
		Logger:   logger,
		Viper:    viper.New(),
	}
}

func (api *Api) Registry(runner shell.Runner) *components.Registry {
	return components.NewRegistry(components.NewHost(runner, api.Settings.Root, api.Logger))
}

// Orchestrator wires the installation of the loaded snapshot from this node.
func (api *Api) Orchestrator(progress io.Writer) (*orchestrator.Orchestrator, *nodelog.Logger) {
	settings := api.Settings

	manager := connectivity.New(
		ssh.New(settings.SshConfig(), api.Logger),
		connectivity.HttpDialer(settings.Port, settings.RpcTimeout()),
		settings.Policy(),
		api.Logger,
	)

	log := nodelog.New(api.Logger)

	var sink nodelog.Progress = nodelog.NopProgress{}

	if progress != nil {
		sink = nodelog.NewConsoleProgress(progress)
	}

	o := orchestrator.New(api.Snapshot, api.Registry(shell.New(api.Logger)), manager, log, sink, orchestrator.Options{
		Local: settings.Local,
	})

	return o, log
}

// Agent wires the RPC listener run on every other node.
func (api *Api) Agent() *agent.Agent {
	runner := shell.New(api.Logger)

	return agent.New(
		api.Registry(runner),
		rpc.NewServer(api.Logger),
		firewall.New(runner, api.Settings.Port, api.Logger),
		api.Logger,
	)
}
