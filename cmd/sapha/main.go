package main

import (
	"github.com/simplecontainer/sapha/pkg/api"
	"github.com/simplecontainer/sapha/pkg/command"
	"github.com/simplecontainer/sapha/pkg/engine/commands"
	"github.com/simplecontainer/sapha/pkg/logger"
	"github.com/simplecontainer/sapha/pkg/static"
	"github.com/simplecontainer/sapha/pkg/version"
)

// SAPHA_VERSION is replaced at build time with -ldflags "-X main.SAPHA_VERSION=...".
var SAPHA_VERSION = "0.0.0-dev"

func main() {
	logger.Log = logger.NewLogger(static.DEFAULT_LOG_LEVEL, []string{"stderr"}, []string{"stderr"})

	a := api.NewApi(version.New(SAPHA_VERSION), logger.Log)

	cmd := command.New()
	commands.PreloadCommands()
	commands.Run(a, cmd)
}
