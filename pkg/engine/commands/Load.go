package commands

import (
	"errors"
	"path/filepath"

	"github.com/simplecontainer/sapha/internal/helpers"
	"github.com/simplecontainer/sapha/pkg/api"
	"github.com/simplecontainer/sapha/pkg/logger"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/startup"
	"github.com/simplecontainer/sapha/pkg/static"
)

var ERROR_NO_CONFIG = errors.New("--config is required")

// runLock lives for the whole process; the flock goes away with it.
var runLock = helpers.NewLock(filepath.Join(static.SAPHA_HOME, static.ROOTDIR, "sapha.lock"))

// LoadSettings exports the env file, merges all settings sources and rebuilds
// the logger at the requested level.
func LoadSettings(a *api.Api, args []string) {
	if flag := a.Flags.Lookup("env-file"); flag != nil {
		if err := startup.LoadEnvFile(flag.Value.String()); err != nil {
			helpers.PrintAndExit(err, 1)
		}
	}

	settings, err := startup.Load(a.Viper, a.Flags)

	if err != nil {
		helpers.PrintAndExit(err, 1)
	}

	a.Settings = settings

	logger.Log, err = logger.Build(settings.LogLevel, []string{"stderr"}, []string{"stderr"})

	if err != nil {
		helpers.PrintAndExit(err, 1)
	}

	if settings.LogFile != "" {
		logger.Log = logger.Tee(logger.Log, settings.LogLevel, logger.Rotating(settings.LogFile))
	}

	a.Logger = logger.Log
}

func LoadSnapshot(a *api.Api, args []string) {
	if a.Settings.Config == "" {
		helpers.PrintAndExit(ERROR_NO_CONFIG, 1)
	}

	s, err := snapshot.Load(a.Settings.Config)

	if err != nil {
		helpers.PrintAndExit(err, 1)
	}

	a.Snapshot = s
}

func LockRun(a *api.Api, args []string) {
	if err := runLock.Acquire(); err != nil {
		helpers.PrintAndExit(err, 1)
	}
}
