package api

import (
	"github.com/simplecontainer/sapha/pkg/configuration"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/version"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Api carries what every command needs once flags are parsed.
type Api struct {
	Settings *configuration.Settings
	Snapshot *snapshot.Snapshot
	Version  *version.Version
	Logger   *zap.Logger
	Viper    *viper.Viper
	Flags    *pflag.FlagSet
}
