package startup

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/simplecontainer/sapha/pkg/configuration"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "SAPHA"

// SetFlags registers every setting as a persistent flag with its default.
func SetFlags(flags *pflag.FlagSet) {
	defaults := configuration.NewSettings()

	flags.String("settings", "", "Optional YAML file with settings")
	flags.String("local", defaults.Local, "Host name of this node as listed in the cluster configuration")
	flags.String("log", defaults.LogLevel, "Log level: debug, info, warn, error")
	flags.String("log-file", defaults.LogFile, "Also write logs to this file, rotated by size")
	flags.String("root", defaults.Root, "Root directory configuration files are written under")
	flags.Int("port", defaults.Port, "RPC port of the remote agent")
	flags.Duration("unit", defaults.Unit, "Time unit retry and poll delays are expressed in")
	flags.Int("retries", defaults.Retries, "Retries of an RPC call after a transport fault")
	flags.Int("ceiling", defaults.Ceiling, "Cumulative busy poll delay in time units before giving up")
	flags.Duration("call-timeout", defaults.CallTimeout, "Timeout of a single RPC call")

	flags.String("ssh-user", defaults.Ssh.User, "SSH user on the other nodes")
	flags.String("ssh-password", "", "SSH password used once to install the public key")
	flags.String("ssh-key", defaults.Ssh.Key, "Private key used for SSH, created when missing")
	flags.String("known-hosts", defaults.Ssh.KnownHosts, "known_hosts file")
	flags.Int("ssh-port", defaults.Ssh.Port, "SSH port on the other nodes")
	flags.Duration("ssh-timeout", defaults.Ssh.Timeout, "SSH dial timeout")
	flags.String("agent-binary", defaults.Ssh.AgentBinary, "Path of the sapha binary on the other nodes")
}

// Load merges defaults, the settings file, SAPHA_* environment and flags, in
// increasing precedence.
func Load(v *viper.Viper, flags *pflag.FlagSet) (*configuration.Settings, error) {
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	if path := v.GetString("settings"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading settings %s", path)
		}
	}

	settings := configuration.NewSettings()

	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.Wrap(err, "decoding settings")
	}

	return settings, nil
}
