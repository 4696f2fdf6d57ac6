package configuration

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/simplecontainer/sapha/pkg/node"
	"github.com/simplecontainer/sapha/pkg/ssh"
	"github.com/simplecontainer/sapha/pkg/static"
)

func NewSettings() *Settings {
	defaults := ssh.DefaultConfig()

	return &Settings{
		Local:       LocalHost(),
		Report:      filepath.Join(static.SAPHA_HOME, static.ROOTDIR, static.REPORTDIR, "report.html"),
		LogLevel:    static.DEFAULT_LOG_LEVEL,
		Root:        "/",
		Port:        static.RPC_PORT,
		Unit:        static.DEFAULT_TIME_UNIT,
		Retries:     static.DEFAULT_CALL_RETRIES,
		Ceiling:     static.DEFAULT_POLL_CEILING,
		CallTimeout: static.DEFAULT_CALL_TIMEOUT,
		Ssh: Ssh{
			User:        defaults.User,
			Key:         defaults.KeyPath,
			KnownHosts:  defaults.KnownHosts,
			Port:        defaults.Port,
			Timeout:     defaults.Timeout,
			AgentBinary: defaults.AgentBinary,
		},
	}
}

// LocalHost is the short host name, which is how members are named.
func LocalHost() string {
	host, err := os.Hostname()

	if err != nil {
		return ""
	}

	return strings.SplitN(host, ".", 2)[0]
}

func (settings *Settings) Policy() node.Policy {
	return node.Policy{
		Unit:    settings.Unit,
		Retries: settings.Retries,
		Ceiling: settings.Ceiling,
	}
}

// RpcTimeout never drops below the command timeout, otherwise a slow apply is
// cut off and retried while the agent still runs it.
func (settings *Settings) RpcTimeout() time.Duration {
	return max(settings.CallTimeout, static.DEFAULT_COMMAND_TIMEOUT)
}

func (settings *Settings) SshConfig() ssh.Config {
	return ssh.Config{
		User:        settings.Ssh.User,
		Password:    settings.Ssh.Password,
		KeyPath:     settings.Ssh.Key,
		KnownHosts:  settings.Ssh.KnownHosts,
		Port:        settings.Ssh.Port,
		Timeout:     settings.Ssh.Timeout,
		AgentBinary: settings.Ssh.AgentBinary,
		AgentPort:   settings.Port,
		LogLevel:    settings.LogLevel,
		AgentLog:    ssh.DefaultConfig().AgentLog,
	}
}
