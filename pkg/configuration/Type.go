package configuration

import "time"

// Settings are the runtime knobs of one sapha invocation. Keys match flag names.
type Settings struct {
	Local       string        `mapstructure:"local" yaml:"local"`
	Config      string        `mapstructure:"config" yaml:"config"`
	Report      string        `mapstructure:"report" yaml:"report"`
	LogLevel    string        `mapstructure:"log" yaml:"log"`
	LogFile     string        `mapstructure:"log-file" yaml:"log-file"`
	EnvFile     string        `mapstructure:"env-file" yaml:"env-file"`
	Root        string        `mapstructure:"root" yaml:"root"`
	Port        int           `mapstructure:"port" yaml:"port"`
	Unit        time.Duration `mapstructure:"unit" yaml:"unit"`
	Retries     int           `mapstructure:"retries" yaml:"retries"`
	Ceiling     int           `mapstructure:"ceiling" yaml:"ceiling"`
	CallTimeout time.Duration `mapstructure:"call-timeout" yaml:"call-timeout"`
	Yes         bool          `mapstructure:"yes" yaml:"-"`
	Ssh         Ssh           `mapstructure:",squash" yaml:"ssh"`
}

type Ssh struct {
	User        string        `mapstructure:"ssh-user" yaml:"user"`
	Password    string        `mapstructure:"ssh-password" yaml:"-"`
	Key         string        `mapstructure:"ssh-key" yaml:"key"`
	KnownHosts  string        `mapstructure:"known-hosts" yaml:"known-hosts"`
	Port        int           `mapstructure:"ssh-port" yaml:"port"`
	Timeout     time.Duration `mapstructure:"ssh-timeout" yaml:"timeout"`
	AgentBinary string        `mapstructure:"agent-binary" yaml:"agent-binary"`
}
