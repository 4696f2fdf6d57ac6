package startup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/simplecontainer/sapha/pkg/static"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flagSet(t *testing.T, args ...string) *pflag.FlagSet {
	flags := pflag.NewFlagSet("sapha", pflag.ContinueOnError)
	SetFlags(flags)

	require.NoError(t, flags.Parse(args))

	return flags
}

func TestLoad(t *testing.T) {
	settingsFile := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settingsFile, []byte("retries: 7\nssh-user: hanaadm\n"), 0600))

	testCases := []struct {
		name     string
		args     []string
		env      map[string]string
		validate func(t *testing.T, retries int, user string, password string, unit time.Duration)
	}{
		{
			"Defaults",
			nil,
			nil,
			func(t *testing.T, retries int, user string, password string, unit time.Duration) {
				assert.Equal(t, static.DEFAULT_CALL_RETRIES, retries)
				assert.Equal(t, static.DEFAULT_SSH_USER, user)
				assert.Equal(t, "", password)
				assert.Equal(t, time.Second, unit)
			},
		},
		{
			"Settings file",
			[]string{"--settings", settingsFile},
			nil,
			func(t *testing.T, retries int, user string, password string, unit time.Duration) {
				assert.Equal(t, 7, retries)
				assert.Equal(t, "hanaadm", user)
			},
		},
		{
			"Environment overrides file",
			[]string{"--settings", settingsFile},
			map[string]string{"SAPHA_RETRIES": "3", "SAPHA_SSH_PASSWORD": "secret"},
			func(t *testing.T, retries int, user string, password string, unit time.Duration) {
				assert.Equal(t, 3, retries)
				assert.Equal(t, "secret", password)
			},
		},
		{
			"Flag overrides environment",
			[]string{"--retries", "2", "--unit", "10ms"},
			map[string]string{"SAPHA_RETRIES": "3"},
			func(t *testing.T, retries int, user string, password string, unit time.Duration) {
				assert.Equal(t, 2, retries)
				assert.Equal(t, 10*time.Millisecond, unit)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			settings, err := Load(viper.New(), flagSet(t, tc.args...))
			require.NoError(t, err)

			tc.validate(t, settings.Retries, settings.Ssh.User, settings.Ssh.Password, settings.Unit)
		})
	}
}

func TestLoadMissingSettingsFile(t *testing.T) {
	_, err := Load(viper.New(), flagSet(t, "--settings", filepath.Join(t.TempDir(), "missing.yaml")))

	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sapha.env")
	require.NoError(t, os.WriteFile(path, []byte("SAPHA_SSH_PASSWORD=fromfile\nSAPHA_CEILING=60\n"), 0600))

	t.Setenv("SAPHA_CEILING", "120")
	t.Setenv("SAPHA_SSH_PASSWORD", "")
	os.Unsetenv("SAPHA_SSH_PASSWORD")

	require.NoError(t, LoadEnvFile(path))

	settings, err := Load(viper.New(), flagSet(t))
	require.NoError(t, err)

	assert.Equal(t, "fromfile", settings.Ssh.Password)
	assert.Equal(t, 120, settings.Ceiling)

	assert.NoError(t, LoadEnvFile(""))
	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
