package startup

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// LoadEnvFile exports the variables of a dotenv file without overriding ones
// already set in the process environment.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "env file %s", path)
	}

	return errors.Wrapf(godotenv.Load(path), "loading env file %s", path)
}
