package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// envSearchPaths are tried in order when no explicit env file is given.
var envSearchPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads variables from a .env file into the process environment.
// An explicit path must exist; otherwise the first file found in envSearchPaths
// is used. Variables already set in the environment are never overwritten.
// Returns the path that was loaded, or "" if none was found.
func LoadEnv(explicit string) (string, error) {
	if explicit != "" {
		if err := godotenv.Load(explicit); err != nil {
			return "", fmt.Errorf("error loading %s file: %w", explicit, err)
		}
		return explicit, nil
	}

	for _, envPath := range envSearchPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}
