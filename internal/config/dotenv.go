package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from the given files, or .env when
// none are named. Missing files are skipped and variables already set in the
// process environment are not overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			continue
		}
		return fmt.Errorf("load %s: %w", f, err)
	}

	return nil
}
