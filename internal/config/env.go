package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envFiles are read from the configuration directory, first one wins per key.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the env files that exist in dir. Variables already set in
// the process environment are not overridden.
func loadEnvFiles(dir string) error {
	var found []string
	for _, name := range envFiles {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return nil
	}
	return godotenv.Load(found...)
}
