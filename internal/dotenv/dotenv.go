// Package dotenv loads .env files into the process environment.
package dotenv

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Load reads a .env file and loads the key-value pairs into the environment.
// Variables already set in the environment are left alone.
func Load(filename string) error {
	return godotenv.Load(filename)
}

// Find returns the path of the nearest .env file, starting in dir and
// walking up to the filesystem root.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, ".env")
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fs.ErrNotExist
		}
		dir = parent
	}
}

// LoadDefault loads the nearest .env file above the current directory
func LoadDefault() error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	path, err := Find(wd)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.New(".env file not found")
		}
		return err
	}
	return Load(path)
}
