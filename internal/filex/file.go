// Package filex contains filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDirName is the directory created under the user config dir for client data.
const AppDirName = "surlink"

// EnsureSubdDir creates dirName under the current working directory if needed
// and returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	return EnsureDir(filepath.Join(cwd, dirName))
}

// EnsureDataDir returns dir, creating it if necessary. An empty dir resolves
// to <user config dir>/surlink, or ./.surlink when the host has no config dir.
func EnsureDataDir(dir string) (string, error) {
	if dir != "" {
		return EnsureDir(dir)
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return EnsureSubdDir("." + AppDirName)
	}
	return EnsureDir(filepath.Join(base, AppDirName))
}

// EnsureDir creates dir with all parents and returns it.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}
