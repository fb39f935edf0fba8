package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/project-install/internal/messages"
)

// AppDirName is the directory name used under the user config and cache dirs.
const AppDirName = "project-install"

// userConfigDir is a seam for tests.
var userConfigDir = os.UserConfigDir

// DefaultConfigPath returns <user config dir>/project-install/config.toml.
func DefaultConfigPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveUserConfigDirFmt, err)
	}
	return filepath.Join(dir, AppDirName, "config.toml"), nil
}

// ExpandPath expands a leading ~ and returns an absolute, clean path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf(messages.ConfigPathRequired)
	}
	expanded, err := homedir.Expand(trimmed)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFmt, trimmed, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFmt, trimmed, err)
	}
	return abs, nil
}
