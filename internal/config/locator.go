package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	// DefaultFileName is the conventional name of the live configuration file
	DefaultFileName = "config.toml"

	// EnvConfigFile names the configuration file explicitly
	EnvConfigFile = "TUNEBOT_CONFIG_FILE"

	// EnvConfig names the configuration file when EnvConfigFile is unset
	EnvConfig = "TUNEBOT_CONFIG"
)

// Source is the resolved location of the live configuration file
type Source struct {
	// Path is the absolute path of the file
	Path string

	// Override is the value that selected Path, empty when the
	// conventional name was used
	Override string

	// Exists reports whether the file was present when located. The user
	// layer is only read from an existing file.
	Exists bool
}

// Locate resolves the live configuration file. flagPath wins over the
// environment, which wins over DefaultFileName. A missing file is not an
// error; defaults are used and the file is created on repair.
func Locate(fs afero.Fs, flagPath string, getenv func(string) string) Source {
	var src Source
	for _, candidate := range []string{flagPath, getenv(EnvConfigFile), getenv(EnvConfig)} {
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			src.Override = candidate
			break
		}
	}

	name := src.Override
	if name == "" {
		name = DefaultFileName
	}
	src.Path = absPath(name)

	if exists, err := afero.Exists(fs, src.Path); err == nil && exists {
		if isDir, _ := afero.IsDir(fs, src.Path); !isDir {
			src.Exists = true
		}
	}
	return src
}

// userHomeDir resolves "~/" prefixes; empty when the home is unknown
var userHomeDir = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func absPath(name string) string {
	if strings.HasPrefix(name, "~/") {
		if home := userHomeDir(); home != "" {
			name = filepath.Join(home, name[2:])
		}
	}
	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}
	return filepath.Clean(name)
}
