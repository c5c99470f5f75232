package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestLocate(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/etc/tunebot/live.toml", "token = \"x\"\n")
	if err := fs.MkdirAll("/etc/tunebot/dir.toml", 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		flag     string
		env      map[string]string
		wantPath string
		wantOver string
		exists   bool
	}{
		{
			name:     "conventional name",
			wantPath: filepath.Join(cwd, DefaultFileName),
		},
		{
			name:     "flag wins over environment",
			flag:     "/etc/tunebot/live.toml",
			env:      map[string]string{EnvConfigFile: "/other.toml", EnvConfig: "/third.toml"},
			wantPath: "/etc/tunebot/live.toml",
			wantOver: "/etc/tunebot/live.toml",
			exists:   true,
		},
		{
			name:     "explicit file env wins over name env",
			env:      map[string]string{EnvConfigFile: "/etc/tunebot/live.toml", EnvConfig: "/third.toml"},
			wantPath: "/etc/tunebot/live.toml",
			wantOver: "/etc/tunebot/live.toml",
			exists:   true,
		},
		{
			name:     "name env",
			env:      map[string]string{EnvConfig: "/third.toml"},
			wantPath: "/third.toml",
			wantOver: "/third.toml",
		},
		{
			name:     "relative override resolved against working directory",
			flag:     "bot.toml",
			wantPath: filepath.Join(cwd, "bot.toml"),
			wantOver: "bot.toml",
		},
		{
			name:     "blank override ignored",
			flag:     "   ",
			wantPath: filepath.Join(cwd, DefaultFileName),
		},
		{
			name:     "directory is not a usable file",
			flag:     "/etc/tunebot/dir.toml",
			wantPath: "/etc/tunebot/dir.toml",
			wantOver: "/etc/tunebot/dir.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			src := Locate(fs, tt.flag, getenv)

			if src.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", src.Path, tt.wantPath)
			}
			if src.Override != tt.wantOver {
				t.Errorf("Override = %q, want %q", src.Override, tt.wantOver)
			}
			if src.Exists != tt.exists {
				t.Errorf("Exists = %v, want %v", src.Exists, tt.exists)
			}
		})
	}
}

func TestLocate_ExpandsHome(t *testing.T) {
	orig := userHomeDir
	userHomeDir = func() string { return "/home/operator" }
	t.Cleanup(func() { userHomeDir = orig })

	src := Locate(afero.NewMemMapFs(), "~/bot/config.toml", noEnv)
	if src.Path != "/home/operator/bot/config.toml" {
		t.Errorf("Path = %q", src.Path)
	}
}
