package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"tunebot/internal/config"
	"tunebot/internal/interactive"
	"tunebot/internal/interfaces"
	"tunebot/internal/logger"
	"tunebot/internal/messages"
	"tunebot/pkg/models"
)

// Env is the process environment a command runs against
type Env struct {
	Fs     afero.Fs
	In     io.Reader // nil reads the real stdin
	Out    io.Writer
	Err    io.Writer
	Getenv func(string) string
}

// DefaultEnv uses the real filesystem, streams and environment
func DefaultEnv() *Env {
	return &Env{
		Fs:     afero.NewOsFs(),
		Out:    os.Stdout,
		Err:    os.Stderr,
		Getenv: os.Getenv,
	}
}

// Run loads the configuration, repairing it interactively when needed, and
// prints a readiness summary once it is valid
func Run(request *models.RunRequest, env *Env) (interfaces.Outcome, error) {
	if env == nil {
		env = DefaultEnv()
	}

	log := newLogger(request, env)
	logger.SetDefault(log)

	opts := []interactive.Option{
		interactive.WithNoPrompt(request.NoPrompt),
		interactive.WithLogger(log),
		interactive.WithOutput(env.Out),
	}
	if env.In != nil {
		opts = append(opts, interactive.WithInput(env.In))
	}
	prompter := interactive.NewPrompter(opts...)

	cfg := config.New(prompter,
		config.WithFs(env.Fs),
		config.WithOverride(request.ConfigPath),
		config.WithEnv(env.Getenv),
		config.WithLogger(log),
	)

	outcome := cfg.Load()
	switch outcome {
	case interfaces.OutcomeValid:
		log.Info("configuration ready", "path", cfg.Location())
		printSummary(env.Out, cfg)
		return outcome, nil
	case interfaces.OutcomeExit:
		return outcome, nil
	default:
		return outcome, fmt.Errorf("configuration error: %w", cfg.LastError())
	}
}

func newLogger(request *models.RunRequest, env *Env) logger.Logger {
	cfg := logger.DefaultConfig()
	cfg.Level = request.LogLevel
	cfg.JSON = request.LogJSON
	if env.Err != nil {
		cfg.Output = env.Err
	}
	return logger.New(cfg)
}

// printSummary shows the effective settings. The token is never printed.
func printSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "Configuration: %s\n", messages.ContractPath(cfg.Location()))
	fmt.Fprintf(w, "  owner: %d\n", cfg.OwnerID())

	prefixes := cfg.Prefix()
	if alt, ok := cfg.AltPrefix(); ok && alt != "" {
		prefixes += " or " + alt
	}
	fmt.Fprintf(w, "  prefix: %s\n", prefixes)
	fmt.Fprintf(w, "  help: %s\n", cfg.Help())
	fmt.Fprintf(w, "  status: %s\n", cfg.Status())

	if activity := cfg.Activity(); activity != nil {
		fmt.Fprintf(w, "  activity: %s %s\n", activity.Type, activity.Name)
	} else {
		fmt.Fprintf(w, "  activity: default\n")
	}

	if cfg.MaxSeconds() > 0 {
		fmt.Fprintf(w, "  max track length: %s\n", cfg.MaxTime())
	} else {
		fmt.Fprintf(w, "  max track length: unlimited\n")
	}
	fmt.Fprintf(w, "  playlists: %s\n", cfg.PlaylistsFolder())
}

// ConfigPath prints the file a run would use
func ConfigPath(request *models.RunRequest, env *Env) error {
	if env == nil {
		env = DefaultEnv()
	}

	src := config.Locate(env.Fs, request.ConfigPath, env.Getenv)
	if src.Exists {
		fmt.Fprintln(env.Out, src.Path)
	} else {
		fmt.Fprintf(env.Out, "%s (not created yet)\n", src.Path)
	}
	return nil
}

// ShowConfig prints the effective document, user values over defaults, as
// TOML. The token is masked.
func ShowConfig(request *models.RunRequest, env *Env) error {
	if env == nil {
		env = DefaultEnv()
	}

	src := config.Locate(env.Fs, request.ConfigPath, env.Getenv)
	doc, err := config.LoadDocument(env.Fs, src, config.Reference())
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	settings, err := doc.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to merge configuration: %w", err)
	}
	maskToken(settings)

	out, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}

	if src.Exists {
		fmt.Fprintf(env.Out, "# %s\n", messages.ContractPath(src.Path))
	} else {
		fmt.Fprintf(env.Out, "# %s (not created yet, showing defaults)\n", messages.ContractPath(src.Path))
	}
	_, err = env.Out.Write(out)
	return err
}

func maskToken(settings map[string]any) {
	token, ok := settings["token"].(string)
	if !ok || config.TokenMissing(token) {
		return
	}
	settings["token"] = strings.Repeat("*", 8)
}
