package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tunebot/internal/app"
	"tunebot/internal/interfaces"
	"tunebot/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var exit = os.Exit

var rootCmd = &cobra.Command{
	Use:   "tunebot",
	Short: "Load and repair the music bot configuration",
	Long: `tunebot loads the bot configuration, layering config.toml over the built-in
defaults. When the bot token or the owner ID is missing it asks for them and
saves the answers so the next start does not ask again.

The file is looked up in this order: --config, TUNEBOT_CONFIG_FILE,
TUNEBOT_CONFIG, then config.toml in the working directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			versionCmd.Run(cmd, args)
			return nil
		}

		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		outcome, err := app.Run(request, nil)
		if outcome == interfaces.OutcomeExit {
			exit(0)
			return nil
		}
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "tunebot version %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built: %s\n", date)
		fmt.Fprintf(out, "  go version: %s\n", goVersion)
		fmt.Fprintf(out, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.ConfigPath(request, commandEnv(cmd))
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  "Print the configuration file merged over the built-in defaults as TOML. The bot token is masked.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.ShowConfig(request, commandEnv(cmd))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ./config.toml)")
	rootCmd.PersistentFlags().Bool("noprompt", false, "never ask for missing values")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON")
	rootCmd.Flags().BoolP("version", "v", false, "print version information")
}

// buildRequestFromFlags constructs a RunRequest from command flags
func buildRequestFromFlags(cmd *cobra.Command) (*models.RunRequest, error) {
	request := models.NewRunRequest()

	var err error
	if request.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}
	if request.NoPrompt, err = cmd.Flags().GetBool("noprompt"); err != nil {
		return nil, fmt.Errorf("invalid noprompt flag: %w", err)
	}
	if request.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
		return nil, fmt.Errorf("invalid log-level flag: %w", err)
	}
	if request.LogJSON, err = cmd.Flags().GetBool("log-json"); err != nil {
		return nil, fmt.Errorf("invalid log-json flag: %w", err)
	}

	switch request.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return nil, fmt.Errorf("unknown log level %q", request.LogLevel)
	}

	return request, nil
}

func commandEnv(cmd *cobra.Command) *app.Env {
	env := app.DefaultEnv()
	env.Out = cmd.OutOrStdout()
	env.Err = cmd.ErrOrStderr()
	return env
}

// loadDotEnv reads .env from the working directory when present
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}
	return nil
}

func main() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := loadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}
