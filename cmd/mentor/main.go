package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"artimentor/internal/config"
	"artimentor/internal/logging"
	"artimentor/internal/store"
)

var (
	// Global flags
	verbose   bool
	workspace string
	timeout   time.Duration

	// Loaded per invocation
	userConfig *config.UserConfig
	logger     *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mentor",
	Short: "artimentor - AI build mentor for your character showcase",
	Long: `artimentor scans a public character showcase by UID, benchmarks the
builds against leaderboard data and asks an AI mentor how to improve
them using only the artifacts you actually own.

Typical flow:
  mentor scan 700000001
  mentor leaderboard 1000016 --deep --character "Hu Tao"
  mentor analyze "Hu Tao"
  mentor chat "Hu Tao"`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		ws, err := resolveWorkspace()
		if err != nil {
			return err
		}
		if err := logging.Initialize(ws); err != nil {
			logger.Warn("file logging unavailable", zap.Error(err))
		}

		userConfig, err = config.LoadUserConfig(filepath.Join(ws, ".mentor", "config.json"))
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Close()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// resolveWorkspace returns the workspace root, honoring the -w flag.
func resolveWorkspace() (string, error) {
	if workspace != "" {
		abs, err := filepath.Abs(workspace)
		if err != nil {
			return "", err
		}
		return abs, nil
	}
	return config.FindWorkspaceRoot()
}

// openStore opens the local database under the workspace.
func openStore() (*store.LocalStore, error) {
	ws, err := resolveWorkspace()
	if err != nil {
		return nil, err
	}
	return store.NewLocalStore(store.DefaultPath(ws))
}

// openStash returns the working-state stash under the workspace.
func openStash() (*store.Stash, error) {
	ws, err := resolveWorkspace()
	if err != nil {
		return nil, err
	}
	return store.NewStash(ws), nil
}

// scansRoot is where archived scan folders live.
func scansRoot() (string, error) {
	ws, err := resolveWorkspace()
	if err != nil {
		return "", err
	}
	return filepath.Join(ws, ".mentor", "scans"), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: nearest .mentor or current)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "Operation timeout")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(dataCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
