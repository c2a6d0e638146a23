// Package cli holds the postgen command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GintasS/social-media-post-generator/internal/config"
	"github.com/GintasS/social-media-post-generator/internal/logging"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

// app is the state shared by every subcommand once the root has run.
type app struct {
	cfgFile  string
	settings config.Settings
	logger   *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "postgen",
		Short:         "Generate social media posts for a product",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to load .env: %w", err)
			}

			v, err := config.NewViper(a.cfgFile)
			if err != nil {
				return err
			}
			a.settings, err = config.LoadSettings(v)
			if err != nil {
				return err
			}
			a.logger, err = logging.New(a.settings.Log.Level, a.settings.Log.Development)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "settings file (yaml, json or toml)")

	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newPlatformsCmd(a))
	rootCmd.AddCommand(newPromptCmd(a))
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		errorColor.Fprintf(os.Stderr, "✗ %v\n", err)
	}
	return err
}
