package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/makwanadeepam/totxt/pkg/config"
	"github.com/makwanadeepam/totxt/pkg/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// Loaded configuration and the logger handed over by main.
	cfg    *config.Config
	logger = zap.NewNop()
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "totxt",
	Short: "Convert a directory tree to a single text file and back",
	Long: `totxt packs the text files of a local directory or remote git repository
into one flat, human-readable text file, and recreates the directory tree
from such a file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.SetVerbose(verbose)
		c, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		if cfg.Source != "" {
			logger.Debug("Loaded config file", zap.String("file", cfg.Source))
		}
		return nil
	},
}

// Execute runs the root command with l as the logger of every subcommand.
func Execute(l *zap.Logger) error {
	if l != nil {
		logger = l.With(zap.String("runID", uuid.NewString()))
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return RootCmd.ExecuteContext(ctx)
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultFileName+" or ~/"+config.DefaultFileName+")")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
