package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/makwanadeepam/totxt/pkg/logging"
	"github.com/makwanadeepam/totxt/pkg/pack"
)

var recreateBasePath string

var recreateCmd = &cobra.Command{
	Use:   "recreate <archive>",
	Short: "Recreate a directory tree from a text file",
	Long: `Read an archive produced by "totxt create" and write each file it contains
under the base path. Blank lines are not restored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("base-path") {
			cfg.BasePath = recreateBasePath
		}

		res, err := pack.Recreate(pack.RecreateOptions{Archive: args[0], BasePath: cfg.BasePath}, logger)
		if err != nil {
			logger.Error("Recreation failed", zap.String("archive", args[0]), zap.Error(err))
			return fmt.Errorf("recreate %s: %w", args[0], err)
		}

		if res.Failed > 0 {
			logger.Warn("Some files could not be recreated", zap.Int("failedFiles", res.Failed))
		}
		logging.Success(logger, "Recreation successful",
			zap.Int("recreatedFiles", res.Written),
			zap.String("basePath", res.BasePath))
		return nil
	},
}

func init() {
	recreateCmd.Flags().StringVarP(&recreateBasePath, "base-path", "b", ".", "directory to recreate the files in")
	RootCmd.AddCommand(recreateCmd)
}
