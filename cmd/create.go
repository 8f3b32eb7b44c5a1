package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/makwanadeepam/totxt/pkg/logging"
	"github.com/makwanadeepam/totxt/pkg/pack"
	"github.com/makwanadeepam/totxt/pkg/remote"
)

var (
	createMaxSizeKB  int
	createOutput     string
	createTree       string
	createSniff      bool
	createWorkers    int
	createExclude    []string
	createCloneDepth int
)

var createCmd = &cobra.Command{
	Use:   "create <path|url>",
	Short: "Convert a directory or git repository into a text file",
	Long: `Walk a local directory, or clone a remote git repository, and write every
eligible text file into a single archive. Files larger than --max-size,
binary files and paths matched by the ignore file or exclusion globs are
skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]

		f := cmd.Flags()
		if f.Changed("max-size") {
			cfg.MaxSizeKB = createMaxSizeKB
		}
		if f.Changed("output") {
			cfg.Output = createOutput
		}
		if f.Changed("workers") {
			cfg.Workers = createWorkers
		}
		if f.Changed("sniff") {
			cfg.Sniff = createSniff
		}
		if f.Changed("clone-depth") {
			cfg.CloneDepth = createCloneDepth
		}
		if f.Changed("exclude") {
			cfg.Exclude = append(cfg.Exclude, createExclude...)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		output := cfg.Output
		if output == "" {
			output = remote.Stem(source) + "_output.txt"
		}

		res, err := pack.Create(cmd.Context(), pack.CreateOptions{
			Source:     source,
			Output:     output,
			TreeOutput: createTree,
			Filter:     cfg.FilterConfig(),
			CloneDepth: cfg.CloneDepth,
		}, logger)
		if err != nil {
			logger.Error("Conversion failed", zap.String("source", source), zap.Error(err))
			return fmt.Errorf("create %s: %w", source, err)
		}

		logging.Success(logger, "Conversion successful",
			zap.Int("processedFiles", res.Files),
			zap.String("outputFile", res.Output))
		return nil
	},
}

func init() {
	createCmd.Flags().IntVarP(&createMaxSizeKB, "max-size", "m", 100, "maximum file size in KB")
	createCmd.Flags().StringVarP(&createOutput, "output", "o", "", "output file (default <name>_output.txt)")
	createCmd.Flags().StringVar(&createTree, "tree", "", "also write a tree of the archived files to this file")
	createCmd.Flags().BoolVar(&createSniff, "sniff", false, "inspect content of files with an unknown extension")
	createCmd.Flags().IntVarP(&createWorkers, "workers", "w", 0, "number of concurrent workers (0 uses all CPUs)")
	createCmd.Flags().StringArrayVarP(&createExclude, "exclude", "e", nil, "additional exclusion glob (repeatable)")
	createCmd.Flags().IntVar(&createCloneDepth, "clone-depth", 0, "shallow clone depth for remote repositories (0 clones full history)")
	RootCmd.AddCommand(createCmd)
}
