// Package pack runs the create and recreate operations end to end.
package pack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/makwanadeepam/totxt/pkg/archive"
	"github.com/makwanadeepam/totxt/pkg/filter"
	"github.com/makwanadeepam/totxt/pkg/remote"
)

// CreateOptions holds the arguments of a create run.
type CreateOptions struct {
	Source     string        // Local directory or remote repository URL.
	Output     string        // Archive file to write.
	TreeOutput string        // Optional file receiving a tree of the archived files.
	Filter     filter.Config // File selection settings.
	CloneDepth int           // Shallow clone depth for remote sources; 0 clones everything.
}

// CreateResult summarizes a create run.
type CreateResult struct {
	Root   string // Directory that was scanned.
	Output string // Archive that was written.
	Files  int    // Number of records written.
}

// Create archives opts.Source into opts.Output. Remote sources are cloned
// into a temporary directory that is removed before returning.
func Create(ctx context.Context, opts CreateOptions, logger *zap.Logger) (CreateResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	root := opts.Source
	if remote.IsURL(opts.Source) && !isDir(opts.Source) {
		logger.Info("Processing remote repository", zap.String("url", opts.Source))
		dir, err := remote.Clone(ctx, opts.Source, opts.CloneDepth, logger)
		if dir != "" {
			defer func() {
				if err := os.RemoveAll(dir); err != nil {
					logger.Warn("Failed to remove temporary clone", zap.String("dir", dir), zap.Error(err))
				}
			}()
		}
		if err != nil {
			return CreateResult{}, fmt.Errorf("clone repository: %w", err)
		}
		root = dir
	}

	absRoot, err := filter.ResolveRoot(root)
	if err != nil {
		return CreateResult{}, fmt.Errorf("resolve source path: %w", err)
	}
	logger.Info("Starting conversion", zap.String("root", absRoot), zap.String("output", opts.Output))

	candidates, err := filter.SelectCandidates(absRoot, opts.Filter, logger)
	if err != nil {
		return CreateResult{}, fmt.Errorf("select files: %w", err)
	}
	// A previous archive or tree written inside the root is not input.
	skip := map[string]bool{}
	for _, p := range []string{opts.Output, opts.TreeOutput} {
		if p == "" {
			continue
		}
		skip[resolvePath(p)] = true
	}
	files := make([]string, 0, len(candidates))
	relPaths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if skip[c.Path] {
			logger.Debug("Skipping output file inside source root", zap.String("file", c.RelPath))
			continue
		}
		files = append(files, c.Path)
		relPaths = append(relPaths, c.RelPath)
	}

	if err := ensureDirectory(filepath.Dir(opts.Output), logger); err != nil {
		return CreateResult{}, fmt.Errorf("create output directory: %w", err)
	}
	outFile, err := os.Create(opts.Output)
	if err != nil {
		return CreateResult{}, fmt.Errorf("create output file: %w", err)
	}

	n, err := archive.Encode(outFile, absRoot, files, logger)
	if closeErr := outFile.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close output file: %w", closeErr)
	}
	if err != nil {
		return CreateResult{}, fmt.Errorf("write archive: %w", err)
	}

	if opts.TreeOutput != "" {
		if err := ensureDirectory(filepath.Dir(opts.TreeOutput), logger); err != nil {
			return CreateResult{}, fmt.Errorf("create tree output directory: %w", err)
		}
		tree := RenderTree(absRoot, relPaths)
		if err := os.WriteFile(opts.TreeOutput, []byte(tree), 0o644); err != nil {
			return CreateResult{}, fmt.Errorf("write tree structure: %w", err)
		}
		logger.Debug("Wrote tree structure", zap.String("file", opts.TreeOutput))
	}

	logger.Debug("Conversion finished", zap.Duration("elapsed", time.Since(startTime)))
	return CreateResult{Root: absRoot, Output: opts.Output, Files: n}, nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}

// isDir reports whether path names an existing local directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// resolvePath makes path absolute and resolves symbolic links in its
// directory, matching how the scanned root is resolved.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return abs
	}
	return filepath.Join(dir, filepath.Base(abs))
}
