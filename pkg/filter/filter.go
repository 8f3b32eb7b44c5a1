// Package filter decides which files under a root directory are archived.
package filter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/makwanadeepam/totxt/pkg/ignore"

	"go.uber.org/zap"
)

// Select walks root and returns the absolute paths of every file that
// qualifies under cfg, in walk order. Problems with individual files are
// logged and only exclude that file.
func Select(root string, cfg Config, logger *zap.Logger) ([]string, error) {
	candidates, err := SelectCandidates(root, cfg, logger)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(candidates))
	for i, c := range candidates {
		paths[i] = c.Path
	}
	return paths, nil
}

// SelectCandidates is Select returning the inspected file metadata.
func SelectCandidates(root string, cfg Config, logger *zap.Logger) ([]Candidate, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	absRoot, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", absRoot)
	}

	exclude := ignore.New(logger.Named("exclude"))
	exclude.AddLines("exclude", cfg.Exclude...)
	rules := loadIgnoreRules(absRoot, cfg, logger)

	jobs, err := walk(absRoot, exclude, rules, logger)
	if err != nil {
		return nil, err
	}

	inspected := inspectConcurrently(jobs, cfg, logger)
	selected := make([]Candidate, 0, len(inspected))
	for _, c := range inspected {
		if c != nil {
			selected = append(selected, *c)
		}
	}

	logger.Debug("File selection completed",
		zap.String("root", absRoot),
		zap.Int("walked", len(jobs)),
		zap.Int("selected", len(selected)),
		zap.Duration("elapsed", time.Since(startTime)))
	return selected, nil
}

// ResolveRoot returns the absolute path of root with symbolic links
// resolved, so a linked root is walked like the directory it points to.
func ResolveRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}
	return resolved, nil
}

// loadIgnoreRules merges the root's ignore file with IgnoreSupplement and
// appends cfg.IgnoreRules. Without an ignore file only cfg.IgnoreRules apply.
func loadIgnoreRules(absRoot string, cfg Config, logger *zap.Logger) *ignore.Matcher {
	rules := ignore.New(logger.Named("ignore"))

	if cfg.IgnoreFile != "" {
		path := filepath.Join(absRoot, cfg.IgnoreFile)
		loaded, err := rules.AddFile(path)
		switch {
		case err != nil:
			logger.Warn("Failed to load ignore file", zap.String("file", path), zap.Error(err))
		case loaded:
			rules.AddLines("builtin", IgnoreSupplement...)
			logger.Debug("Loaded ignore file", zap.String("file", path), zap.Int("rules", rules.Len()))
		}
	}

	if len(cfg.IgnoreRules) > 0 {
		rules.AddLines("config", cfg.IgnoreRules...)
	}
	return rules
}

// walk enumerates regular files under absRoot. Excluded or ignored
// directories are pruned, symbolic links are never followed.
func walk(absRoot string, exclude, rules *ignore.Matcher, logger *zap.Logger) ([]job, error) {
	var jobs []job
	err := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}
		if path == absRoot {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			logger.Warn("Unable to determine relative path", zap.String("path", path), zap.Error(err))
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			logger.Debug("Skipping symbolic link", zap.String("path", relPath))
			return nil
		}

		if d.IsDir() {
			if exclude.Match(relPath, true) || rules.Match(relPath, true) {
				logger.Debug("Skipping directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			return nil
		}

		if exclude.Match(relPath, false) {
			logger.Debug("File matches exclusion", zap.String("file", relPath))
			return nil
		}
		if rules.Match(relPath, false) {
			logger.Debug("File matches ignore rule", zap.String("file", relPath))
			return nil
		}

		jobs = append(jobs, job{index: len(jobs), path: path, relPath: relPath})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", absRoot, err)
	}
	return jobs, nil
}

// inspect applies the size and type checks to one file.
func inspect(path, relPath string, cfg Config, logger *zap.Logger) (Candidate, bool) {
	info, err := os.Lstat(path)
	if err != nil {
		logger.Warn("Failed to stat file", zap.String("file", path), zap.Error(err))
		return Candidate{}, false
	}
	if !info.Mode().IsRegular() {
		return Candidate{}, false
	}

	if info.Size() > cfg.MaxFileSize {
		logger.Debug("File exceeds size limit",
			zap.String("file", relPath),
			zap.Int64("sizeBytes", info.Size()),
			zap.Int64("maxBytes", cfg.MaxFileSize))
		return Candidate{}, false
	}

	mimeType := TypeByExtension(path)
	if mimeType == "" && cfg.Sniff {
		binary, err := looksBinary(path)
		if err != nil {
			logger.Warn("Failed to sniff file content", zap.String("file", path), zap.Error(err))
			return Candidate{}, false
		}
		if !binary {
			mimeType = "text/plain"
		}
	}
	if !IsText(mimeType) {
		logger.Debug("File is not text", zap.String("file", relPath), zap.String("mime", mimeType))
		return Candidate{}, false
	}

	return Candidate{
		Path:    path,
		RelPath: relPath,
		Size:    info.Size(),
		MIME:    mimeType,
	}, true
}
