// Package materialize writes decoded archive records to a filesystem.
package materialize

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"

	"github.com/makwanadeepam/totxt/pkg/archive"
)

var (
	// ErrEmptyPath is returned for a record without a path.
	ErrEmptyPath = errors.New("record has an empty path")
	// ErrOutsideRoot is returned for a record whose path leaves the root.
	ErrOutsideRoot = errors.New("record path escapes the target directory")
)

// Materializer creates files for records under the root of a filesystem.
type Materializer struct {
	fs     billy.Filesystem
	logger *zap.Logger
}

// New returns a Materializer writing into fs.
func New(fs billy.Filesystem, logger *zap.Logger) *Materializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Materializer{fs: fs, logger: logger}
}

// NewOS returns a Materializer rooted at the directory basePath, creating
// the directory if needed.
func NewOS(basePath string, logger *zap.Logger) (*Materializer, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create base directory %s: %w", basePath, err)
	}
	return New(osfs.New(basePath), logger), nil
}

// Write creates or replaces the file for rec. Parent directories are
// created as needed and an existing file is truncated.
func (m *Materializer) Write(rec archive.Record) error {
	name, err := destination(rec.Path)
	if err != nil {
		return err
	}

	if dir := path.Dir(name); dir != "." {
		if err := m.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if err := util.WriteFile(m.fs, name, []byte(rec.Content()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	m.logger.Debug("Wrote file", zap.String("path", name), zap.Int("lines", len(rec.Lines)))
	return nil
}

// destination cleans a record path into a slash-separated path relative to
// the filesystem root.
func destination(recPath string) (string, error) {
	p := strings.TrimSpace(filepath.ToSlash(recPath))
	if p == "" {
		return "", ErrEmptyPath
	}
	p = path.Clean(strings.TrimLeft(p, "/"))
	if p == "." {
		return "", ErrEmptyPath
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, recPath)
	}
	return p, nil
}
