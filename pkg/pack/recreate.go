package pack

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/makwanadeepam/totxt/pkg/archive"
	"github.com/makwanadeepam/totxt/pkg/materialize"
)

// RecreateOptions holds the arguments of a recreate run.
type RecreateOptions struct {
	Archive  string // Archive file to read.
	BasePath string // Directory the files are written under.
}

// RecreateResult summarizes a recreate run.
type RecreateResult struct {
	BasePath string
	Written  int // Records written to disk.
	Failed   int // Records that could not be written.
}

// Recreate writes every record of opts.Archive under opts.BasePath. Records
// that cannot be written are logged and skipped; an unreadable archive
// aborts the run.
func Recreate(opts RecreateOptions, logger *zap.Logger) (RecreateResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	result := RecreateResult{BasePath: opts.BasePath}

	f, err := os.Open(opts.Archive)
	if err != nil {
		return result, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	m, err := materialize.NewOS(opts.BasePath, logger)
	if err != nil {
		return result, err
	}

	logger.Info("Recreating files", zap.String("archive", opts.Archive), zap.String("basePath", opts.BasePath))

	rd := archive.NewReader(f)
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("read archive: %w", err)
		}

		if err := m.Write(rec); err != nil {
			result.Failed++
			logger.Warn("Failed to recreate file", zap.String("path", rec.Path), zap.Error(err))
			continue
		}
		result.Written++
	}

	return result, nil
}
