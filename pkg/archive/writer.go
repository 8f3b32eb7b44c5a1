// File: pkg/archive/writer.go
package archive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Writer emits a document to an underlying stream. Call Flush when done.
type Writer struct {
	w       *bufio.Writer
	records int
}

// NewWriter returns a Writer buffering into w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Records returns how many records have been written.
func (w *Writer) Records() int {
	return w.records
}

// WriteHeader writes the header naming the source root.
func (w *Writer) WriteHeader(root string) error {
	_, err := fmt.Fprintf(w.w, "%s%s\n%s\n\n", HeaderPrefix, root, HeaderSeparator)
	return err
}

// WriteRecord writes one file. content is written verbatim.
func (w *Writer) WriteRecord(relPath, content string) error {
	if _, err := fmt.Fprintf(w.w, "%s %s\n%s\n", MarkerPrefix, relPath, RecordSeparator); err != nil {
		return err
	}
	if _, err := w.w.WriteString(content); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n\n"); err != nil {
		return err
	}
	w.records++
	return nil
}

// WriteEmpty writes the placeholder for a document without records.
func (w *Writer) WriteEmpty() error {
	_, err := w.w.WriteString(EmptyPlaceholder + "\n")
	return err
}

// Flush writes any buffered data to the underlying stream.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Encode writes a complete document for files, which must be paths under
// root. Files are read one at a time; a file that cannot be read is written
// with empty content. It returns the number of records written.
func Encode(out io.Writer, root string, files []string, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	w := NewWriter(out)
	if err := w.WriteHeader(root); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	if len(files) == 0 {
		logger.Warn("No valid files found to process", zap.String("root", root))
		if err := w.WriteEmpty(); err != nil {
			return 0, fmt.Errorf("write placeholder: %w", err)
		}
		return 0, w.Flush()
	}

	for _, file := range files {
		relPath, err := filepath.Rel(root, file)
		if err != nil {
			logger.Warn("Unable to determine relative path, using absolute path",
				zap.String("file", file),
				zap.String("root", root),
				zap.Error(err))
			relPath = file
		}

		content := readContent(file, logger)
		if err := w.WriteRecord(relPath, content); err != nil {
			return w.Records(), fmt.Errorf("write record %s: %w", relPath, err)
		}
		logger.Debug("Encoded file", zap.String("file", relPath), zap.Int("bytes", len(content)))
	}

	if err := w.Flush(); err != nil {
		return w.Records(), fmt.Errorf("flush archive: %w", err)
	}
	return w.Records(), nil
}

// readContent returns the file body as UTF-8 text. Invalid byte sequences
// are dropped. Read errors yield "".
func readContent(path string, logger *zap.Logger) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read file, writing empty content", zap.String("file", path), zap.Error(err))
		return ""
	}
	return strings.ToValidUTF8(string(data), "")
}
