// Package ignore matches slash-separated relative paths against
// gitignore-style rules.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"
)

// Pattern is one parsed rule together with where it came from.
type Pattern struct {
	Pattern gitignore.Pattern // Parsed rule matched against path components.
	Negate  bool              // Rule started with '!' and re-includes matching paths.
	DirOnly bool              // Rule ended with '/' and only applies to directories.
	Source  string            // File name or label the rule was loaded from.
	Line    string            // Original rule text.
	LineNo  int               // Line number in the source (1-based).
}

// Matcher is an ordered rule set. Later rules override earlier ones.
// A Matcher is safe for concurrent Match calls once all rules are added.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty Matcher.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Len returns the number of parsed rules.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// AddLines parses rule lines and appends them to the matcher. Blank lines
// and comments are skipped.
func (m *Matcher) AddLines(source string, lines ...string) {
	for i, line := range lines {
		p := parsePatternLine(line)
		if p == nil {
			continue
		}
		p.Source = source
		p.LineNo = i + 1
		m.patterns = append(m.patterns, p)
		m.logger.Debug("Compiled ignore rule",
			zap.String("source", source),
			zap.Int("lineNo", p.LineNo),
			zap.String("rule", p.Line),
			zap.Bool("negate", p.Negate))
	}
}

// AddFile parses every rule of the file at path. A missing file is not an
// error; loaded reports whether the file existed.
func (m *Matcher) AddFile(path string) (loaded bool, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("Ignore file does not exist", zap.String("file", path))
			return false, nil
		}
		return false, fmt.Errorf("read ignore file %s: %w", path, err)
	}

	lines := strings.Split(string(content), "\n")
	m.AddLines(filepath.Base(path), lines...)
	m.logger.Debug("Loaded ignore file", zap.String("file", path), zap.Int("lineCount", len(lines)))
	return true, nil
}

// Match reports whether relPath is ignored.
func (m *Matcher) Match(relPath string, isDir bool) bool {
	matched, _ := m.MatchWithPattern(relPath, isDir)
	return matched
}

// MatchWithPattern reports whether relPath is ignored and returns the last
// rule that decided it, which may be a negation.
func (m *Matcher) MatchWithPattern(relPath string, isDir bool) (bool, *Pattern) {
	normalized := NormalizePath(relPath, isDir)
	if normalized == "" {
		return false, nil
	}
	parts := strings.Split(strings.TrimSuffix(normalized, "/"), "/")

	for i := len(m.patterns) - 1; i >= 0; i-- {
		p := m.patterns[i]
		result := p.Pattern.Match(parts, isDir)
		if result == gitignore.NoMatch {
			continue
		}
		matched := result == gitignore.Exclude
		m.logger.Debug("Path matched ignore rule",
			zap.String("path", normalized),
			zap.String("rule", p.Line),
			zap.Bool("ignored", matched))
		return matched, p
	}
	return false, nil
}

// NormalizePath converts a relative path to the form rules are matched
// against: forward slashes, no leading "./", and a trailing "/" for
// directories.
func NormalizePath(relPath string, isDir bool) string {
	p := filepath.ToSlash(relPath)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return ""
	}
	if isDir {
		p += "/"
	}
	return p
}
