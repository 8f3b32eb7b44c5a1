// Package remote fetches a remote git repository into a local directory so
// it can be archived like any other tree.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ErrGitNotFound is returned when the git executable is not on PATH.
var ErrGitNotFound = errors.New("git executable not found")

// IsURL reports whether source names a remote repository rather than a
// local directory.
func IsURL(source string) bool {
	for _, scheme := range []string{"http://", "https://", "ssh://", "git://", "file://"} {
		if strings.HasPrefix(source, scheme) {
			return true
		}
	}
	// scp-like syntax: user@host:path
	if at := strings.Index(source, "@"); at > 0 {
		if colon := strings.Index(source[at:], ":"); colon > 1 {
			return true
		}
	}
	return strings.Contains(source, "github.com")
}

// Stem returns the last path element of source without its extension, for
// both URLs and local paths.
func Stem(source string) string {
	s := strings.TrimRight(source, "/\\")
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 && !strings.Contains(s[i:], "/") {
		s = s[i+1:]
	}
	s = strings.ReplaceAll(s, "\\", "/")
	base := path.Base(s)
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		return "output"
	}
	return base
}

// Clone clones url into a new temporary directory and returns its path.
// depth > 0 requests a shallow clone. Once the directory exists it is
// returned even when cloning fails; the caller must remove it.
func Clone(ctx context.Context, url string, depth int, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := exec.LookPath("git"); err != nil {
		return "", ErrGitNotFound
	}

	dir, err := os.MkdirTemp("", "totxt-clone-*")
	if err != nil {
		return "", fmt.Errorf("create temporary directory: %w", err)
	}

	args := []string{"clone", "--quiet"}
	if depth > 0 {
		args = append(args, "--depth", strconv.Itoa(depth))
	}
	args = append(args, "--", url, dir)

	logger.Info("Cloning repository", zap.String("url", url), zap.String("dir", dir))

	var stderr bytes.Buffer
	command := exec.CommandContext(ctx, "git", args...)
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		return dir, fmt.Errorf("git clone %s: %w (stderr: %s)", url, err, strings.TrimSpace(stderr.String()))
	}
	return dir, nil
}
