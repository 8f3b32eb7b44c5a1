package filter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files relative to root. Parent directories are created
// as needed.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// relPaths converts Select output back to slash-separated paths relative to
// the resolved root.
func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	root, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		require.True(t, filepath.IsAbs(p), "expected absolute path, got %s", p)
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestSelect_TextAndUnknownExtension(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt": "hello\nworld",
		"b.bin": "\x00\x01\x02",
	})

	paths, err := Select(root, DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, relPaths(t, root, paths))
}

func TestSelect_SizeBoundary(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.MaxFileSize = 10
	writeTree(t, root, map[string]string{
		"exact.txt": strings.Repeat("x", 10),
		"over.txt":  strings.Repeat("x", 11),
		"empty.txt": "",
	})

	paths, err := Select(root, cfg, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"exact.txt", "empty.txt"}, relPaths(t, root, paths))
}

func TestSelect_DefaultExclusions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":                   "package main",
		".hidden.md":                "dotfiles are walked",
		"node_modules/pkg/index.js": "module.exports = 1",
		".git/HEAD.txt":             "ref: refs/heads/main",
		"web/dist/bundle.js":        "x",
		"src/__pycache__/m.py":      "x",
		"assets/logo.png":           "not really a png",
		"src/app.py":                "print('hi')",
	})

	paths, err := Select(root, DefaultConfig(), nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"main.go", ".hidden.md", "src/app.py"}, relPaths(t, root, paths))
}

func TestSelect_IgnoreFileMergesSupplement(t *testing.T) {
	files := map[string]string{
		"app.log":        "log line",
		"notes.txt":      "notes",
		"secret/key.txt": "k",
		"keep.txt":       "keep",
	}

	t.Run("without ignore file", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, files)

		paths, err := Select(root, DefaultConfig(), nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"app.log", "notes.txt", "secret/key.txt", "keep.txt"}, relPaths(t, root, paths))
	})

	t.Run("with ignore file", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, files)
		writeTree(t, root, map[string]string{".gitignore": "secret/\nnotes.txt\n"})

		paths, err := Select(root, DefaultConfig(), nil)
		require.NoError(t, err)
		// .gitignore has no extension-mapped type, and *.log comes from the supplement.
		assert.ElementsMatch(t, []string{"keep.txt"}, relPaths(t, root, paths))
	})

	t.Run("extra rules without ignore file", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, files)
		cfg := DefaultConfig()
		cfg.IgnoreRules = []string{"keep.txt"}

		paths, err := Select(root, cfg, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"app.log", "notes.txt", "secret/key.txt"}, relPaths(t, root, paths))
	})
}

func TestSelect_SkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"target.txt": "data"})
	outside := t.TempDir()
	writeTree(t, outside, map[string]string{"other.txt": "outside"})

	if err := os.Symlink(filepath.Join(root, "target.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "linkdir")))

	paths, err := Select(root, DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"target.txt"}, relPaths(t, root, paths))
}

func TestSelect_SymlinkedRoot(t *testing.T) {
	target := t.TempDir()
	writeTree(t, target, map[string]string{"a.txt": "a", "sub/b.md": "b"})
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(target, "a.txt"), filepath.Join(target, "inner.txt")))

	paths, err := Select(link, DefaultConfig(), nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "sub/b.md"}, relPaths(t, target, paths))
}

func TestSelect_Sniff(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Makefile":   "all:\n\tgo build ./...\n",
		"blob.dat":   "\x00\x00\x00binary",
		"readme.txt": "text",
	})

	paths, err := Select(root, DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"readme.txt"}, relPaths(t, root, paths))

	cfg := DefaultConfig()
	cfg.Sniff = true
	paths, err = Select(root, cfg, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Makefile", "readme.txt"}, relPaths(t, root, paths))
}

func TestSelect_StableAcrossRunsAndWorkerCounts(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{}
	for _, dir := range []string{"a", "b", "c/d"} {
		for _, name := range []string{"1.go", "2.md", "3.json", "4.bin"} {
			files[dir+"/"+name] = "content of " + dir + "/" + name
		}
	}
	writeTree(t, root, files)

	cfg := DefaultConfig()
	cfg.Workers = 1
	first, err := Select(root, cfg, nil)
	require.NoError(t, err)
	assert.Len(t, first, 9)

	for _, workers := range []int{0, 3, 16} {
		cfg.Workers = workers
		again, err := Select(root, cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, first, again, "workers=%d", workers)
	}
}

func TestSelect_EveryFileClassified(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.MaxFileSize = 64
	files := map[string]string{
		"ok.txt":           "small",
		"big.txt":          strings.Repeat("y", 65),
		"data.json":        `{"a":1}`,
		"page.xml":         "<a/>",
		"script.js":        "let a = 1",
		"photo.jpg":        "jpg",
		"unknown.zzz":      "??",
		"vendor.lock":      "lock",
		"build/out.txt":    "out",
		"nested/ok/ok.css": "a{}",
	}
	writeTree(t, root, files)
	writeTree(t, root, map[string]string{".gitignore": "# nothing extra\n"})

	candidates, err := SelectCandidates(root, cfg, nil)
	require.NoError(t, err)

	selected := map[string]Candidate{}
	for _, c := range candidates {
		selected[filepath.ToSlash(c.RelPath)] = c
		assert.LessOrEqual(t, c.Size, cfg.MaxFileSize)
		assert.True(t, IsText(c.MIME), c.RelPath)
	}
	assert.ElementsMatch(t,
		[]string{"ok.txt", "data.json", "page.xml", "script.js", "nested/ok/ok.css"},
		keys(selected))
}

func TestSelect_RootErrors(t *testing.T) {
	_, err := Select(filepath.Join(t.TempDir(), "missing"), DefaultConfig(), nil)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = Select(file, DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestSelect_EmptyRoot(t *testing.T) {
	paths, err := Select(t.TempDir(), DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func keys(m map[string]Candidate) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
