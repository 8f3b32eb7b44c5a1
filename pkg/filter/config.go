// File: pkg/filter/config.go
package filter

// DefaultMaxFileSizeKB is the size limit used when none is configured.
const DefaultMaxFileSizeKB = 100

// DefaultIgnoreFile is the per-root ignore file merged into the rules.
const DefaultIgnoreFile = ".gitignore"

// DefaultExclude lists globs that are pruned while the tree is walked,
// whether or not the root has an ignore file.
var DefaultExclude = []string{
	// VCS metadata
	".git/",
	".hg/",
	".svn/",
	// dependency and build output
	"node_modules/",
	".venv/",
	"venv/",
	"__pycache__/",
	"dist/",
	"build/",
	// binaries and media
	"*.exe", "*.dll", "*.so", "*.dylib", "*.o", "*.a", "*.obj",
	"*.class", "*.jar", "*.pyc", "*.pyo",
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.bmp", "*.ico", "*.webp",
	"*.pdf", "*.zip", "*.tar", "*.gz", "*.tgz", "*.bz2", "*.xz", "*.7z", "*.rar",
	"*.woff", "*.woff2", "*.ttf", "*.otf", "*.eot",
	"*.mp3", "*.mp4", "*.mov", "*.avi", "*.wav",
	"*.wasm", "*.db", "*.sqlite",
}

// IgnoreSupplement is appended to the rules of the ignore file when one is
// present.
var IgnoreSupplement = []string{
	"*.log",
	"*.lock",
	"package-lock.json",
	".git/",
	"node_modules/",
}

// Config controls which files qualify for an archive. It is built once per
// run and not modified afterwards.
type Config struct {
	MaxFileSize int64    // Largest accepted file, in bytes.
	Exclude     []string // Globs pruned during the walk.
	IgnoreFile  string   // Ignore file name looked up in the root; empty disables it.
	IgnoreRules []string // Extra ignore rules that always apply.
	Workers     int      // Concurrent inspectors; <= 0 means runtime.NumCPU().
	Sniff       bool     // Accept unknown extensions whose content looks like text.
}

// DefaultConfig returns the configuration used by the CLI without flags.
func DefaultConfig() Config {
	return Config{
		MaxFileSize: KB(DefaultMaxFileSizeKB),
		Exclude:     append([]string(nil), DefaultExclude...),
		IgnoreFile:  DefaultIgnoreFile,
	}
}

// KB converts a size in kilobytes to bytes.
func KB(n int) int64 {
	return int64(n) * 1024
}

// Candidate is a file that qualified for the archive.
type Candidate struct {
	Path    string // Absolute path on disk.
	RelPath string // Path relative to the scanned root.
	Size    int64  // Size in bytes.
	MIME    string // Textual type inferred from the name, or "text/plain" when sniffed.
}
