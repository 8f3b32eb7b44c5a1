// File: pkg/filter/mime.go
package filter

import (
	"mime"
	"path/filepath"
	"strings"
)

// extensionTypes pins the types of common source and data files so the
// result does not depend on the host's mime.types.
var extensionTypes = map[string]string{
	// plain text and docs
	".txt":  "text/plain",
	".text": "text/plain",
	".log":  "text/plain",
	".md":   "text/markdown",
	".rst":  "text/x-rst",
	".adoc": "text/asciidoc",
	".csv":  "text/csv",
	".tsv":  "text/tab-separated-values",

	// web
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".scss": "text/x-scss",
	".js":   "application/javascript",
	".mjs":  "application/javascript",
	".cjs":  "application/javascript",
	".jsx":  "text/jsx",
	".ts":   "text/x-typescript",
	".tsx":  "text/x-typescript",
	".json": "application/json",
	".xml":  "application/xml",
	".svg":  "image/svg+xml",

	// config
	".yaml": "text/yaml",
	".yml":  "text/yaml",
	".toml": "text/x-toml",
	".ini":  "text/plain",
	".cfg":  "text/plain",
	".conf": "text/plain",
	".env":  "text/plain",

	// source
	".go":    "text/x-go",
	".py":    "text/x-python",
	".rb":    "text/x-ruby",
	".rs":    "text/x-rust",
	".java":  "text/x-java",
	".kt":    "text/x-kotlin",
	".c":     "text/x-c",
	".h":     "text/x-c",
	".cc":    "text/x-c++",
	".cpp":   "text/x-c++",
	".hpp":   "text/x-c++",
	".cs":    "text/x-csharp",
	".swift": "text/x-swift",
	".php":   "text/x-php",
	".pl":    "text/x-perl",
	".lua":   "text/x-lua",
	".sql":   "text/x-sql",
	".sh":    "text/x-shellscript",
	".bash":  "text/x-shellscript",
	".zsh":   "text/x-shellscript",
	".ps1":   "text/plain",
	".proto": "text/plain",
	".tf":    "text/plain",
	".mod":   "text/plain",
	".sum":   "text/plain",

	// binaries
	".bin":  "application/octet-stream",
	".exe":  "application/octet-stream",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".wasm": "application/wasm",
}

// TypeByExtension infers a MIME type from the extension of name alone. It
// returns "" when the type is unknown.
func TypeByExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return mime.TypeByExtension(ext)
}

// IsText reports whether mimeType belongs to the archivable set: any text/*
// type, JSON, JavaScript or XML.
func IsText(mimeType string) bool {
	mediaType, _, _ := strings.Cut(mimeType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	if strings.HasPrefix(mediaType, "text/") {
		return true
	}
	switch mediaType {
	case "application/json", "application/javascript", "application/xml":
		return true
	}
	return false
}
