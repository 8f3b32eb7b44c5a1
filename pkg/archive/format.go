// Package archive encodes a set of text files into a single flat document
// and parses such documents back into records.
//
// A document looks like:
//
//	# Repository: /path/to/root
//	==================================================
//
//	### SOURCE FILE: dir/a.txt
//	--------------------------------------------------
//	file content
//
//
// Decoding drops blank lines and lines equal to RecordSeparator, so a round
// trip keeps only the non-blank lines of each file.
package archive

import "strings"

const (
	// HeaderPrefix starts the first line of a document.
	HeaderPrefix = "# Repository: "
	// MarkerPrefix starts the line that opens a record.
	MarkerPrefix = "### SOURCE FILE:"
	// EmptyPlaceholder is the whole body of a document with no records.
	EmptyPlaceholder = "No valid files found to process"

	separatorWidth = 50
)

var (
	// HeaderSeparator follows the header line.
	HeaderSeparator = strings.Repeat("=", separatorWidth)
	// RecordSeparator follows each marker line.
	RecordSeparator = strings.Repeat("-", separatorWidth)
)

// Record is one file read back from a document.
type Record struct {
	Path  string   // Relative path exactly as written after the marker.
	Lines []string // Content lines that survived decoding.
}

// Content returns the record body with lines joined by "\n".
func (r Record) Content() string {
	return strings.Join(r.Lines, "\n")
}
