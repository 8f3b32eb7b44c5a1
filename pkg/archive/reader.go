// File: pkg/archive/reader.go
package archive

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Phase tells whether a record is currently open.
type Phase int

const (
	// Outside means no marker has been seen yet.
	Outside Phase = iota
	// InFile means a record is open and collecting lines.
	InFile
)

func (p Phase) String() string {
	switch p {
	case Outside:
		return "outside"
	case InFile:
		return "in-file"
	}
	return "unknown"
}

// State is the decoder state between two lines. The zero value is Outside.
// A State is threaded: once stepped, only the returned State may be stepped
// again, since both can share the backing array of Lines.
type State struct {
	Phase Phase
	Path  string
	Lines []string
}

// Step consumes one line (without its line terminator) and returns the next
// state. When the line opens a new record the previously open one is
// returned as done; it no longer shares storage with the returned state.
func (s State) Step(line string) (next State, done *Record) {
	if rest, ok := strings.CutPrefix(line, MarkerPrefix); ok {
		done = s.Finish()
		return State{Phase: InFile, Path: strings.TrimSpace(rest)}, done
	}

	if s.Phase != InFile {
		return s, nil
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed == RecordSeparator {
		return s, nil
	}
	s.Lines = append(s.Lines, line)
	return s, nil
}

// Finish returns the open record, if any.
func (s State) Finish() *Record {
	if s.Phase != InFile {
		return nil
	}
	return &Record{Path: s.Path, Lines: s.Lines}
}

// Reader streams records out of a document.
type Reader struct {
	r     *bufio.Reader
	state State
	eof   bool
	err   error
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next complete record. It returns io.EOF after the last
// record.
func (rd *Reader) Next() (Record, error) {
	if rd.err != nil {
		return Record{}, rd.err
	}

	for !rd.eof {
		line, err := rd.r.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				rd.err = err
				return Record{}, err
			}
			rd.eof = true
			if line == "" {
				break
			}
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		var done *Record
		rd.state, done = rd.state.Step(line)
		if done != nil {
			return *done, nil
		}
	}

	if last := rd.state.Finish(); last != nil {
		rd.state = State{}
		return *last, nil
	}
	rd.err = io.EOF
	return Record{}, io.EOF
}

// ReadAll decodes every record of a document.
func ReadAll(r io.Reader) ([]Record, error) {
	rd := NewReader(r)
	var records []Record
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
