// File: pkg/filter/binary.go
package filter

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// sniffLen is how much of a file is inspected when sniffing.
const sniffLen = 512

// looksBinary reads the head of a file and reports whether it contains a NUL
// byte or more than 30% non-printable bytes. Empty files are text.
func looksBinary(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	buffer = buffer[:n]
	if len(buffer) == 0 {
		return false, nil
	}

	if bytes.IndexByte(buffer, 0) >= 0 {
		return true, nil
	}

	nonPrintable := 0
	for _, b := range buffer {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(buffer)) > 0.3, nil
}

// isPrintable accepts printable ASCII, common whitespace and any byte of a
// multi-byte UTF-8 sequence.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 0x80
}
