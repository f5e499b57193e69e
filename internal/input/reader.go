// Package input reads operator answers from stdin for destructive
// commands such as removing a host entry.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reader is an interface for reading user input
type Reader interface {
	ReadString(delim byte) (string, error)
}

// StdinReader wraps bufio.Reader for os.Stdin
type StdinReader struct {
	reader *bufio.Reader
}

// NewStdinReader creates a new StdinReader
func NewStdinReader() *StdinReader {
	return &StdinReader{
		reader: bufio.NewReader(os.Stdin),
	}
}

// ReadString reads until delimiter
func (r *StdinReader) ReadString(delim byte) (string, error) {
	return r.reader.ReadString(delim)
}

// StringReader is a simple reader for testing.
// Each input string should already include the delimiter that will be used
// in ReadString calls (e.g., "yes\n" for newline delimiter).
type StringReader struct {
	inputs []string
	index  int
}

// NewStringReader creates a reader from strings.
func NewStringReader(inputs ...string) *StringReader {
	return &StringReader{inputs: inputs}
}

// ReadString returns the next pre-configured string, or io.EOF once all
// inputs have been consumed. delim is ignored.
func (r *StringReader) ReadString(delim byte) (string, error) {
	if r.index >= len(r.inputs) {
		return "", io.EOF
	}
	result := r.inputs[r.index]
	r.index++
	return result, nil
}

// Confirm writes prompt followed by " [y/N]: " to w and reads one line
// from r. Only "y" and "yes" (any case) confirm. End of input without an
// answer is a refusal, not an error.
func Confirm(r Reader, w io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(w, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	answer, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
