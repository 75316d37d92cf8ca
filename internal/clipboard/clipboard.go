// Package clipboard copies rendered flashcards to the system clipboard.
package clipboard

import (
	"errors"
	"strings"

	sysclip "github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is installed.
var ErrUnavailable = errors.New("clipboard not available")

// Writer receives clipboard text.
type Writer interface {
	WriteAll(text string) error
}

// System is the host clipboard. On Linux it needs xclip, xsel or wl-copy.
type System struct{}

// WriteAll implements Writer.
func (System) WriteAll(text string) error {
	if !Available() {
		return ErrUnavailable
	}
	return sysclip.WriteAll(text)
}

// Available checks if clipboard functionality is available.
func Available() bool {
	return !sysclip.Unsupported
}

// Copy writes lines to w as one block. Lines are expected to carry their own
// newline terminators; a trailing newline is dropped so pasting does not add
// an empty line.
func Copy(w Writer, lines []string) error {
	text := strings.TrimSuffix(strings.Join(lines, ""), "\n")
	if text == "" {
		return nil
	}
	return w.WriteAll(text)
}
