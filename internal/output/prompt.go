package output

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Prompt writes a prompt to stdout without a trailing newline.
func Prompt(msg string) {
	os.Stdout.WriteString(msg)
}

// Input reads interactive replies from a single buffered source. A command
// that prompts more than once must reuse one Input, since the scanner buffers
// ahead of what was consumed.
type Input struct {
	scanner *bufio.Scanner
}

// NewInput creates an Input over r.
func NewInput(r io.Reader) *Input {
	return &Input{scanner: bufio.NewScanner(r)}
}

// ReadLine reads a single trimmed line. Returns an empty string on EOF.
func (in *Input) ReadLine() string {
	if in.scanner.Scan() {
		return strings.TrimSpace(in.scanner.Text())
	}
	return ""
}

// Ask prompts for a value and reads the reply. An empty reply returns the
// default value.
func (in *Input) Ask(prompt, defaultValue string) string {
	Prompt(prompt)
	reply := in.ReadLine()
	if reply == "" {
		return defaultValue
	}
	return reply
}
