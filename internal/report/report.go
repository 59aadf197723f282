package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single input line; backup summaries are short but a
// misbehaving upstream should not kill the reporter.
const maxLineSize = 1 << 20

// ReadInput consumes all of r, strips each line and joins them with
// newlines. An empty stream (upstream produced nothing) yields "".
func ReadInput(r io.Reader) (string, error) {
	const op = "report.ReadInput"

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("%s: failed to read input: %w", op, err)
	}

	return strings.Join(lines, "\n"), nil
}
