package extract

import (
	"bytes"
	"strings"
)

// countLines counts lines the way splitlines would: a trailing newline does
// not open an extra empty line.
func countLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	n := bytes.Count(source, []byte("\n"))
	if source[len(source)-1] != '\n' {
		n++
	}
	return n
}

// countCommentLines counts comment lines using a line prefix and block
// delimiter pairs. Blank lines are skipped. A line opening a block counts
// even when the block closes on the same line; every line inside an open
// block counts until one contains the closing delimiter. Block delimiters
// are only recognized at the start of a stripped line, so string literals
// opened mid-line do not register. Triple-quoted strings that do start a
// line count as comments whether or not they are documentation.
func countCommentLines(source []byte, linePrefix string, blocks [][2]string) int {
	count := 0
	inBlock := false
	var closeMark string

	for _, line := range strings.Split(string(source), "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		if inBlock {
			count++
			if strings.Contains(stripped, closeMark) {
				inBlock = false
				closeMark = ""
			}
			continue
		}

		opened := false
		for _, b := range blocks {
			if strings.HasPrefix(stripped, b[0]) {
				count++
				if !strings.Contains(stripped[len(b[0]):], b[1]) {
					inBlock = true
					closeMark = b[1]
				}
				opened = true
				break
			}
		}
		if opened {
			continue
		}

		if linePrefix != "" && strings.HasPrefix(stripped, linePrefix) {
			count++
		}
	}

	return count
}
