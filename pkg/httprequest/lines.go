package httprequest

import (
	"bufio"
	"bytes"
	"io"
)

// maxLineBytes bounds a single line so a body without terminators cannot
// grow the buffer forever.
const maxLineBytes = 64 << 20

// lineSplitter splits lines ending at "\n", "\r" or "\r\n". Terminators are
// dropped and a last line without one is still returned.
//
// A line ending in "\r" is handed out as soon as the "\r" arrives; a "\n"
// right after it is skipped on the next call.
type lineSplitter struct {
	skipLF bool
}

func (s *lineSplitter) split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if s.skipLF && len(data) > 0 {
		s.skipLF = false
		if data[0] == '\n' {
			return 1, nil, nil
		}
	}
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\r' {
			s.skipLF = true
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// readLines reads up to limit lines from rd, or all of them when limit <= 0.
func readLines(rd io.Reader, limit int) ([]string, error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)
	sc.Split((&lineSplitter{}).split)

	lines := []string{}
	for sc.Scan() {
		lines = append(lines, sc.Text())
		if limit > 0 && len(lines) >= limit {
			break
		}
	}
	return lines, sc.Err()
}
