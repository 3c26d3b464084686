package stream

import (
	"bytes"
	"strings"
)

// block is one framed protocol message: an event name and its raw data
// payload.
type block struct {
	event string
	data  string
}

// blockScanner frames an SSE byte stream into blocks. Messages may be split
// across physical reads at any byte, including mid-line; the scanner buffers
// the trailing partial line and emits a block only once its blank-line
// terminator has been observed. Comment lines (leading ':') are keep-alive
// noise and are dropped.
type blockScanner struct {
	partial []byte

	event   string
	data    strings.Builder
	hasData bool
}

// feed consumes the next raw read and returns every block it completed.
func (s *blockScanner) feed(p []byte) []block {
	buf := append(s.partial, p...)

	var out []block
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSuffix(string(buf[:i]), "\r")
		buf = buf[i+1:]

		if b, ok := s.consumeLine(line); ok {
			out = append(out, b)
		}
	}
	s.partial = buf
	return out
}

func (s *blockScanner) consumeLine(line string) (block, bool) {
	if line == "" {
		// Blank line terminates the current block, if any.
		if s.event == "" && !s.hasData {
			return block{}, false
		}
		b := block{event: s.event, data: s.data.String()}
		s.event = ""
		s.data.Reset()
		s.hasData = false
		return b, b.event != ""
	}

	switch {
	case strings.HasPrefix(line, ":"):
		// keep-alive comment
	case strings.HasPrefix(line, "event:"):
		s.event = strings.TrimSpace(line[len("event:"):])
	case strings.HasPrefix(line, "data:"):
		if s.hasData {
			s.data.WriteByte('\n')
		}
		s.data.WriteString(strings.TrimSpace(line[len("data:"):]))
		s.hasData = true
	}
	return block{}, false
}
