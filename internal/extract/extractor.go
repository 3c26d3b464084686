package extract

import (
	"encoding/json"
	"regexp"

	"github.com/hrishi7/lingocare-studio/internal/curriculum"
	"github.com/hrishi7/lingocare-studio/internal/identity"
)

// modulesMarker matches the start of the modules array in the streamed
// document. Its first occurrence is stable because the buffer only ever
// grows by appending.
var modulesMarker = regexp.MustCompile(`"modules"\s*:\s*\[`)

// State is the parse position carried between Extract calls over the same
// growing buffer. LastParsedIndex is relative to the text following the
// modules-array marker and never decreases.
type State struct {
	Complete        []curriculum.Module
	LastParsedIndex int
}

// Extract scans the accumulated buffer for module objects completed since
// the previous call. It returns only the newly completed modules plus the
// advanced state.
//
// A candidate substring that fails to unmarshal is not an error: the stream
// is monotonically-appending valid JSON, so a bad candidate only means "not
// complete yet". Extraction stops there and the candidate is retried once
// more bytes arrive.
func Extract(buf string, st State, ids identity.Generator) ([]curriculum.Module, State) {
	loc := modulesMarker.FindStringIndex(buf)
	if loc == nil {
		// The modules array has not started yet.
		return nil, st
	}
	body := buf[loc[1]:]

	var added []curriculum.Module
	parsed := st.LastParsedIndex

	depth := 0
	inString := false
	escaped := false
	start := -1

scan:
	for i := st.LastParsedIndex; i < len(body); i++ {
		c := body[i]

		// A backslash escapes only the immediately following character, so
		// an escaped backslash does not carry over to the next one.
		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				if depth == 0 {
					start = i
				}
				depth++
			}
		case '}':
			if inString {
				continue
			}
			depth--
			if depth != 0 || start < 0 {
				continue
			}

			// Depth returned to zero: the candidate covers one whole
			// top-level module, including any nested topic/lesson objects
			// consumed at depth > 1.
			var m curriculum.Module
			if err := json.Unmarshal([]byte(body[start:i+1]), &m); err != nil {
				break scan
			}
			if m.ID == "" {
				m.ID = ids.NewID()
			}
			m.Normalize()
			added = append(added, m)
			parsed = i + 1
			start = -1
		}
	}

	next := State{
		Complete:        append(st.Complete[:len(st.Complete):len(st.Complete)], added...),
		LastParsedIndex: parsed,
	}
	return added, next
}
