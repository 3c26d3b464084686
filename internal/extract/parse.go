package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hrishi7/lingocare-studio/internal/curriculum"
)

// ErrNoJSONObject means the final payload contained nothing parsable. The
// stream asserted completion at that point, so callers treat it as fatal.
var ErrNoJSONObject = errors.New("no JSON object found in document")

var codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ParseJSON unmarshals one JSON object of type T out of a complete text
// blob, tolerating surrounding prose and markdown code fences. If a fenced
// block is present its inner content is used; either way the substring from
// the first '{' to the last '}' is what gets decoded.
func ParseJSON[T any](text string) (T, error) {
	var zero T

	jsonStr := text
	if m := codeFence.FindStringSubmatch(jsonStr); m != nil {
		jsonStr = m[1]
	}

	start := strings.IndexByte(jsonStr, '{')
	end := strings.LastIndexByte(jsonStr, '}')
	if start < 0 || end < start {
		return zero, ErrNoJSONObject
	}
	jsonStr = jsonStr[start : end+1]

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return result, nil
}

// ParseCurriculum is the domain wrapper used for the authoritative final
// payload.
func ParseCurriculum(text string) (*curriculum.Curriculum, error) {
	cur, err := ParseJSON[curriculum.Curriculum](text)
	if err != nil {
		return nil, err
	}
	cur.Normalize()
	return &cur, nil
}
