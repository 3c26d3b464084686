package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrishi7/lingocare-studio/internal/curriculum"
)

// A realistic generation payload: nested topic/lesson objects, braces and
// escaped quotes inside string values.
const fullDoc = `{
  "title": "Spanish for Beginners",
  "description": "A1 track",
  "modules": [
    {
      "id": "m-1",
      "title": "Greetings",
      "description": "Say {hola} and \"adios\"",
      "topics": [
        {
          "id": "t-1",
          "title": "Basics",
          "description": "path C:\\temp\\",
          "lessons": [
            {"id": "l-1", "title": "Hola", "description": "first words"},
            {"id": "l-2", "title": "Adios", "description": "closing } brace"}
          ]
        }
      ]
    },
    {
      "title": "Numbers",
      "description": "1-100",
      "topics": [
        {"title": "Counting", "description": "", "lessons": []}
      ]
    },
    {
      "id": "m-3",
      "title": "Food",
      "description": "",
      "topics": []
    }
  ]
}`

func TestExtractBeforeModulesArray(t *testing.T) {
	gen := &seqGen{}

	added, st := Extract(`{"title": "Spanish", "descr`, State{}, gen)
	assert.Empty(t, added)
	assert.Zero(t, st.LastParsedIndex)
	assert.Empty(t, st.Complete)
}

func TestExtractIncompleteModuleRoundTrip(t *testing.T) {
	gen := &seqGen{}
	buf := `{"modules":[{"title":"M1","description":"d1","topics":[]}`

	added, st := Extract(buf, State{}, gen)
	assert.Empty(t, added)

	buf += `}]}`
	added, st = Extract(buf, st, gen)
	require.Len(t, added, 1)
	assert.Equal(t, "M1", added[0].Title)
	assert.Len(t, st.Complete, 1)
}

func TestExtractNestedObjectsStayInOneModule(t *testing.T) {
	gen := &seqGen{}

	added, _ := Extract(fullDoc, State{}, gen)
	require.Len(t, added, 3)
	assert.Equal(t, "Greetings", added[0].Title)
	require.Len(t, added[0].Topics, 1)
	assert.Len(t, added[0].Topics[0].Lessons, 2)
	assert.Equal(t, "Numbers", added[1].Title)
	assert.Equal(t, "Food", added[2].Title)
}

func TestExtractAssignsProvisionalIDs(t *testing.T) {
	gen := &seqGen{}

	added, _ := Extract(fullDoc, State{}, gen)
	require.Len(t, added, 3)
	assert.Equal(t, "m-1", added[0].ID)
	assert.Equal(t, "tmp-1", added[1].ID)
	assert.Equal(t, "m-3", added[2].ID)
}

func TestExtractMonotonicOverGrowingBuffer(t *testing.T) {
	// One-shot parse of the final buffer is the reference answer.
	var want struct {
		Modules []curriculum.Module `json:"modules"`
	}
	require.NoError(t, json.Unmarshal([]byte(fullDoc), &want))

	for _, step := range []int{1, 3, 7, 50, len(fullDoc)} {
		gen := &seqGen{}
		st := State{}
		var got []curriculum.Module
		lastIndex := 0

		for end := 0; end < len(fullDoc); {
			end += step
			if end > len(fullDoc) {
				end = len(fullDoc)
			}
			added, next := Extract(fullDoc[:end], st, gen)
			got = append(got, added...)

			assert.GreaterOrEqual(t, next.LastParsedIndex, lastIndex,
				"parse index regressed at step %d", step)
			lastIndex = next.LastParsedIndex
			st = next
		}

		require.Len(t, got, len(want.Modules), "step %d", step)
		for i := range got {
			assert.Equal(t, want.Modules[i].Title, got[i].Title, "step %d module %d", step, i)
			assert.Equal(t, len(want.Modules[i].Topics), len(got[i].Topics))
		}
		assert.Equal(t, got, st.Complete)
	}
}

func TestExtractDoesNotSplitOnBracesInStrings(t *testing.T) {
	gen := &seqGen{}
	buf := `{"modules":[{"title":"{{{","description":"}} \" }","topics":[]}]}`

	added, _ := Extract(buf, State{}, gen)
	require.Len(t, added, 1)
	assert.Equal(t, "{{{", added[0].Title)
}

func TestExtractEscapedBackslashBeforeQuote(t *testing.T) {
	gen := &seqGen{}
	// The string value ends with an escaped backslash; the closing quote is
	// a real string boundary, not an escaped character.
	buf := `{"modules":[{"title":"dir\\","description":"","topics":[]}]}`

	added, _ := Extract(buf, State{}, gen)
	require.Len(t, added, 1)
	assert.Equal(t, `dir\`, added[0].Title)
}
