package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurriculumPlain(t *testing.T) {
	cur, err := ParseCurriculum(`{"id":"c1","title":"Spanish","description":"","modules":[]}`)
	require.NoError(t, err)
	assert.Equal(t, "Spanish", cur.Title)
	assert.NotNil(t, cur.Modules)
}

func TestParseCurriculumWithProse(t *testing.T) {
	text := `Here is the curriculum you asked for:

{"id":"c1","title":"Spanish","modules":[{"id":"m1","title":"Greetings","topics":[]}]}

Let me know if you need changes.`

	cur, err := ParseCurriculum(text)
	require.NoError(t, err)
	require.Len(t, cur.Modules, 1)
	assert.Equal(t, "Greetings", cur.Modules[0].Title)
}

func TestParseCurriculumFencedBlock(t *testing.T) {
	text := "Sure!\n```json\n{\"id\":\"c1\",\"title\":\"Spanish\",\"modules\":[]}\n```\nDone."

	cur, err := ParseCurriculum(text)
	require.NoError(t, err)
	assert.Equal(t, "Spanish", cur.Title)
}

func TestParseCurriculumUntaggedFence(t *testing.T) {
	text := "```\n{\"title\":\"Spanish\",\"modules\":[]}\n```"

	cur, err := ParseCurriculum(text)
	require.NoError(t, err)
	assert.Equal(t, "Spanish", cur.Title)
}

func TestParseCurriculumNoObject(t *testing.T) {
	_, err := ParseCurriculum("the model returned nothing useful")
	assert.ErrorIs(t, err, ErrNoJSONObject)

	_, err = ParseCurriculum("")
	assert.ErrorIs(t, err, ErrNoJSONObject)
}

func TestParseCurriculumInvalidJSON(t *testing.T) {
	_, err := ParseCurriculum(`{"title": "Spanish", "modules": [}`)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoJSONObject)
}
