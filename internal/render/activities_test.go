package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/lessongest/internal/outline"
)

func TestBuildActivities(t *testing.T) {
	o := outline.Outline{
		Title: "Plants",
		Headings: []outline.Heading{
			{Text: "H1", Level: 1}, {Text: "H2", Level: 1}, {Text: "H3", Level: 1},
			{Text: "H4", Level: 1}, {Text: "H5", Level: 1}, {Text: "H6", Level: 1},
		},
		Paragraphs:   []string{"p1", "p2", "p3", "p4"},
		BulletGroups: []outline.BulletGroup{{"- a", "- b"}, {"- c"}},
	}

	set := BuildActivities(o, EnglishLabels())
	require.Len(t, set.Activities, 5)

	var types []string
	for _, a := range set.Activities {
		types = append(types, a.Type)
	}
	assert.Equal(t, []string{"classification_board", "drawing", "matching_pairs", "quiz", "collaborative_board"}, types)

	board := set.Activities[0]
	assert.Equal(t, []string{"Category 1", "Category 2", "Category 3"}, board.Categories)
	require.Len(t, board.Items, 3)
	for _, it := range board.Items {
		assert.Equal(t, "Category 1", it.Category)
	}

	matching := set.Activities[2]
	require.Len(t, matching.Pairs, 5)
	assert.Equal(t, Pair{Left: "H1", Right: "Definition of H1"}, matching.Pairs[0])

	quiz := set.Activities[3]
	require.Len(t, quiz.Questions, 3)
	assert.Equal(t, "What is the main idea in the following text: p1...?", quiz.Questions[0].Question)
	assert.Len(t, quiz.Questions[0].Options, 4)
	assert.Zero(t, quiz.Questions[0].CorrectAnswer)

	assert.Equal(t, "Plants", set.Activities[4].Prompt)
}

func TestBuildActivities_EmptyOutline(t *testing.T) {
	set := BuildActivities(outline.Empty(), Labels{})

	assert.Equal(t, "Untitled Activity", set.Title)
	assert.Equal(t, "شارك أفكارك", set.Activities[4].Prompt)
	assert.Empty(t, set.Activities[0].Items)
	assert.Empty(t, set.Activities[2].Pairs)
	assert.Empty(t, set.Activities[3].Questions)
}

func TestBuildActivities_DrawingHasNullBackground(t *testing.T) {
	set := BuildActivities(outline.Empty(), EnglishLabels())
	data, err := json.Marshal(set.Activities[1])
	require.NoError(t, err)
	assert.NotContains(t, string(data), "background_image")
}
