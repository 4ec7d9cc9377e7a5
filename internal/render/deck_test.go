package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/lessongest/internal/outline"
)

func sampleOutline() outline.Outline {
	return outline.Outline{
		Title: "Water Cycle",
		Headings: []outline.Heading{
			{Text: "Evaporation", Level: 1},
			{Text: "Condensation", Level: 1},
		},
		Paragraphs: []string{
			"Evaporation turns water into vapour.",
			"Evaporation comes before Condensation.",
			"Condensation forms clouds.",
			"Unrelated paragraph about rain.",
		},
		BulletGroups: []outline.BulletGroup{
			{"- sun", "- heat"},
			{"- clouds"},
		},
	}
}

func TestBuildDeck_SlideOrder(t *testing.T) {
	deck := BuildDeck(sampleOutline(), DeckOptions{Labels: EnglishLabels()})

	var kinds []SlideKind
	for _, s := range deck.Slides {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []SlideKind{
		SlideTitle, SlideHeading, SlideHeading, SlideBullets, SlideBullets, SlideActivity, SlideSummary,
	}, kinds)
	assert.Equal(t, "Water Cycle", deck.Title)
	assert.False(t, deck.RightToLeft)
	assert.Equal(t, "Interactive Lesson", deck.Slides[0].Subtitle)
}

func TestBuildDeck_RelatedParagraphs(t *testing.T) {
	deck := BuildDeck(sampleOutline(), DeckOptions{Labels: EnglishLabels()})

	// Paragraphs naming the next heading are skipped.
	assert.Equal(t, []string{"Evaporation turns water into vapour."}, deck.Slides[1].Items)
	// The last heading takes every paragraph naming it, up to two.
	assert.Equal(t, []string{"Evaporation comes before Condensation.", "Condensation forms clouds."}, deck.Slides[2].Items)
}

func TestBuildDeck_SummaryPoints(t *testing.T) {
	deck := BuildDeck(sampleOutline(), DeckOptions{Labels: EnglishLabels()})
	summary := deck.Slides[len(deck.Slides)-1]
	assert.Equal(t, "Lesson Summary", summary.Title)
	assert.Equal(t, []string{"Evaporation", "Condensation", "- sun", "- clouds"}, summary.Items)

	o := outline.Empty()
	for _, h := range []string{"A1", "B2", "C3", "D4", "E5", "F6"} {
		o.Headings = append(o.Headings, outline.Heading{Text: h, Level: 1})
	}
	deck = BuildDeck(o, DeckOptions{})
	assert.Len(t, deck.Slides[len(deck.Slides)-1].Items, summaryPointLimit)
}

func TestBuildDeck_FallbackTitleAndDefaultLabels(t *testing.T) {
	deck := BuildDeck(outline.Empty(), DeckOptions{FallbackTitle: "notes"})

	assert.Equal(t, "notes", deck.Title)
	assert.True(t, deck.RightToLeft)
	require.Len(t, deck.Slides, 3)
	assert.Equal(t, "نشاط تفاعلي", deck.Slides[1].Title)
	assert.Len(t, deck.Slides[1].Steps, 4)
	assert.Empty(t, deck.Slides[2].Items)
}

func TestBuildDeck_LongBulletGroupContinues(t *testing.T) {
	o := outline.Empty()
	var group outline.BulletGroup
	for i := 0; i < 12; i++ {
		group = append(group, "- "+strings.Repeat("word ", 10))
	}
	o.BulletGroups = []outline.BulletGroup{group}

	deck := BuildDeck(o, DeckOptions{Labels: EnglishLabels(), MaxSlideTokens: 40})

	var bullets []Slide
	for _, s := range deck.Slides {
		if s.Kind == SlideBullets {
			bullets = append(bullets, s)
		}
	}
	require.Greater(t, len(bullets), 1)
	assert.Equal(t, "Key Points", bullets[0].Title)
	assert.Equal(t, "Key Points (cont.)", bullets[1].Title)

	total := 0
	for _, s := range bullets {
		total += len(s.Items)
	}
	assert.Equal(t, len(group), total)
}

func TestPaginate_SplitsOversizeItem(t *testing.T) {
	long := strings.Repeat("One sentence here. ", 30)
	pages := paginate([]string{"short", long}, 20)

	require.Greater(t, len(pages), 2)
	assert.Equal(t, []string{"short"}, pages[0])

	var parts []string
	for _, p := range pages[1:] {
		require.Len(t, p, 1)
		parts = append(parts, p[0])
	}
	assert.Equal(t, strings.TrimSpace(long), strings.Join(parts, " "))
}

func TestSplitSentences_ArabicQuestionMark(t *testing.T) {
	got := splitSentences("ما هذا؟ هذا درس. نهاية")
	assert.Equal(t, []string{"ما هذا؟", "هذا درس.", "نهاية"}, got)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("word"))
	assert.Equal(t, 13, EstimateTokens(strings.Repeat("w ", 10)))
}

func TestWriteDeckPDF(t *testing.T) {
	deck := BuildDeck(sampleOutline(), DeckOptions{Labels: EnglishLabels()})

	for _, name := range []string{"default", "colorful", "minimal", "unknown"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteDeckPDF(&buf, deck, PDFOptions{Scheme: Scheme(name)}))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
		})
	}
}

func TestWriteDeckPDF_MissingFont(t *testing.T) {
	deck := BuildDeck(sampleOutline(), DeckOptions{})
	var buf bytes.Buffer
	err := WriteDeckPDF(&buf, deck, PDFOptions{Scheme: Scheme("default"), FontPath: "/nonexistent/font.ttf"})
	assert.Error(t, err)
}

func TestScheme(t *testing.T) {
	assert.Equal(t, RGB{192, 0, 0}, Scheme("colorful").Title)
	assert.Equal(t, Scheme("default"), Scheme("nope"))
}
