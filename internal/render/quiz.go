package render

import (
	"fmt"
	"unicode/utf8"

	"github.com/dgallion1/lessongest/internal/outline"
)

// Answer is one answer choice.
type Answer struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Pair is one left/right matching pair.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is a single quiz item. Multiple-choice and true/false questions
// carry Answers; matching questions carry Pairs.
type Question struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	TimeMs   int      `json:"time"`
	Points   int      `json:"points"`
	Answers  []Answer `json:"answers,omitempty"`
	Pairs    []Pair   `json:"pairs,omitempty"`
}

// Quiz is a game-style quiz built from an outline.
type Quiz struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Quiz selection policy.
const (
	MinQuizHeadingLen   = 10
	MinQuizParagraphLen = 20
	MaxQuizParagraphLen = 200
	MinMatchingItems    = 2
	MaxMatchingPairs    = 4
	MaxQuizQuestions    = 10
	trueFalseExcerpt    = 100
)

// BuildQuiz derives multiple-choice questions from headings, true/false
// questions from mid-length paragraphs and matching questions from bullet
// groups, in that order, keeping at most MaxQuizQuestions.
func BuildQuiz(o outline.Outline, labels Labels) Quiz {
	if labels.QuizQuestion == "" {
		labels = ArabicLabels()
	}
	title := o.Title
	if title == "" {
		title = labels.UntitledActivity
	}

	questions := []Question{}

	for _, h := range o.Headings {
		if utf8.RuneCountInString(h.Text) < MinQuizHeadingLen {
			continue
		}
		questions = append(questions, Question{
			Type:     "quiz",
			Question: fmt.Sprintf(labels.QuizQuestion, h.Text),
			TimeMs:   20000,
			Points:   1000,
			Answers: []Answer{
				{Text: labels.CorrectAnswer, Correct: true},
				{Text: fmt.Sprintf(labels.WrongAnswer, 1)},
				{Text: fmt.Sprintf(labels.WrongAnswer, 2)},
				{Text: fmt.Sprintf(labels.WrongAnswer, 3)},
			},
		})
	}

	for _, p := range o.Paragraphs {
		n := utf8.RuneCountInString(p)
		if n < MinQuizParagraphLen || n > MaxQuizParagraphLen {
			continue
		}
		questions = append(questions, Question{
			Type:     "true_false",
			Question: truncate(p, trueFalseExcerpt) + "...",
			TimeMs:   10000,
			Points:   500,
			Answers: []Answer{
				{Text: labels.True, Correct: true},
				{Text: labels.False},
			},
		})
	}

	for _, g := range o.BulletGroups {
		if len(g) < MinMatchingItems {
			continue
		}
		q := Question{
			Type:     "matching",
			Question: labels.MatchPrompt,
			TimeMs:   30000,
			Points:   1000,
		}
		for i := 0; i < len(g) && i < MaxMatchingPairs; i++ {
			q.Pairs = append(q.Pairs, Pair{Left: g[i], Right: fmt.Sprintf(labels.Definition, i+1)})
		}
		questions = append(questions, q)
	}

	if len(questions) > MaxQuizQuestions {
		questions = questions[:MaxQuizQuestions]
	}
	return Quiz{
		Title:       title,
		Description: labels.QuizDescription,
		Questions:   questions,
	}
}
