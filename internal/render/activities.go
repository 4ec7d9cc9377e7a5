package render

import (
	"fmt"

	"github.com/dgallion1/lessongest/internal/outline"
)

// ClassifiedItem is a draggable item on a classification board.
type ClassifiedItem struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// ChoiceQuestion is a short-quiz question with an index into Options.
type ChoiceQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// Activity is one interactive activity. Only the fields relevant to its Type
// are set.
type Activity struct {
	Type            string           `json:"type"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Categories      []string         `json:"categories,omitempty"`
	Items           []ClassifiedItem `json:"items,omitempty"`
	BackgroundImage *string          `json:"background_image,omitempty"`
	Pairs           []Pair           `json:"pairs,omitempty"`
	Questions       []ChoiceQuestion `json:"questions,omitempty"`
	Prompt          string           `json:"prompt,omitempty"`
}

// ActivitySet is the full set of activities for a lesson.
type ActivitySet struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Activities  []Activity `json:"activities"`
}

const (
	classificationCategories = 3
	maxMatchingActivityPairs = 5
	maxShortQuizQuestions    = 3
	mainIdeaExcerpt          = 50
	shortQuizOptions         = 4
)

// BuildActivities derives a classification board, a drawing canvas, a
// matching exercise, a short quiz and a collaborative board from an outline.
func BuildActivities(o outline.Outline, labels Labels) ActivitySet {
	if labels.Classification == "" {
		labels = ArabicLabels()
	}
	title := o.Title
	if title == "" {
		title = labels.UntitledActivity
	}

	categories := make([]string, classificationCategories)
	for i := range categories {
		categories[i] = fmt.Sprintf(labels.Category, i+1)
	}
	board := Activity{
		Type:        "classification_board",
		Title:       labels.Classification,
		Description: labels.ClassifyPrompt,
		Categories:  categories,
		Items:       []ClassifiedItem{},
	}
	for _, g := range o.BulletGroups {
		for _, item := range g {
			board.Items = append(board.Items, ClassifiedItem{Text: item, Category: categories[0]})
		}
	}

	drawing := Activity{
		Type:        "drawing",
		Title:       labels.Drawing,
		Description: labels.DrawingPrompt,
	}

	matching := Activity{
		Type:        "matching_pairs",
		Title:       labels.Matching,
		Description: labels.MatchingPrompt,
		Pairs:       []Pair{},
	}
	for i, h := range o.Headings {
		if i == maxMatchingActivityPairs {
			break
		}
		matching.Pairs = append(matching.Pairs, Pair{Left: h.Text, Right: fmt.Sprintf(labels.DefinitionOf, h.Text)})
	}

	quiz := Activity{
		Type:        "quiz",
		Title:       labels.ShortQuiz,
		Description: labels.ShortQuizPrompt,
		Questions:   []ChoiceQuestion{},
	}
	for i, p := range o.Paragraphs {
		if i == maxShortQuizQuestions {
			break
		}
		options := make([]string, shortQuizOptions)
		for j := range options {
			options[j] = fmt.Sprintf(labels.Option, j+1)
		}
		quiz.Questions = append(quiz.Questions, ChoiceQuestion{
			Question: fmt.Sprintf(labels.MainIdea, truncate(p, mainIdeaExcerpt)),
			Options:  options,
		})
	}

	prompt := o.Title
	if prompt == "" {
		prompt = labels.ShareThoughts
	}
	collab := Activity{
		Type:        "collaborative_board",
		Title:       labels.Collaborative,
		Description: labels.CollabPrompt,
		Prompt:      prompt,
	}

	return ActivitySet{
		Title:       title,
		Description: labels.ActivitiesDesc,
		Activities:  []Activity{board, drawing, matching, quiz, collab},
	}
}
