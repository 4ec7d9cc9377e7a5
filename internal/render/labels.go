// Package render turns a finished outline into lesson artifacts: a slide
// deck, a quiz and a set of interactive activities. Renderers only read the
// outline; every filter they apply is their own policy.
package render

// Labels are the fixed strings renderers put around outline text.
type Labels struct {
	DeckSubtitle     string
	KeyPoints        string
	ActivityTitle    string
	ActivityIntro    string
	ActivitySteps    []string
	SummaryTitle     string
	ContinuedSuffix  string
	QuizDescription  string
	QuizQuestion     string // %s is the heading text
	CorrectAnswer    string
	WrongAnswer      string // %d is the answer number
	True             string
	False            string
	MatchPrompt      string
	Definition       string // %d is the pair number
	ActivitiesDesc   string
	Classification   string
	ClassifyPrompt   string
	Category         string // %d is the category number
	Drawing          string
	DrawingPrompt    string
	Matching         string
	MatchingPrompt   string
	DefinitionOf     string // %s is the heading text
	ShortQuiz        string
	ShortQuizPrompt  string
	MainIdea         string // %s is the paragraph excerpt
	Option           string // %d is the option number
	Collaborative    string
	CollabPrompt     string
	ShareThoughts    string
	UntitledActivity string
	RightToLeft      bool
}

// ArabicLabels are the default labels for Arabic-language lessons.
func ArabicLabels() Labels {
	return Labels{
		DeckSubtitle:  "Interactive Lesson",
		KeyPoints:     "النقاط الرئيسية",
		ActivityTitle: "نشاط تفاعلي",
		ActivityIntro: "أكمل النشاط التالي:",
		ActivitySteps: []string{
			"اقرأ النص بعناية",
			"حدد المفاهيم الرئيسية",
			"أجب عن الأسئلة",
			"ناقش إجاباتك مع زملائك",
		},
		SummaryTitle:     "ملخص الدرس",
		ContinuedSuffix:  " (تابع)",
		QuizDescription:  "Interactive quiz generated from lesson content",
		QuizQuestion:     "ما هو المفهوم الصحيح لـ %s؟",
		CorrectAnswer:    "الإجابة الصحيحة",
		WrongAnswer:      "إجابة خاطئة %d",
		True:             "صحيح",
		False:            "خطأ",
		MatchPrompt:      "طابق بين العناصر التالية:",
		Definition:       "التعريف %d",
		ActivitiesDesc:   "Interactive activities generated from lesson content",
		Classification:   "تصنيف المفاهيم",
		ClassifyPrompt:   "اسحب المفاهيم إلى الفئات المناسبة",
		Category:         "الفئة %d",
		Drawing:          "رسم توضيحي",
		DrawingPrompt:    "ارسم شكلاً توضيحياً للمفهوم",
		Matching:         "مطابقة المفاهيم",
		MatchingPrompt:   "اربط كل مفهوم بتعريفه المناسب",
		DefinitionOf:     "تعريف %s",
		ShortQuiz:        "اختبار قصير",
		ShortQuizPrompt:  "أجب عن الأسئلة التالية",
		MainIdea:         "ما هي الفكرة الرئيسية في النص التالي: %s...؟",
		Option:           "الخيار %d",
		Collaborative:    "لوحة تعاونية",
		CollabPrompt:     "شارك أفكارك حول الموضوع",
		ShareThoughts:    "شارك أفكارك",
		UntitledActivity: "Untitled Activity",
		RightToLeft:      true,
	}
}

// EnglishLabels are labels for left-to-right English lessons.
func EnglishLabels() Labels {
	return Labels{
		DeckSubtitle:  "Interactive Lesson",
		KeyPoints:     "Key Points",
		ActivityTitle: "Interactive Activity",
		ActivityIntro: "Complete the following activity:",
		ActivitySteps: []string{
			"Read the text carefully",
			"Identify the main concepts",
			"Answer the questions",
			"Discuss your answers with your classmates",
		},
		SummaryTitle:     "Lesson Summary",
		ContinuedSuffix:  " (cont.)",
		QuizDescription:  "Interactive quiz generated from lesson content",
		QuizQuestion:     "What is the correct concept for %s?",
		CorrectAnswer:    "Correct answer",
		WrongAnswer:      "Wrong answer %d",
		True:             "True",
		False:            "False",
		MatchPrompt:      "Match the following items:",
		Definition:       "Definition %d",
		ActivitiesDesc:   "Interactive activities generated from lesson content",
		Classification:   "Concept Classification",
		ClassifyPrompt:   "Drag concepts to appropriate categories",
		Category:         "Category %d",
		Drawing:          "Illustrative Drawing",
		DrawingPrompt:    "Draw an illustrative diagram for the concept",
		Matching:         "Matching Concepts",
		MatchingPrompt:   "Connect each concept with its appropriate definition",
		DefinitionOf:     "Definition of %s",
		ShortQuiz:        "Short Quiz",
		ShortQuizPrompt:  "Answer the following questions",
		MainIdea:         "What is the main idea in the following text: %s...?",
		Option:           "Option %d",
		Collaborative:    "Collaborative Board",
		CollabPrompt:     "Share your thoughts about the topic",
		ShareThoughts:    "Share your thoughts",
		UntitledActivity: "Untitled Activity",
	}
}

// LabelsFor returns labels for a language code; unknown codes get Arabic.
func LabelsFor(lang string) Labels {
	if lang == "en" {
		return EnglishLabels()
	}
	return ArabicLabels()
}
