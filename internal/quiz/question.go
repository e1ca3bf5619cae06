package quiz

import (
	"errors"
	"fmt"
)

// Category groups option labels that count toward the same personality.
type Category string

const (
	CategoryNone       Category = ""
	CategoryAnalytical Category = "analytical"
	CategoryIntuitive  Category = "intuitive"
	CategoryVisual     Category = "visual"
	CategoryPractical  Category = "practical"
)

// ParseCategory maps a category name from a question file to a Category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryNone, CategoryAnalytical, CategoryIntuitive, CategoryVisual, CategoryPractical:
		return c, nil
	}
	return CategoryNone, fmt.Errorf("unknown category %q", s)
}

// Personality is the label derived from a complete set of answers.
type Personality string

const (
	AnalyticalLearner Personality = "Analytical Learner"
	IntuitiveLearner  Personality = "Intuitive Learner"
	VisualLearner     Personality = "Visual Learner"
	PracticalLearner  Personality = "Practical Learner"
)

// Personalities lists every possible scoring outcome in precedence order.
func Personalities() []Personality {
	return []Personality{AnalyticalLearner, IntuitiveLearner, VisualLearner, PracticalLearner}
}

func (p Personality) String() string { return string(p) }

// Option is a single selectable answer.
type Option struct {
	Label    string
	Category Category
}

// Question is one step of the quiz.
type Question struct {
	Index   int
	Prompt  string
	Options []Option
}

// Labels returns the option labels in display order.
func (q Question) Labels() []string {
	labels := make([]string, len(q.Options))
	for i, o := range q.Options {
		labels[i] = o.Label
	}
	return labels
}

// HasOption reports whether label is one of the question's options.
func (q Question) HasOption(label string) bool {
	for _, o := range q.Options {
		if o.Label == label {
			return true
		}
	}
	return false
}

// QuestionSet is the immutable, ordered list of questions a quiz runs through.
// It is built once at startup and shared read-only by every quiz flow.
type QuestionSet struct {
	questions  []Question
	categories map[string]Category
}

var errEmptySet = errors.New("question set has no questions")

// NewQuestionSet validates qs and returns an immutable QuestionSet.
// Question indexes are assigned from position.
func NewQuestionSet(qs []Question) (*QuestionSet, error) {
	if len(qs) == 0 {
		return nil, errEmptySet
	}

	set := &QuestionSet{
		questions:  make([]Question, len(qs)),
		categories: make(map[string]Category),
	}

	for i, q := range qs {
		if q.Prompt == "" {
			return nil, fmt.Errorf("question %d: empty prompt", i)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("question %d: needs at least 2 options, got %d", i, len(q.Options))
		}

		seen := make(map[string]bool, len(q.Options))
		opts := make([]Option, len(q.Options))
		for j, o := range q.Options {
			if o.Label == "" {
				return nil, fmt.Errorf("question %d option %d: empty label", i, j)
			}
			if seen[o.Label] {
				return nil, fmt.Errorf("question %d: duplicate option %q", i, o.Label)
			}
			seen[o.Label] = true

			if prev, ok := set.categories[o.Label]; ok && prev != o.Category {
				return nil, fmt.Errorf("option %q: conflicting categories %q and %q", o.Label, prev, o.Category)
			}
			set.categories[o.Label] = o.Category
			opts[j] = o
		}

		set.questions[i] = Question{Index: i, Prompt: q.Prompt, Options: opts}
	}

	return set, nil
}

// Len returns the number of questions.
func (s *QuestionSet) Len() int {
	return len(s.questions)
}

// Question returns the question at index i.
func (s *QuestionSet) Question(i int) (Question, bool) {
	if i < 0 || i >= len(s.questions) {
		return Question{}, false
	}
	return copyQuestion(s.questions[i]), true
}

// Questions returns a copy of all questions in order.
func (s *QuestionSet) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = copyQuestion(q)
	}
	return out
}

// CategoryOf returns the scoring category of an option label.
// Unknown labels have no category.
func (s *QuestionSet) CategoryOf(label string) Category {
	return s.categories[label]
}

func copyQuestion(q Question) Question {
	opts := make([]Option, len(q.Options))
	copy(opts, q.Options)
	q.Options = opts
	return q
}
