package quiz

import (
	"fmt"
	"maps"
)

// Answers maps a question index to the selected option label.
type Answers map[int]string

// Clone returns an independent copy of a.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	maps.Copy(out, a)
	return out
}

// State is the step navigator and answer recorder for one quiz run.
// Transitions return a new State and never modify the receiver.
type State struct {
	set     *QuestionSet
	current int
	answers Answers
}

// NewState starts a quiz at the first question with no answers.
func NewState(set *QuestionSet) State {
	return State{set: set, answers: Answers{}}
}

// Set returns the question set the state walks through.
func (s State) Set() *QuestionSet { return s.set }

// Current returns the index of the displayed question.
func (s State) Current() int { return s.current }

// Question returns the displayed question.
func (s State) Question() Question {
	q, _ := s.set.Question(s.current)
	return q
}

// Answer returns the recorded answer for question i.
func (s State) Answer(i int) (string, bool) {
	a, ok := s.answers[i]
	return a, ok
}

// CurrentAnswer returns the recorded answer for the displayed question.
func (s State) CurrentAnswer() (string, bool) {
	return s.Answer(s.current)
}

// Answers returns a copy of the recorded answers.
func (s State) Answers() Answers { return s.answers.Clone() }

// Answered returns how many questions have an answer.
func (s State) Answered() int { return len(s.answers) }

// Record stores label as the answer for question index, replacing any
// previous answer for that index.
func (s State) Record(index int, label string) (State, error) {
	if index < 0 || index >= s.set.Len() {
		return s, fmt.Errorf("%w: %d not in [0, %d]", ErrQuestionOutOfRange, index, s.set.Len()-1)
	}
	answers := s.answers.Clone()
	answers[index] = label
	s.answers = answers
	return s, nil
}

// Select records label for the displayed question.
func (s State) Select(label string) State {
	next, _ := s.Record(s.current, label)
	return next
}

// CanAdvance reports whether Next would move forward.
func (s State) CanAdvance() bool {
	_, answered := s.CurrentAnswer()
	return answered && !s.IsLast()
}

// Next moves to the following question. It is a no-op when the displayed
// question is unanswered or already the last one.
func (s State) Next() State {
	if !s.CanAdvance() {
		return s
	}
	s.current++
	return s
}

// Previous moves back one question, stopping at the first.
func (s State) Previous() State {
	if s.current > 0 {
		s.current--
	}
	return s
}

// IsFirst reports whether the first question is displayed.
func (s State) IsFirst() bool { return s.current == 0 }

// IsLast reports whether the last question is displayed.
func (s State) IsLast() bool { return s.current == s.set.Len()-1 }

// Complete reports whether every question has an answer.
func (s State) Complete() bool { return len(s.answers) == s.set.Len() }

// CanSubmit reports whether the submit action is available: the last
// question is displayed and answered.
func (s State) CanSubmit() bool {
	_, answered := s.CurrentAnswer()
	return s.IsLast() && answered
}

// Progress returns the fraction of the quiz reached, counting the displayed
// question as reached.
func (s State) Progress() float64 {
	return float64(s.current+1) / float64(s.set.Len())
}

// Position renders "Question i of N".
func (s State) Position() string {
	return fmt.Sprintf("Question %d of %d", s.current+1, s.set.Len())
}
