// Package quizflow is the question-by-question quiz screen.
package quizflow

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/persona/internal/auth"
	"github.com/abhisek/persona/internal/quiz"
	"github.com/abhisek/persona/internal/router"
	"github.com/abhisek/persona/internal/screen"
	"github.com/abhisek/persona/internal/ui/components"
	"github.com/abhisek/persona/internal/ui/layout"
)

// Identity reports who is signed in.
type Identity interface {
	CurrentUser(ctx context.Context) (*auth.User, error)
}

// Submitter scores and stores a finished quiz.
type Submitter interface {
	Submit(ctx context.Context, userID string, st quiz.State) (quiz.Personality, error)
}

// Config wires the screen to its collaborators.
type Config struct {
	Questions     *quiz.QuestionSet
	Identity      Identity
	Submitter     Submitter
	SubmitTimeout time.Duration // 0 means no timeout
}

// Replies carry the screen that asked so a later quiz screen ignores them.
type userLoadedMsg struct {
	owner *QuizScreen
	user  *auth.User
	err   error
}

type submittedMsg struct {
	owner  *QuizScreen
	result quiz.Personality
	err    error
}

// QuizScreen walks the learner through the question set. Answers live in
// an immutable quiz.State that is replaced on every transition.
type QuizScreen struct {
	cfg        Config
	state      quiz.State
	choice     components.Choice
	user       *auth.User
	submitting bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Busy = (*QuizScreen)(nil)

// New starts a quiz at the first question with no answers.
func New(cfg Config) *QuizScreen {
	s := &QuizScreen{cfg: cfg, state: quiz.NewState(cfg.Questions)}
	s.syncChoice()
	return s
}

// Init looks up the signed-in user in the background.
func (s *QuizScreen) Init() tea.Cmd {
	identity := s.cfg.Identity
	return func() tea.Msg {
		u, err := identity.CurrentUser(context.Background())
		return userLoadedMsg{owner: s, user: u, err: err}
	}
}

func (s *QuizScreen) Title() string { return "Personality Quiz" }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space", Description: "Choose"},
		{Key: "←", Description: "Previous"},
	}
	if s.state.IsLast() {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Submit"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "→", Description: "Next"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Leave"})
}

// State returns the current quiz state.
func (s *QuizScreen) State() quiz.State { return s.state }

// Busy reports whether a submission is in flight. The app keeps the
// screen on the stack until the outcome arrives.
func (s *QuizScreen) Busy() bool { return s.submitting }

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case userLoadedMsg:
		if msg.owner != s {
			return s, nil
		}
		// A failed lookup leaves user nil; Submit then reports it.
		s.user = msg.user
		return s, nil

	case submittedMsg:
		if msg.owner != s {
			return s, nil
		}
		s.submitting = false
		if msg.err != nil {
			return s, components.Failure(quiz.UserMessage(msg.err))
		}
		return s, tea.Batch(components.Success(quiz.SuccessMessage(msg.result)), router.PopToRoot)

	case tea.KeyPressMsg:
		if s.submitting {
			return s, nil
		}
		switch msg.String() {
		case "left", "h", "p":
			s.state = s.state.Previous()
			s.syncChoice()
			return s, nil
		case "right", "l", "n":
			if !s.state.IsLast() {
				s.state = s.state.Next()
				s.syncChoice()
			}
			return s, nil
		case "s", "ctrl+s":
			if s.state.IsLast() && s.state.CanSubmit() {
				return s, s.submit()
			}
			return s, nil
		}

		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Chosen != "" {
			if cur, _ := s.state.CurrentAnswer(); cur != s.choice.Chosen {
				s.state = s.state.Select(s.choice.Chosen)
			}
		}
		return s, cmd
	}
	return s, nil
}

// submit marks the screen busy and stores the result in the background.
func (s *QuizScreen) submit() tea.Cmd {
	s.submitting = true

	userID := ""
	if s.user != nil {
		userID = s.user.ID
	}
	st := s.state
	submitter := s.cfg.Submitter
	timeout := s.cfg.SubmitTimeout

	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		result, err := submitter.Submit(ctx, userID, st)
		return submittedMsg{owner: s, result: result, err: err}
	}
}

// syncChoice rebuilds the radio group for the current question.
func (s *QuizScreen) syncChoice() {
	chosen, _ := s.state.CurrentAnswer()
	s.choice = components.NewChoice(s.state.Question().Labels(), chosen)
}
