// Package landing is the first screen: title, tagline and the entry
// actions.
package landing

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/persona/internal/auth"
	"github.com/abhisek/persona/internal/quiz"
	"github.com/abhisek/persona/internal/router"
	"github.com/abhisek/persona/internal/screen"
	"github.com/abhisek/persona/internal/screens/authform"
	"github.com/abhisek/persona/internal/screens/quizflow"
	"github.com/abhisek/persona/internal/screens/results"
	"github.com/abhisek/persona/internal/ui/components"
	"github.com/abhisek/persona/internal/ui/theme"
)

const (
	heading = "Personality Quiz"
	tagline = "Discover more about yourself through our personality assessment"
)

// Session is the part of the auth service the landing needs.
type Session interface {
	CurrentUser(ctx context.Context) (*auth.User, error)
	SignOut()
}

// Deps are the collaborators handed down to the screens the landing opens.
type Deps struct {
	Session       Session
	Auth          authform.Authenticator
	Questions     *quiz.QuestionSet
	Submitter     quizflow.Submitter
	SubmitTimeout time.Duration
	Results       results.Lister
	Explainer     results.Explainer // nil hides insights
	Logger        *zap.Logger
}

type sessionMsg struct {
	user *auth.User
}

type signedOutMsg struct{}

// LandingScreen is the root of the screen stack.
type LandingScreen struct {
	deps Deps
	user *auth.User
	menu components.Menu
}

var _ screen.Screen = (*LandingScreen)(nil)
var _ screen.Resumer = (*LandingScreen)(nil)

func New(deps Deps) *LandingScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	s := &LandingScreen{deps: deps}
	s.buildMenu()
	return s
}

func (s *LandingScreen) Init() tea.Cmd { return s.loadSession() }

// Resume reloads the session after sign in, sign up or a finished quiz.
func (s *LandingScreen) Resume() tea.Cmd { return s.loadSession() }

func (s *LandingScreen) loadSession() tea.Cmd {
	sess, logger := s.deps.Session, s.deps.Logger
	return func() tea.Msg {
		u, err := sess.CurrentUser(context.Background())
		if err != nil {
			logger.Warn("load session", zap.Error(err))
		}
		return sessionMsg{user: u}
	}
}

func (s *LandingScreen) Title() string { return "Welcome" }

// User returns the signed-in user as last loaded.
func (s *LandingScreen) User() *auth.User { return s.user }

func (s *LandingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		s.user = msg.user
		s.buildMenu()
		return s, nil

	case signedOutMsg:
		s.user = nil
		s.buildMenu()
		return s, components.Success("Signed out")
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LandingScreen) buildMenu() {
	var items []components.MenuItem
	if s.user == nil {
		items = []components.MenuItem{
			{Label: "Sign Up", Action: s.openAuth(authform.SignUp)},
			{Label: "Sign In", Action: s.openAuth(authform.SignIn)},
		}
	} else {
		items = []components.MenuItem{
			{Label: "Take Quiz", Action: func() tea.Cmd { return router.Push(s.newQuiz()) }},
			{Label: "My Results", Action: func() tea.Cmd {
				return router.Push(results.New(s.deps.Session, s.deps.Results, s.deps.Explainer))
			}},
			{Label: "Sign Out", Action: s.signOut},
		}
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})
	s.menu = components.NewMenu(items)
}

func (s *LandingScreen) openAuth(mode authform.Mode) func() tea.Cmd {
	return func() tea.Cmd {
		return router.Push(authform.New(mode, s.deps.Auth, s.newQuiz))
	}
}

func (s *LandingScreen) newQuiz() screen.Screen {
	return quizflow.New(quizflow.Config{
		Questions:     s.deps.Questions,
		Identity:      s.deps.Session,
		Submitter:     s.deps.Submitter,
		SubmitTimeout: s.deps.SubmitTimeout,
	})
}

// signOut ends the session. The menu is rebuilt once signedOutMsg arrives;
// the menu running this action must not be replaced from inside it.
func (s *LandingScreen) signOut() tea.Cmd {
	s.deps.Session.SignOut()
	return func() tea.Msg { return signedOutMsg{} }
}

func (s *LandingScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render(tagline))
	b.WriteString("\n\n")
	if s.user != nil {
		b.WriteString(theme.Hint.Render("Signed in as " + s.user.Email))
		b.WriteString("\n\n")
	}
	b.WriteString(s.menu.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Card.Render(b.String()))
}
