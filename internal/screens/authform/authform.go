// Package authform is the email and password form used for both sign up
// and sign in.
package authform

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/persona/internal/auth"
	"github.com/abhisek/persona/internal/router"
	"github.com/abhisek/persona/internal/screen"
	"github.com/abhisek/persona/internal/ui/components"
	"github.com/abhisek/persona/internal/ui/layout"
	"github.com/abhisek/persona/internal/ui/theme"
)

// Mode selects which auth call the form makes.
type Mode int

const (
	SignUp Mode = iota
	SignIn
)

func (m Mode) String() string {
	if m == SignUp {
		return "Sign Up"
	}
	return "Sign In"
}

// Authenticator is the auth collaborator.
type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (*auth.User, error)
	SignIn(ctx context.Context, email, password string) (*auth.User, error)
}

type authDoneMsg struct {
	user *auth.User
	err  error
}

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

// FormScreen collects credentials. On success it replaces itself with the
// screen built by next.
type FormScreen struct {
	mode    Mode
	auth    Authenticator
	next    func() screen.Screen
	fields  [fieldCount]components.TextInput
	focus   int
	pending bool
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

func New(mode Mode, authn Authenticator, next func() screen.Screen) *FormScreen {
	s := &FormScreen{mode: mode, auth: authn, next: next}
	s.fields[fieldEmail] = components.NewTextInput("Email", "you@example.com", false, 254)
	s.fields[fieldPassword] = components.NewTextInput("Password", "at least 8 characters", true, 72)
	return s
}

func (s *FormScreen) Init() tea.Cmd {
	return s.fields[s.focus].Focus()
}

func (s *FormScreen) Title() string { return s.mode.String() }

func (s *FormScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: s.mode.String()},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		s.pending = false
		if msg.err != nil {
			s.fields[fieldPassword].Reset()
			return s, components.Failure(auth.UserMessage(msg.err))
		}
		greeting := "Welcome back, " + msg.user.Email
		if s.mode == SignUp {
			greeting = "Account created for " + msg.user.Email
		}
		return s, tea.Batch(components.Success(greeting), router.Replace(s.next()))

	case tea.KeyPressMsg:
		if s.pending {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.moveFocus(1)
		case "shift+tab", "up":
			return s, s.moveFocus(-1)
		case "enter":
			if s.focus == fieldEmail {
				return s, s.moveFocus(1)
			}
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *FormScreen) moveFocus(delta int) tea.Cmd {
	s.fields[s.focus].Blur()
	s.focus = (s.focus + delta + fieldCount) % fieldCount
	return s.fields[s.focus].Focus()
}

func (s *FormScreen) submit() tea.Cmd {
	s.pending = true
	email := s.fields[fieldEmail].Value()
	password := s.fields[fieldPassword].Model.Value()
	mode, authn := s.mode, s.auth

	return func() tea.Msg {
		ctx := context.Background()
		var u *auth.User
		var err error
		if mode == SignUp {
			u, err = authn.SignUp(ctx, email, password)
		} else {
			u, err = authn.SignIn(ctx, email, password)
		}
		return authDoneMsg{user: u, err: err}
	}
}

func (s *FormScreen) View(width, height int) string {
	formWidth := min(width-4, 56)

	body := theme.Title.Width(formWidth - 4).Render(s.mode.String()) + "\n\n" +
		s.fields[fieldEmail].View() + "\n\n" +
		s.fields[fieldPassword].View() + "\n\n"

	btn := components.NewButton(s.mode.String())
	btn.Focused = s.focus == fieldPassword
	if s.pending {
		btn.Label = "Please wait..."
		btn.Disabled = true
	}
	body += btn.View()

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Card.Width(formWidth).Render(body))
}
