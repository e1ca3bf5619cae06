package authform

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/persona/internal/auth"
	"github.com/abhisek/persona/internal/router"
	"github.com/abhisek/persona/internal/screen"
	"github.com/abhisek/persona/internal/ui/components"
)

type fakeAuth struct {
	calls    []string
	email    string
	password string
	err      error
}

func (f *fakeAuth) SignUp(_ context.Context, email, password string) (*auth.User, error) {
	return f.record("signup", email, password)
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (*auth.User, error) {
	return f.record("signin", email, password)
}

func (f *fakeAuth) record(call, email, password string) (*auth.User, error) {
	f.calls = append(f.calls, call)
	f.email, f.password = email, password
	if f.err != nil {
		return nil, f.err
	}
	return &auth.User{ID: "u1", Email: email}, nil
}

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "quiz" }
func (s *stubScreen) Title() string                          { return "Quiz" }

func typeText(s *FormScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	tab   = tea.KeyPressMsg{Code: tea.KeyTab}
)

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func fill(t *testing.T, s *FormScreen, email, password string) tea.Cmd {
	t.Helper()
	s.Init()
	typeText(s, email)
	s.Update(enter)
	typeText(s, password)
	_, cmd := s.Update(enter)
	require.NotNil(t, cmd)
	return cmd
}

func TestSignUpSuccessReplacesWithNext(t *testing.T) {
	fa := &fakeAuth{}
	next := &stubScreen{}
	s := New(SignUp, fa, func() screen.Screen { return next })

	cmd := fill(t, s, "ada@example.com", "correct horse")
	_, cmd = s.Update(cmd())

	assert.Equal(t, []string{"signup"}, fa.calls)
	assert.Equal(t, "ada@example.com", fa.email)
	assert.Equal(t, "correct horse", fa.password)

	msgs := collect(cmd)
	require.Len(t, msgs, 2)
	toast := msgs[0].(components.ToastMsg)
	assert.Equal(t, components.ToastSuccess, toast.Kind)
	assert.Equal(t, "Account created for ada@example.com", toast.Text)
	replace, ok := msgs[1].(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Same(t, next, replace.Screen)
}

func TestSignInFailureShowsErrorAndClearsPassword(t *testing.T) {
	fa := &fakeAuth{err: auth.ErrInvalidCredentials}
	s := New(SignIn, fa, func() screen.Screen { return &stubScreen{} })

	cmd := fill(t, s, "ada@example.com", "wrong-password")
	_, cmd = s.Update(cmd())

	assert.Equal(t, []string{"signin"}, fa.calls)
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	toast := msgs[0].(components.ToastMsg)
	assert.Equal(t, components.ToastError, toast.Kind)
	assert.Equal(t, "Invalid email or password", toast.Text)
	assert.Empty(t, s.fields[fieldPassword].Value())
	assert.Equal(t, "ada@example.com", s.fields[fieldEmail].Value())
}

func TestTabCyclesFocus(t *testing.T) {
	s := New(SignIn, &fakeAuth{}, nil)
	s.Init()
	assert.Equal(t, fieldEmail, s.focus)

	s.Update(tab)
	assert.Equal(t, fieldPassword, s.focus)
	assert.True(t, s.fields[fieldPassword].Focused())
	assert.False(t, s.fields[fieldEmail].Focused())

	s.Update(tab)
	assert.Equal(t, fieldEmail, s.focus)
}

func TestKeysIgnoredWhilePending(t *testing.T) {
	fa := &fakeAuth{}
	s := New(SignIn, fa, func() screen.Screen { return &stubScreen{} })
	fill(t, s, "ada@example.com", "password1")

	_, cmd := s.Update(enter)
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(80, 24), "Please wait...")
}

func TestPasswordIsMasked(t *testing.T) {
	s := New(SignIn, &fakeAuth{}, nil)
	s.Init()
	s.Update(tab)
	typeText(s, "hunter22")

	assert.NotContains(t, s.View(80, 24), "hunter22")
}
