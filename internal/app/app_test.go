package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/persona/internal/auth"
	"github.com/abhisek/persona/internal/quiz"
	"github.com/abhisek/persona/internal/router"
	"github.com/abhisek/persona/internal/screens/landing"
	"github.com/abhisek/persona/internal/ui/components"
)

type fakeSession struct{ user *auth.User }

func (f *fakeSession) CurrentUser(context.Context) (*auth.User, error) { return f.user, nil }
func (f *fakeSession) SignOut()                                        { f.user = nil }

type fakeSubmitter struct{ calls int }

func (f *fakeSubmitter) Submit(_ context.Context, _ string, st quiz.State) (quiz.Personality, error) {
	f.calls++
	return st.Set().Score(st.Answers()), nil
}

func newModel(t *testing.T, user *auth.User) AppModel {
	t.Helper()
	return newModelWith(t, user, &fakeSubmitter{})
}

func newModelWith(t *testing.T, user *auth.User, sub *fakeSubmitter) AppModel {
	t.Helper()
	set, err := quiz.DefaultQuestionSet()
	require.NoError(t, err)
	m := newAppModel(Options{Landing: landing.Deps{
		Session:   &fakeSession{user: user},
		Questions: set,
		Submitter: sub,
	}})
	next, _ := m.Update(m.Init()())
	next, _ = next.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(AppModel)
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestToastShownThenExpired(t *testing.T) {
	m := newModel(t, nil)

	toast := components.Success("Quiz completed! Your result: Visual Learner")().(components.ToastMsg)
	m, cmd := update(m, toast)
	require.NotNil(t, cmd)
	assert.True(t, m.toast.Visible)
	assert.Contains(t, m.frame(), "Quiz completed! Your result: Visual Learner")

	m, _ = update(m, components.ToastExpiredMsg{ID: toast.ID})
	assert.False(t, m.toast.Visible)
	assert.NotContains(t, m.frame(), "Quiz completed!")
}

func TestStaleExpiryKeepsNewerToast(t *testing.T) {
	m := newModel(t, nil)

	first := components.Failure("first")().(components.ToastMsg)
	second := components.Failure("second")().(components.ToastMsg)
	m, _ = update(m, first)
	m, _ = update(m, second)
	m, _ = update(m, components.ToastExpiredMsg{ID: first.ID})

	assert.True(t, m.toast.Visible)
	assert.Equal(t, "second", m.toast.Text)
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	m := newModel(t, &auth.User{ID: "u1", Email: "ada@example.com"})

	_, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)

	// Take Quiz
	m, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m, _ = update(m, cmd())
	require.Equal(t, 2, m.router.Depth())
	assert.Equal(t, "Personality Quiz", m.router.Active().Title())

	_, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestHeaderShowsAccount(t *testing.T) {
	m := newModel(t, &auth.User{ID: "u1", Email: "ada@example.com"})
	assert.Contains(t, m.frame(), "ada@example.com")
}

func TestCtrlCQuits(t *testing.T) {
	m := newModel(t, nil)
	_, cmd := update(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFooterUsesScreenHints(t *testing.T) {
	m := newModel(t, &auth.User{ID: "u1", Email: "ada@example.com"})
	assert.Contains(t, m.frame(), "Navigate")

	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m, _ = update(m, cmd())
	assert.Contains(t, m.frame(), "Previous")
	assert.Contains(t, m.frame(), "Question 1 of 3")
}

// collect runs cmd and any batched commands, returning the messages.
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

func TestEscWaitsForSubmission(t *testing.T) {
	sub := &fakeSubmitter{}
	m := newModelWith(t, &auth.User{ID: "u1", Email: "ada@example.com"}, sub)

	// Take Quiz, then deliver the quiz screen's user lookup.
	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m, cmd = update(m, cmd())
	m, _ = update(m, cmd())
	require.Equal(t, 2, m.router.Depth())

	for range 3 {
		m, _ = update(m, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
		m, _ = update(m, tea.KeyPressMsg{Code: tea.KeyRight})
	}
	m, submit := update(m, tea.KeyPressMsg{Code: 's', Text: "s"})
	require.NotNil(t, submit)

	m, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	require.Equal(t, 2, m.router.Depth())

	m, cmd = update(m, submit())
	assert.Equal(t, 1, sub.calls)

	msgs := collect(cmd)
	require.Len(t, msgs, 2)
	m, _ = update(m, msgs[0])
	m, _ = update(m, msgs[1])

	assert.True(t, m.toast.Visible)
	assert.Equal(t, "Quiz completed! Your result: Analytical Learner", m.toast.Text)
	assert.Equal(t, 1, m.router.Depth())

	// Once idle the quiz screen can be left with esc again.
	m, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m, _ = update(m, cmd())
	_, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
