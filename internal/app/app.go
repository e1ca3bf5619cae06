// Package app holds the root Bubble Tea model.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/persona/internal/auth"
	"github.com/abhisek/persona/internal/router"
	"github.com/abhisek/persona/internal/screen"
	"github.com/abhisek/persona/internal/screens/landing"
	"github.com/abhisek/persona/internal/ui/components"
	"github.com/abhisek/persona/internal/ui/layout"
)

// Options configures the app.
type Options struct {
	Landing landing.Deps
	Logger  *zap.Logger
}

// AppModel is the root model. It owns the screen stack and the toast.
type AppModel struct {
	router *router.Router
	toast  components.Toast
	logger *zap.Logger
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return AppModel{
		router: router.New(landing.New(opts.Landing)),
		logger: logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case components.ToastMsg:
		m.toast = components.Toast{ToastMsg: msg, Visible: true}
		if msg.Kind == components.ToastError {
			m.logger.Debug("error toast", zap.String("text", msg.Text))
		}
		return m, components.ExpireToast(msg.ID, components.ToastDuration)

	case components.ToastExpiredMsg:
		if msg.ID == m.toast.ID {
			m.toast.Visible = false
		}
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() <= 1 {
				return m, nil
			}
			if b, ok := m.router.Active().(screen.Busy); ok && b.Busy() {
				return m, nil
			}
			return m, router.Pop
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	v.SetContent(m.frame())
	return v
}

func (m AppModel) frame() string {
	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.account(), m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	contentHeight := layout.ContentHeight(header, footer, m.height)
	toast := m.toast.View()
	if toast != "" {
		contentHeight -= lipgloss.Height(toast) + 1
	}

	content := m.router.View(m.width, max(contentHeight, 0))
	if toast != "" {
		content = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, toast) + "\n" + content
	}
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// account returns the email shown in the header, if someone is signed in.
func (m AppModel) account() string {
	type userHolder interface{ User() *auth.User }
	if root, ok := m.router.Root().(userHolder); ok {
		if u := root.User(); u != nil {
			return u.Email
		}
	}
	return ""
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if _, err := tea.NewProgram(newAppModel(opts)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
