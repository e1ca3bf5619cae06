package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/persona/internal/ui/layout"
)

// Screen is one page of the app.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and a command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen body (excluding header and footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that refresh when they become active
// again after the screens above them are popped.
type Resumer interface {
	Resume() tea.Cmd
}

// Busy is implemented by screens that must not be left while background
// work they started is still running.
type Busy interface {
	Busy() bool
}
