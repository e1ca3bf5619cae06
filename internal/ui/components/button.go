package components

import (
	"github.com/abhisek/persona/internal/ui/theme"
)

// Button renders a labelled button. Focused buttons are highlighted and
// disabled buttons are greyed out.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
}

func NewButton(label string) Button {
	return Button{Label: label}
}

func (b Button) View() string {
	switch {
	case b.Disabled:
		return theme.ButtonDisabled.Render(b.Label)
	case b.Focused:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Render(b.Label)
	}
}
