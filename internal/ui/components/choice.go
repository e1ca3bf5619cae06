package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/persona/internal/ui/theme"
)

// Choice is a single-select radio group. The cursor moves with the arrow
// keys; space or enter picks the option under it.
type Choice struct {
	Options []string
	Cursor  int
	Chosen  string // "" until something is picked
}

// NewChoice creates a radio group with chosen preselected when it is one
// of the options.
func NewChoice(options []string, chosen string) Choice {
	c := Choice{Options: options}
	for i, o := range options {
		if o == chosen {
			c.Cursor = i
			c.Chosen = chosen
			break
		}
	}
	return c
}

func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ", "enter":
		c.Chosen = c.Options[c.Cursor]
	}
	return c, nil
}

func (c Choice) View() string {
	var b strings.Builder
	for i, o := range c.Options {
		mark := "( )"
		if o == c.Chosen {
			mark = "(•)"
		}
		prefix := "  "
		style := theme.Unselected
		if i == c.Cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(prefix + mark + " " + o))
		b.WriteString("\n")
	}
	return b.String()
}
