package quizflow

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/persona/internal/ui/components"
	"github.com/abhisek/persona/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cardWidth := min(width-4, 72)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(cardWidth).Render(s.state.Position()))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", s.state.Progress(), false, cardWidth-4).View())
	b.WriteString("\n\n")

	q := s.state.Question()
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cardWidth - 4).Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())
	b.WriteString("\n")
	b.WriteString(s.buttons())

	card := theme.Card.Width(cardWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *QuizScreen) buttons() string {
	prev := components.NewButton("Previous")
	prev.Disabled = s.state.IsFirst() || s.submitting

	next := components.NewButton("Next")
	next.Disabled = !s.state.CanAdvance()
	if s.state.IsLast() {
		next.Label = "Submit"
		next.Disabled = !s.state.CanSubmit()
		if s.submitting {
			next.Label = "Submitting..."
			next.Disabled = true
		}
	}
	next.Focused = !next.Disabled

	return lipgloss.JoinHorizontal(lipgloss.Center, prev.View(), "  ", next.View())
}
