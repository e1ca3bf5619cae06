// Package results lists the signed-in user's stored quiz results.
package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/persona/internal/auth"
	"github.com/abhisek/persona/internal/insight"
	"github.com/abhisek/persona/internal/router"
	"github.com/abhisek/persona/internal/screen"
	"github.com/abhisek/persona/internal/store"
	"github.com/abhisek/persona/internal/ui/layout"
	"github.com/abhisek/persona/internal/ui/theme"
)

// Limit caps how many results are listed.
const Limit = 50

// Identity reports who is signed in.
type Identity interface {
	CurrentUser(ctx context.Context) (*auth.User, error)
}

// Lister reads a user's results, newest first.
type Lister interface {
	ListResults(ctx context.Context, userID string, limit int) ([]store.ResultRecord, error)
}

// Explainer describes a result. Optional.
type Explainer interface {
	Explain(ctx context.Context, rec store.ResultRecord) (*insight.Insight, error)
}

type loadedMsg struct {
	records []store.ResultRecord
	err     error
}

type explainedMsg struct {
	id      string
	insight *insight.Insight
	err     error
}

// ResultsScreen shows past results. Enter asks the explainer about the
// selected one.
type ResultsScreen struct {
	identity  Identity
	lister    Lister
	explainer Explainer

	records  []store.ResultRecord
	selected int
	loaded   bool
	errMsg   string

	insights   map[string]*insight.Insight
	explainOf  string // result ID with a request in flight
	explainErr map[string]string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the screen. explainer may be nil.
func New(identity Identity, lister Lister, explainer Explainer) *ResultsScreen {
	return &ResultsScreen{
		identity:   identity,
		lister:     lister,
		explainer:  explainer,
		insights:   make(map[string]*insight.Insight),
		explainErr: make(map[string]string),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	identity, lister := s.identity, s.lister
	return func() tea.Msg {
		ctx := context.Background()
		u, err := identity.CurrentUser(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		if u == nil {
			return loadedMsg{err: fmt.Errorf("sign in to see your results")}
		}
		recs, err := lister.ListResults(ctx, u.ID, Limit)
		return loadedMsg{records: recs, err: err}
	}
}

func (s *ResultsScreen) Title() string { return "My Results" }

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}}
	if s.explainer != nil {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Explain"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.records = msg.records
		return s, nil

	case explainedMsg:
		s.explainOf = ""
		if msg.err != nil {
			s.explainErr[msg.id] = "Could not explain this result right now."
			return s, nil
		}
		s.insights[msg.id] = msg.insight
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter":
			return s, s.explain()
		}
	}
	return s, nil
}

func (s *ResultsScreen) explain() tea.Cmd {
	if s.explainer == nil || s.explainOf != "" || len(s.records) == 0 {
		return nil
	}
	rec := s.records[s.selected]
	if s.insights[rec.ID] != nil {
		return nil
	}
	delete(s.explainErr, rec.ID)
	s.explainOf = rec.ID
	explainer := s.explainer
	return func() tea.Msg {
		in, err := explainer.Explain(context.Background(), rec)
		return explainedMsg{id: rec.ID, insight: in, err: err}
	}
}

func (s *ResultsScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render("\n\n" + s.errMsg)
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\nLoading results...")
	case len(s.records) == 0:
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\nNo results yet. Take the quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, rec := range s.records {
		line := fmt.Sprintf("%s  %s", rec.CreatedAt.Local().Format("Jan 02, 2006 15:04"), rec.ResultSummary)
		style := theme.Unselected
		prefix := "  "
		if i == s.selected {
			style = theme.Selected
			prefix = "> "
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+line)))
		b.WriteString("\n")
	}

	if detail := s.detail(min(width-8, 70)); detail != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, detail))
	}
	return b.String()
}

// detail renders the insight panel for the selected result.
func (s *ResultsScreen) detail(width int) string {
	if len(s.records) == 0 {
		return ""
	}
	id := s.records[s.selected].ID
	switch {
	case s.explainOf == id:
		return theme.Hint.Render("Thinking about your answers...")
	case s.explainErr[id] != "":
		return lipgloss.NewStyle().Foreground(theme.Error).Render(s.explainErr[id])
	}

	in := s.insights[id]
	if in == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render(in.Headline))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(width - 4).Render(in.Description))
	b.WriteString("\n")
	for _, tip := range in.Tips {
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(width - 4).Render("• " + tip))
	}
	return theme.Card.Width(width).Render(b.String())
}
