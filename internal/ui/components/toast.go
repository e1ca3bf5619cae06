package components

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/persona/internal/ui/theme"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 3 * time.Second

// ToastKind selects the toast styling.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// ToastMsg asks the app to show a toast.
type ToastMsg struct {
	ID   uint64
	Kind ToastKind
	Text string
}

// ToastExpiredMsg clears the toast with the matching ID. A newer toast
// has a different ID and survives.
type ToastExpiredMsg struct {
	ID uint64
}

var toastSeq atomic.Uint64

// ShowToast returns a command that displays text as a toast.
func ShowToast(kind ToastKind, text string) tea.Cmd {
	id := toastSeq.Add(1)
	return func() tea.Msg {
		return ToastMsg{ID: id, Kind: kind, Text: text}
	}
}

// Success and Failure are shorthands for ShowToast.
func Success(text string) tea.Cmd { return ShowToast(ToastSuccess, text) }
func Failure(text string) tea.Cmd { return ShowToast(ToastError, text) }

// ExpireToast schedules removal of the toast with id.
func ExpireToast(id uint64, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Toast is the visible notification.
type Toast struct {
	ToastMsg
	Visible bool
}

func (t Toast) View() string {
	if !t.Visible {
		return ""
	}
	if t.Kind == ToastError {
		return theme.ToastError.Render("✗ " + t.Text)
	}
	return theme.ToastSuccess.Render("✓ " + t.Text)
}
