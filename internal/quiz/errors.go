package quiz

import "errors"

var (
	// ErrUnauthenticated is returned when no user is signed in at submission time.
	ErrUnauthenticated = errors.New("user not authenticated")

	// ErrIncompleteAnswers is returned when fewer answers than questions exist
	// at submission time.
	ErrIncompleteAnswers = errors.New("answers incomplete")

	// ErrQuestionOutOfRange is returned when recording an answer for an index
	// outside the question set.
	ErrQuestionOutOfRange = errors.New("question index out of range")
)

// PersistenceError wraps a failure reported by the results store.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return "save result: unknown error"
	}
	return "save result: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// UserMessage returns the notification text shown for a submission error.
// Store failures show the store's own message.
func UserMessage(err error) string {
	var perr *PersistenceError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return "User not authenticated"
	case errors.Is(err, ErrIncompleteAnswers):
		return "Please answer all questions before submitting"
	case errors.As(err, &perr) && perr.Err != nil:
		return perr.Err.Error()
	}
	return err.Error()
}

// SuccessMessage returns the notification text shown after a result is saved.
func SuccessMessage(p Personality) string {
	return "Quiz completed! Your result: " + string(p)
}
