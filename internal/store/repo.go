package store

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateEmail is returned when creating a user whose email already exists.
var ErrDuplicateEmail = errors.New("email already registered")

// ResultRecord is one stored quiz submission.
type ResultRecord struct {
	ID            string
	UserID        string
	Answers       map[int]string
	ResultSummary string
	CreatedAt     time.Time
}

// UserRecord is a local account used by the auth service.
type UserRecord struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// ResultRepo stores quiz results.
type ResultRepo interface {
	// InsertResult writes a new result. Results are never updated.
	InsertResult(ctx context.Context, rec ResultRecord) error

	// ListResults returns a user's results, newest first.
	// A limit of 0 returns all of them.
	ListResults(ctx context.Context, userID string, limit int) ([]ResultRecord, error)
}

// UserRepo stores accounts.
type UserRepo interface {
	// CreateUser inserts a user. Returns ErrDuplicateEmail if the email is taken.
	CreateUser(ctx context.Context, u UserRecord) error

	// UserByEmail returns the user with the given email, or nil if none exists.
	UserByEmail(ctx context.Context, email string) (*UserRecord, error)
}

// Backend is a results and accounts store. Both the local SQLite store and
// the hosted Postgres store satisfy it.
type Backend interface {
	ResultRepo() ResultRepo
	UserRepo() UserRepo
	Close() error
}
