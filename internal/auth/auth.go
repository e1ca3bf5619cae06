// Package auth signs users up and in against the local account store and
// tracks who is signed in for the running session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/persona/internal/store"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// User is the signed-in identity.
type User struct {
	ID    string
	Email string
}

// Service is the auth collaborator. It is safe for concurrent use because
// screens query it from background commands.
type Service struct {
	users  store.UserRepo
	logger *zap.Logger
	cost   int

	mu      sync.RWMutex
	current *User
}

// NewService creates an auth service over users. A nil logger disables logging.
func NewService(users store.UserRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, logger: logger, cost: bcrypt.DefaultCost}
}

// SignUp creates an account and signs it in.
func (s *Service) SignUp(ctx context.Context, email, password string) (*User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	rec := store.UserRecord{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, rec); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user signed up", zap.String("user_id", rec.ID))
	return s.setCurrent(rec), nil
}

// SignIn verifies credentials and signs the user in.
func (s *Service) SignIn(ctx context.Context, email, password string) (*User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	rec, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if rec == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("sign-in rejected", zap.String("user_id", rec.ID))
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user signed in", zap.String("user_id", rec.ID))
	return s.setCurrent(*rec), nil
}

// SignOut forgets the signed-in user.
func (s *Service) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// CurrentUser returns the signed-in user, or nil when nobody is signed in.
func (s *Service) CurrentUser(ctx context.Context) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, nil
	}
	u := *s.current
	return &u, nil
}

// LookupUser resolves an email to a user without signing in. Used by the
// command line tools.
func (s *Service) LookupUser(ctx context.Context, email string) (*User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	rec, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	return &User{ID: rec.ID, Email: rec.Email}, nil
}

func (s *Service) setCurrent(rec store.UserRecord) *User {
	u := &User{ID: rec.ID, Email: rec.Email}
	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
	out := *u
	return &out
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// UserMessage returns the notification text for an auth error. Unexpected
// failures get a generic message; details go to the log.
func UserMessage(err error) string {
	for _, known := range []error{ErrInvalidEmail, ErrWeakPassword, ErrEmailTaken, ErrInvalidCredentials} {
		if errors.Is(err, known) {
			msg := known.Error()
			return strings.ToUpper(msg[:1]) + msg[1:]
		}
	}
	return "Something went wrong, please try again"
}
