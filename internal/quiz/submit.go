package quiz

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/persona/internal/store"
)

// ResultWriter is the persistence collaborator used on submission.
type ResultWriter interface {
	InsertResult(ctx context.Context, rec store.ResultRecord) error
}

// Submitter checks submission preconditions, scores the answers and writes
// one result record.
type Submitter struct {
	results ResultWriter
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// NewSubmitter creates a Submitter. A nil logger disables logging.
func NewSubmitter(results ResultWriter, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{
		results: results,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Submit validates st, scores it and stores the result for userID.
// Precondition failures return ErrUnauthenticated or ErrIncompleteAnswers
// without touching storage. Storage failures are wrapped in
// *PersistenceError and are not retried.
func (s *Submitter) Submit(ctx context.Context, userID string, st State) (Personality, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}
	if !st.Complete() {
		return "", ErrIncompleteAnswers
	}

	result := st.Set().Score(st.Answers())

	rec := store.ResultRecord{
		ID:            s.newID(),
		UserID:        userID,
		Answers:       st.Answers(),
		ResultSummary: string(result),
		CreatedAt:     s.now().UTC(),
	}

	if err := s.results.InsertResult(ctx, rec); err != nil {
		s.logger.Warn("result not saved",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return "", &PersistenceError{Err: err}
	}

	s.logger.Info("result saved",
		zap.String("result_id", rec.ID),
		zap.String("user_id", userID),
		zap.String("result", string(result)),
	)
	return result, nil
}
