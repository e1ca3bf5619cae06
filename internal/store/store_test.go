package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDBCounter int

func openTestStore(t *testing.T) *Store {
	t.Helper()
	testDBCounter++
	dsn := fmt.Sprintf("file:persona_test_%d?mode=memory&cache=shared", testDBCounter)
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"users", "quiz_results"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestJournalModeWALOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestInsertAndListResults(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := repo.InsertResult(ctx, ResultRecord{
			ID:     fmt.Sprintf("r%d", i),
			UserID: "u1",
			Answers: map[int]string{
				0: "Reading and writing",
				1: "Trust your intuition",
				2: "Observe and analyze",
			},
			ResultSummary: "Analytical Learner",
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	require.NoError(t, repo.InsertResult(ctx, ResultRecord{
		ID:            "other",
		UserID:        "u2",
		Answers:       map[int]string{0: "Hands-on practice"},
		ResultSummary: "Practical Learner",
		CreatedAt:     base,
	}))

	got, err := repo.ListResults(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "r2", got[0].ID, "newest first")
	assert.Equal(t, "r0", got[2].ID)
	assert.Equal(t, "Trust your intuition", got[0].Answers[1])
	assert.Equal(t, "Analytical Learner", got[0].ResultSummary)
	assert.True(t, got[0].CreatedAt.Equal(base.Add(2*time.Minute)))

	limited, err := repo.ListResults(ctx, "u1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := repo.ListResults(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInsertResultDuplicateID(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	rec := ResultRecord{ID: "dup", UserID: "u1", Answers: map[int]string{}, ResultSummary: "Visual Learner", CreatedAt: time.Now()}
	require.NoError(t, repo.InsertResult(ctx, rec))
	assert.Error(t, repo.InsertResult(ctx, rec))
}

func TestCreateUserAndLookup(t *testing.T) {
	s := openTestStore(t)
	repo := s.UserRepo()
	ctx := context.Background()

	u, err := repo.UserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	err = repo.CreateUser(ctx, UserRecord{
		ID:           "u1",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)

	u, err = repo.UserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := openTestStore(t)
	repo := s.UserRepo()
	ctx := context.Background()

	first := UserRecord{ID: "u1", Email: "ada@example.com", PasswordHash: "h", CreatedAt: time.Now()}
	require.NoError(t, repo.CreateUser(ctx, first))

	second := first
	second.ID = "u2"
	err := repo.CreateUser(ctx, second)
	assert.True(t, errors.Is(err, ErrDuplicateEmail), "got %v", err)
}

func TestAnswersJSONKeys(t *testing.T) {
	data, err := MarshalAnswers(map[int]string{0: "a", 2: "c"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"0":"a","2":"c"}`, string(data))

	back, err := UnmarshalAnswers(data)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{0: "a", 2: "c"}, back)

	_, err = UnmarshalAnswers([]byte(`{"x":"a"}`))
	assert.Error(t, err)
}
