package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// userRepo implements UserRepo on SQLite.
type userRepo struct {
	db *sql.DB
}

func (r *userRepo) CreateUser(ctx context.Context, u UserRecord) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(usersTable).
		Columns("id", "email", "password_hash", "created_at").
		Values(u.ID, u.Email, u.PasswordHash, u.CreatedAt.UTC()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) UserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	t := b.Table(usersTable)
	query, args := b.Select(t.C("id"), t.C("email"), t.C("password_hash"), t.C("created_at")).
		From(t).
		Where(entsql.EQ(t.C("email"), email)).
		Limit(1).
		Query()

	var (
		u       UserRecord
		created time.Time
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Email, &u.PasswordHash, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.CreatedAt = created.UTC()
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
