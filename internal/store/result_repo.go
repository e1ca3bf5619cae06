package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// resultRepo implements ResultRepo on SQLite.
type resultRepo struct {
	db *sql.DB
}

func (r *resultRepo) InsertResult(ctx context.Context, rec ResultRecord) error {
	answers, err := MarshalAnswers(rec.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(resultsTable).
		Columns("id", "user_id", "answers", "result_summary", "created_at").
		Values(rec.ID, rec.UserID, string(answers), rec.ResultSummary, rec.CreatedAt.UTC()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (r *resultRepo) ListResults(ctx context.Context, userID string, limit int) ([]ResultRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	t := b.Table(resultsTable)
	sel := b.Select(t.C("id"), t.C("user_id"), t.C("answers"), t.C("result_summary"), t.C("created_at")).
		From(t).
		Where(entsql.EQ(t.C("user_id"), userID)).
		OrderBy(entsql.Desc(t.C("created_at")), entsql.Desc(t.C("id")))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		var (
			rec     ResultRecord
			answers string
			created time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &answers, &rec.ResultSummary, &created); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		rec.Answers, err = UnmarshalAnswers([]byte(answers))
		if err != nil {
			return nil, fmt.Errorf("result %s: %w", rec.ID, err)
		}
		rec.CreatedAt = created.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

// MarshalAnswers encodes answers as a JSON object keyed by question index,
// e.g. {"0":"Reading and writing"}.
func MarshalAnswers(answers map[int]string) ([]byte, error) {
	obj := make(map[string]string, len(answers))
	for i, label := range answers {
		obj[strconv.Itoa(i)] = label
	}
	return json.Marshal(obj)
}

// UnmarshalAnswers decodes the JSON object written by MarshalAnswers.
func UnmarshalAnswers(data []byte) (map[int]string, error) {
	var obj map[string]string
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	out := make(map[int]string, len(obj))
	for k, label := range obj {
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("answer key %q: %w", k, err)
		}
		out[i] = label
	}
	return out, nil
}
