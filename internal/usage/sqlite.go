package usage

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db    *sql.DB
	limit int
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
// limit <= 0 disables the quota entirely.
func NewSQLite(dsn string, limit int) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db, limit: limit}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS daily_usage (
	user_id    TEXT NOT NULL,
	day        TEXT NOT NULL,
	count      INTEGER NOT NULL DEFAULT 0,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (user_id, day)
);

CREATE INDEX IF NOT EXISTS idx_daily_usage_day ON daily_usage(day);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CheckDailyLimit(ctx context.Context, userID string) (bool, error) {
	if s.limit <= 0 {
		return false, nil
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count FROM daily_usage WHERE user_id = ? AND day = ?`,
		userID, usageDay(time.Now()),
	).Scan(&count)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, eris.Wrapf(err, "sqlite: check daily limit %s", userID)
	}
	return count >= s.limit, nil
}

func (s *SQLiteStore) IncrementUsage(ctx context.Context, userID string, n int) error {
	if n <= 0 {
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_usage (user_id, day, count, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, day) DO UPDATE SET count = count + excluded.count, updated_at = excluded.updated_at`,
		userID, usageDay(time.Now()), n, time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: increment usage %s", userID)
}
