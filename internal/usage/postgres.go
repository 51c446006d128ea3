package usage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the pgx pool surface the postgres driver needs. pgxmock's pool
// satisfies it, which is what the unit tests use.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	limit   int
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
// limit <= 0 disables the quota entirely.
func NewPostgres(ctx context.Context, connString string, limit int, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, limit: limit, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS daily_usage (
	user_id    TEXT NOT NULL,
	day        DATE NOT NULL,
	count      INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, day)
);

CREATE INDEX IF NOT EXISTS idx_daily_usage_day ON daily_usage(day);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CheckDailyLimit(ctx context.Context, userID string) (bool, error) {
	if s.limit <= 0 {
		return false, nil
	}

	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT count FROM daily_usage WHERE user_id = $1 AND day = $2`,
		userID, usageDay(time.Now()),
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, eris.Wrapf(err, "postgres: check daily limit %s", userID)
	}
	return count >= s.limit, nil
}

func (s *PostgresStore) IncrementUsage(ctx context.Context, userID string, n int) error {
	if n <= 0 {
		return nil
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO daily_usage (user_id, day, count, updated_at) VALUES ($1, $2, $3, now())
		 ON CONFLICT (user_id, day) DO UPDATE SET count = daily_usage.count + $3, updated_at = now()`,
		userID, usageDay(time.Now()), n,
	)
	return eris.Wrapf(err, "postgres: increment usage %s", userID)
}
