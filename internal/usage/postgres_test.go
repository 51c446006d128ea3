package usage

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T, limit int) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock, limit: limit}
	return s, mock
}

func TestPostgres_CheckDailyLimit_NoRows(t *testing.T) {
	s, mock := newMockPostgresStore(t, 10)

	mock.ExpectQuery(`SELECT count FROM daily_usage`).
		WithArgs("user-1", pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	exceeded, err := s.CheckDailyLimit(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, exceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CheckDailyLimit_AtLimit(t *testing.T) {
	s, mock := newMockPostgresStore(t, 10)

	mock.ExpectQuery(`SELECT count FROM daily_usage`).
		WithArgs("user-1", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(10))

	exceeded, err := s.CheckDailyLimit(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, exceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CheckDailyLimit_UnderLimit(t *testing.T) {
	s, mock := newMockPostgresStore(t, 10)

	mock.ExpectQuery(`SELECT count FROM daily_usage`).
		WithArgs("user-1", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(9))

	exceeded, err := s.CheckDailyLimit(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, exceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CheckDailyLimit_NoLimitSkipsQuery(t *testing.T) {
	s, mock := newMockPostgresStore(t, 0)

	exceeded, err := s.CheckDailyLimit(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, exceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_IncrementUsage_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t, 10)

	mock.ExpectExec(`ON CONFLICT`).
		WithArgs("user-1", pgxmock.AnyArg(), 3).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.IncrementUsage(context.Background(), "user-1", 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_IncrementUsage_ZeroIsNoop(t *testing.T) {
	s, mock := newMockPostgresStore(t, 10)

	err := s.IncrementUsage(context.Background(), "user-1", 0)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t, 10)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS daily_usage`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
