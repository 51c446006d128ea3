// Package usage tracks per-user daily request consumption for the scrape
// quota. The serve boundary consults it before starting a batch and credits
// it with the number of successful per-URL scrapes afterwards.
package usage

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
)

// Store is the daily-usage persistence interface.
type Store interface {
	// CheckDailyLimit reports whether userID has exhausted today's quota.
	// true means the limit is exceeded and the request must be refused.
	CheckDailyLimit(ctx context.Context, userID string) (bool, error)

	// IncrementUsage adds n to today's counter for userID. n is the number
	// of successful scrapes, not attempts.
	IncrementUsage(ctx context.Context, userID string, n int) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Config selects and tunes the usage driver.
type Config struct {
	Driver     string      `yaml:"driver" mapstructure:"driver"` // "sqlite" or "postgres"
	DSN        string      `yaml:"dsn" mapstructure:"dsn"`
	DailyLimit int         `yaml:"daily_limit" mapstructure:"daily_limit"`
	Pool       *PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// Open creates a Store for cfg.Driver and runs migrations.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Driver {
	case "", "sqlite":
		s, err = NewSQLite(cfg.DSN, cfg.DailyLimit)
	case "postgres":
		s, err = NewPostgres(ctx, cfg.DSN, cfg.DailyLimit, cfg.Pool)
	default:
		return nil, eris.Errorf("usage: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// usageDay is the UTC calendar-day bucket key. Quotas reset at midnight UTC.
func usageDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
