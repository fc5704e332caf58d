package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tunes the connection. Zero values fall back to DefaultOptions.
type Options struct {
	LogLevel        logger.LogLevel
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// DefaultOptions fits one bot process: updates are short and mostly sequential per user.
func DefaultOptions() Options {
	return Options{
		LogLevel:        logger.Warn,
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.LogLevel == 0 {
		o.LogLevel = d.LogLevel
	}
	if o.MaxOpenConns == 0 {
		o.MaxOpenConns = d.MaxOpenConns
	}
	if o.MaxIdleConns == 0 {
		o.MaxIdleConns = d.MaxIdleConns
	}
	if o.ConnMaxLifetime == 0 {
		o.ConnMaxLifetime = d.ConnMaxLifetime
	}
	if o.PingTimeout == 0 {
		o.PingTimeout = d.PingTimeout
	}
	return o
}

// Config returns the gorm settings shared by every dialect.
// TranslateError lets repositories match gorm.ErrDuplicatedKey instead of driver codes.
func Config(level logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             500 * time.Millisecond,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true, // a missing session row is the normal first contact
				ParameterizedQueries:      true, // report descriptions stay out of the SQL log
				Colorful:                  true,
			},
		),
		TranslateError: true,
	}
}

// Open connects through any dialector, sizes the pool and pings once.
func Open(dialector gorm.Dialector, opts Options) (*gorm.DB, error) {
	opts = opts.withDefaults()

	db, err := gorm.Open(dialector, Config(opts.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialector.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), opts.PingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", dialector.Name(), err)
	}
	return db, nil
}

// NewGormDBFromDSN opens the Postgres database behind DB_CONNECTION_STRING.
func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	return Open(postgres.Open(dsn), DefaultOptions())
}
