package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/chapterprep/chapterprep/pkg/config"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type key int

const ctxKey key = 0

// WithLogging flags ctx so that queries run with it are logged when
// DATABASE_DEBUG is on.
func WithLogging(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey, true)
}

// LoggingEnabled reports whether ctx was flagged by WithLogging.
func LoggingEnabled(ctx context.Context) bool {
	enabled, ok := ctx.Value(ctxKey).(bool)
	return ok && enabled
}

type logQueryHook struct {
	debug func(query string)
}

func newLogQueryHook() *logQueryHook {
	log := logger.NewWithLevel("debug")
	return &logQueryHook{debug: func(query string) {
		log.Debug(query)
	}}
}

func (*logQueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (qh *logQueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if !LoggingEnabled(ctx) {
		return
	}

	qh.debug(event.Query)
}

func New(cfg *config.Config) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseFilePath)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// SQLite allows a single writer. One connection serializes every
	// operation, keeps the per-connection pragmas below in force and lets an
	// in-memory database be shared by the whole process.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetConnMaxLifetime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	// print out all queries in debug mode
	if cfg.DatabaseDebug {
		db.AddQueryHook(newLogQueryHook())
	}

	// Retry up to a few times to ensure that the database can connect.
	for i := 0; i < cfg.DatabaseConnectRetryCount; i++ {
		_, err = db.Exec("SELECT 1")
		if err != nil {
			time.Sleep(cfg.DatabaseConnectRetryDelay)
			continue
		}
		break
	}
	if err != nil {
		_ = db.Close()
		return nil, errors.WithStack(err)
	}

	if err := configure(db, cfg); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func configure(db *bun.DB, cfg *config.Config) error {
	// Cascading deletes of chapters and words rely on this.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return errors.Wrap(err, "failed to enable foreign keys")
	}

	if !isMemory(cfg.DatabaseFilePath) {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			return errors.Wrap(err, "failed to enable WAL mode")
		}
	}

	busyTimeoutMs := cfg.DatabaseBusyTimeout.Milliseconds()
	if _, err := db.Exec("PRAGMA busy_timeout=?", busyTimeoutMs); err != nil {
		return errors.Wrap(err, "failed to set busy_timeout")
	}

	return nil
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

// IsUniqueViolation reports whether err comes from a UNIQUE constraint.
// Both SQLite drivers behind sqliteshim use the same message.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
