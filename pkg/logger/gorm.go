package logger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries worth a WARN line.
const slowQueryThreshold = 200 * time.Millisecond

// Gorm adapts the slog logger to gorm's logger.Interface, so ORM log lines
// land in the same stream (and format) as application logs.
type Gorm struct {
	log *slog.Logger
}

// NewGorm returns a gorm logger backed by the package logger.
func NewGorm() *Gorm {
	return &Gorm{log: L.With("component", "gorm")}
}

func (g *Gorm) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	// Level filtering is handled by the slog handler.
	return g
}

func (g *Gorm) Info(ctx context.Context, msg string, args ...interface{}) {
	g.log.InfoContext(ctx, msg, "args", args)
}

func (g *Gorm) Warn(ctx context.Context, msg string, args ...interface{}) {
	g.log.WarnContext(ctx, msg, "args", args)
}

func (g *Gorm) Error(ctx context.Context, msg string, args ...interface{}) {
	g.log.ErrorContext(ctx, msg, "args", args)
}

func (g *Gorm) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound):
		g.log.ErrorContext(ctx, "query failed", "error", err, "sql", sql, "rows", rows, "elapsed", elapsed)
	case elapsed >= slowQueryThreshold:
		g.log.WarnContext(ctx, "slow query", "sql", sql, "rows", rows, "elapsed", elapsed)
	default:
		g.log.DebugContext(ctx, "query", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
