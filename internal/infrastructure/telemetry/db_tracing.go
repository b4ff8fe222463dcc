package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig controls query-level span annotation.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include bind parameters in spans, dev only
	SlowQueryThresh time.Duration
	DBSystem        string
}

// DefaultDBTracingConfig returns the config used when nothing overrides it.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:         false,
		LogFullSQL:      false,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// DBTracingPlugin layers slow-query and error annotation on top of otelgorm.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

func NewDBTracingPlugin(cfg DBTracingConfig, log *zap.Logger) *DBTracingPlugin {
	return &DBTracingPlugin{config: cfg, logger: log}
}

// RegisterOtelGorm installs otelgorm on db together with timing callbacks.
// A no-op when tracing is disabled.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerTimingCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)

	return nil
}

// registerTimingCallbacks stamps a start time before every GORM operation so
// the after callback can measure elapsed time.
func (p *DBTracingPlugin) registerTimingCallbacks(db *gorm.DB) error {
	before := func(db *gorm.DB) {
		if db.Statement.Context != nil {
			db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
		}
	}

	type hook interface {
		Register(string, func(*gorm.DB)) error
	}

	cb := db.Callback()
	regs := []struct {
		name string
		at   hook
		fn   func(*gorm.DB)
	}{
		{"otel_timing:before_create", cb.Create().Before("gorm:create"), before},
		{"otel_timing:after_create", cb.Create().After("gorm:create"), p.afterCallback},
		{"otel_timing:before_query", cb.Query().Before("gorm:query"), before},
		{"otel_timing:after_query", cb.Query().After("gorm:query"), p.afterCallback},
		{"otel_timing:before_update", cb.Update().Before("gorm:update"), before},
		{"otel_timing:after_update", cb.Update().After("gorm:update"), p.afterCallback},
		{"otel_timing:before_delete", cb.Delete().Before("gorm:delete"), before},
		{"otel_timing:after_delete", cb.Delete().After("gorm:delete"), p.afterCallback},
		{"otel_timing:before_row", cb.Row().Before("gorm:row"), before},
		{"otel_timing:after_row", cb.Row().After("gorm:row"), p.afterCallback},
		{"otel_timing:before_raw", cb.Raw().Before("gorm:raw"), before},
		{"otel_timing:after_raw", cb.Raw().After("gorm:raw"), p.afterCallback},
	}

	for _, r := range regs {
		if err := r.at.Register(r.name, r.fn); err != nil {
			return err
		}
	}

	return nil
}

// afterCallback annotates the active span with row counts, errors, and slow
// query events.
func (p *DBTracingPlugin) afterCallback(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	// ErrRecordNotFound is an expected outcome, not a span error
	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(queryStartTimeKey).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"
