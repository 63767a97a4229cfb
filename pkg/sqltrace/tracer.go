package sqltrace

import (
	"context"
	"database/sql"
	"database/sql/driver"

	_ "github.com/go-sql-driver/mysql"

	"github.com/XSAM/otelsql"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/grafana/sqlsanitize/pkg/sqlsanitize"
)

// options holds the configuration assembled from the Option values passed
// to Open, mirroring the teacher's own functional-option config structs.
type options struct {
	cache           *sqlsanitize.Cache
	tracerProvider  trace.TracerProvider
	meterProvider   metric.MeterProvider
	registerDBStats bool
	ping            bool
}

// Option configures Open.
type Option func(*options)

// WithCache attaches an existing sqlsanitize.Cache instead of letting Open
// build a private one from its Config argument. Use this to share one
// cache (and its metrics) across several Open calls.
func WithCache(c *sqlsanitize.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithTracerProvider sets the trace.TracerProvider used for spans created
// around driver calls. The global provider is used if omitted.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithMeterProvider sets the metric.MeterProvider used for otelsql's and,
// if enabled, database/sql's own connection-pool metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithDBStatsMetrics enables otelsql.RegisterDBStatsMetrics against the
// opened *sql.DB. Disabled by default, since it requires a usable
// MeterProvider to be worth the registration.
func WithDBStatsMetrics(enabled bool) Option {
	return func(o *options) { o.registerDBStats = enabled }
}

// WithPing makes Open verify connectivity with db.PingContext before
// returning, surfacing connection failures immediately instead of on the
// caller's first query.
func WithPing(enabled bool) Option {
	return func(o *options) { o.ping = enabled }
}

// Open opens a *sql.DB through an otelsql-wrapped driver, so every query
// produces a span named after its sanitized summary and carrying a
// db.statement attribute of sanitized SQL text. driverName names an
// already-registered database/sql driver (e.g. "mysql"); dsn is passed to
// it unmodified. cfg governs the sanitize cache backing the span
// formatter, unless WithCache supplies one directly.
func Open(ctx context.Context, driverName, dsn string, cfg sqlsanitize.Config, opts ...Option) (*sql.DB, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	cache := o.cache
	if cache == nil {
		cache = sqlsanitize.New(cfg)
	}

	otelOpts := []otelsql.Option{
		otelsql.WithSpanNameFormatter(func(_ context.Context, _ otelsql.Method, query string) string {
			return cache.Get(query).Summary
		}),
		otelsql.WithAttributesGetter(func(_ context.Context, _ otelsql.Method, query string, _ []driver.NamedValue) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("db.statement", cache.Get(query).SanitizedSQL),
			}
		}),
	}
	if o.tracerProvider != nil {
		otelOpts = append(otelOpts, otelsql.WithTracerProvider(o.tracerProvider))
	}
	if o.meterProvider != nil {
		otelOpts = append(otelOpts, otelsql.WithMeterProvider(o.meterProvider))
	}

	db, err := otelsql.Open(driverName, dsn, otelOpts...)
	if err != nil {
		return nil, err
	}

	if o.registerDBStats {
		statsOpts := []otelsql.Option{}
		if o.meterProvider != nil {
			statsOpts = append(statsOpts, otelsql.WithMeterProvider(o.meterProvider))
		}
		if _, err := otelsql.RegisterDBStatsMetrics(db, statsOpts...); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if o.ping {
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}
