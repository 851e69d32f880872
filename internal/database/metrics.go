package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

const (
	startTimeKey       = "metrics:start_time"
	slowQueryThreshold = time.Second
)

var (
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "happyhours_db_query_duration_seconds",
			Help:    "Database query execution time in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation", "table", "status"},
	)

	dbErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "happyhours_db_errors_total",
			Help: "Total number of database errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	dbSlowQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "happyhours_db_slow_queries_total",
			Help: "Total number of slow queries (>1 second)",
		},
		[]string{"operation", "table"},
	)

	dbConnectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "happyhours_db_connections_in_use",
			Help: "Number of database connections currently in use",
		},
	)
)

// MetricsPlugin GORM 콜백으로 쿼리 메트릭 수집
type MetricsPlugin struct{}

func (p *MetricsPlugin) Name() string {
	return "happyhoursMetrics"
}

// Initialize registers before/after callbacks for every processor. The
// operation label comes from the processor, not from parsing SQL.
func (p *MetricsPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		op     string
		before func(string, func(*gorm.DB)) error
		after  func(string, func(*gorm.DB)) error
		name   string
	}{
		{"INSERT", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register, "create"},
		{"SELECT", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register, "query"},
		{"UPDATE", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register, "update"},
		{"DELETE", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register, "delete"},
		{"ROW", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register, "row"},
		{"RAW", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register, "raw"},
	}

	for _, h := range hooks {
		if err := h.before("metrics:before_"+h.name, beforeCallback); err != nil {
			return err
		}
		if err := h.after("metrics:after_"+h.name, afterCallback(h.op)); err != nil {
			return err
		}
	}
	return nil
}

func beforeCallback(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func afterCallback(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		observeQuery(operation, db.Statement.Table, time.Since(start), db.Error)
	}
}

func observeQuery(operation, table string, elapsed time.Duration, err error) {
	if table == "" {
		table = "unknown"
	}

	status := "success"
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		status = "error"
		dbErrorsTotal.WithLabelValues(operation, table, fmt.Sprintf("%T", err)).Inc()
	}

	dbQueryDuration.WithLabelValues(operation, table, status).Observe(elapsed.Seconds())

	if elapsed > slowQueryThreshold {
		dbSlowQueriesTotal.WithLabelValues(operation, table).Inc()
	}
}

// StartConnectionMetricsCollector 사용 중 연결 수를 주기적으로 기록
func StartConnectionMetricsCollector(ctx context.Context, db *DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if sqlDB, err := db.DB.DB(); err == nil {
				dbConnectionsInUse.Set(float64(sqlDB.Stats().InUse))
			}
		}
	}
}
