package database

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"
)

func TestObserveQuery(t *testing.T) {
	observeQuery("SELECT", "happy_hours", 2*time.Second, nil)
	if got := testutil.ToFloat64(dbSlowQueriesTotal.WithLabelValues("SELECT", "happy_hours")); got != 1 {
		t.Errorf("Expected 1 slow query, got %v", got)
	}

	observeQuery("SELECT", "", time.Millisecond, gorm.ErrRecordNotFound)
	if got := testutil.ToFloat64(dbErrorsTotal.WithLabelValues("SELECT", "unknown", "*errors.errorString")); got != 0 {
		t.Errorf("Record not found must not count as an error, got %v", got)
	}

	observeQuery("INSERT", "happy_hours", time.Millisecond, errors.New("duplicate key"))
	if got := testutil.ToFloat64(dbErrorsTotal.WithLabelValues("INSERT", "happy_hours", "*errors.errorString")); got != 1 {
		t.Errorf("Expected 1 insert error, got %v", got)
	}
}
