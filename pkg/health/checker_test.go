package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChecker_AllPass(t *testing.T) {
	hc := NewChecker("1.0.0")
	hc.AddCheck("content", ReadyCheck("content", func() bool { return true }), time.Second)
	hc.AddCriticalCheck("store", PingCheck(func(context.Context) error { return nil }), time.Second)

	report := hc.Check(context.Background())
	if report.Status != StatusHealthy {
		t.Errorf("status = %s, want healthy", report.Status)
	}
	if len(report.Checks) != 2 {
		t.Errorf("checks = %d, want 2", len(report.Checks))
	}
	if report.Version != "1.0.0" {
		t.Errorf("version = %q", report.Version)
	}
}

func TestChecker_NonCriticalFailureDegrades(t *testing.T) {
	hc := NewChecker("")
	hc.AddCheck("content", ReadyCheck("content", func() bool { return false }), time.Second)
	hc.AddCriticalCheck("store", PingCheck(func(context.Context) error { return nil }), time.Second)

	report := hc.Check(context.Background())
	if report.Status != StatusDegraded {
		t.Errorf("status = %s, want degraded", report.Status)
	}
	if got := report.Checks["content"].Error; got != "content not ready" {
		t.Errorf("error = %q", got)
	}
}

func TestChecker_CriticalFailure(t *testing.T) {
	hc := NewChecker("")
	hc.AddCriticalCheck("store", PingCheck(func(context.Context) error {
		return errors.New("store is closed")
	}), time.Second)

	if got := hc.Check(context.Background()).Status; got != StatusUnhealthy {
		t.Errorf("status = %s, want unhealthy", got)
	}
}

func TestChecker_Timeout(t *testing.T) {
	hc := NewChecker("")
	hc.AddCriticalCheck("slow", func(ctx context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	}, 20*time.Millisecond)

	start := time.Now()
	report := hc.Check(context.Background())
	if report.Status != StatusUnhealthy {
		t.Errorf("status = %s, want unhealthy", report.Status)
	}
	if time.Since(start) > 150*time.Millisecond {
		t.Error("Check waited for a check past its timeout")
	}
}

func TestCapacityCheck(t *testing.T) {
	n := 5
	c := CapacityCheck("sessions", func() int { return n }, 10)
	if err := c(context.Background()); err != nil {
		t.Errorf("under capacity: %v", err)
	}
	n = 10
	if err := c(context.Background()); err == nil {
		t.Error("at capacity: no error")
	}
	if err := CapacityCheck("x", func() int { return 99 }, 0)(context.Background()); err != nil {
		t.Errorf("disabled check failed: %v", err)
	}
}

func TestHandlers(t *testing.T) {
	hc := NewChecker("v")
	hc.AddCriticalCheck("store", func(context.Context) error { return errors.New("down") }, time.Second)

	w := httptest.NewRecorder()
	hc.LivenessHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/livez", nil))
	if w.Code != http.StatusOK {
		t.Errorf("liveness = %d", w.Code)
	}

	w = httptest.NewRecorder()
	hc.ReadinessHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness = %d, want 503", w.Code)
	}
	var report Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Checks["store"].Error != "down" {
		t.Errorf("report = %+v", report)
	}
}
