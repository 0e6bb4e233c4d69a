package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSlogLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(WithOutput(&buf), WithJSON())

	logger.With(String("component", "signup")).Info("advanced", Int("step", 2), Bool("ok", true))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "advanced" {
		t.Errorf("unexpected msg %v", entry["msg"])
	}
	if entry["component"] != "signup" {
		t.Errorf("expected inherited field, got %v", entry["component"])
	}
	if entry["step"] != float64(2) {
		t.Errorf("expected step 2, got %v", entry["step"])
	}
}

func TestSlogLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Backend: BackendSlog, Level: "warn", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn should be logged")
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	if _, err := New(Config{Backend: "logrus"}); err == nil {
		t.Error("expected error for unknown backend")
	}
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Error("expected error for bad level")
	}
}

func TestNew_Zap(t *testing.T) {
	logger, err := New(Config{Backend: BackendZap, Level: "debug", JSON: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := logger.(*ZapLogger); !ok {
		t.Fatalf("expected *ZapLogger, got %T", logger)
	}
}

func TestZapLogger_Fields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.With(String("session", "abc")).Error("completion failed", Err(errors.New("boom")), Int("attempt", 1))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["session"] != "abc" {
		t.Errorf("expected session field, got %v", ctx["session"])
	}
	if ctx["error"] != "boom" {
		t.Errorf("expected error field, got %v", ctx["error"])
	}
	if ctx["attempt"] != int64(1) {
		t.Errorf("expected attempt 1, got %v (%T)", ctx["attempt"], ctx["attempt"])
	}
}

func TestL_FallsBackToDefault(t *testing.T) {
	if L(context.Background()) != DefaultLogger {
		t.Error("expected default logger")
	}

	nop := NopLogger{}
	ctx := ContextWithLogger(context.Background(), nop)
	if L(ctx) != Logger(nop) {
		t.Error("expected context logger")
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(WithOutput(&buf), WithJSON())

	var seenID string
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestID(r.Context())
		if LoggerFromContext(r.Context()) == nil {
			t.Error("expected request logger in context")
		}
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health-tips", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seenID == "" {
		t.Fatal("expected generated request ID")
	}
	if rec.Header().Get("X-Request-ID") != seenID {
		t.Error("expected request ID echoed in response header")
	}
	if !strings.Contains(buf.String(), `"status":418`) {
		t.Errorf("expected status in log, got %s", buf.String())
	}
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	handler := RequestLogger(NopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RequestID(r.Context()) != "req-1" {
			t.Errorf("expected incoming ID, got %q", RequestID(r.Context()))
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}
