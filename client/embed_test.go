package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestScriptHandler(t *testing.T) {
	w := httptest.NewRecorder()
	ScriptHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live.js", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/javascript") {
		t.Errorf("unexpected content type %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{`"phx_join"`, `"lv-input"`, `"redirect"`} {
		if !strings.Contains(body, want) {
			t.Errorf("script missing %s", want)
		}
	}
}

func TestFileNames(t *testing.T) {
	names := FileNames()
	if len(names) != 1 || names[0] != ScriptName {
		t.Errorf("unexpected files %v", names)
	}
}
