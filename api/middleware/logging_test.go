package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type recordingLogger struct {
	infos  []map[string]interface{}
	errors []map[string]interface{}
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {}
func (l *recordingLogger) Info(msg string, fields map[string]interface{}) {
	l.infos = append(l.infos, fields)
}
func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {}
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.errors = append(l.errors, fields)
}

func TestRequestLogging_SetsRequestIDHeader(t *testing.T) {
	logger := &recordingLogger{}
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RequestID(r.Context()) == "" {
			t.Error("request ID missing from context")
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/articles", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
	if len(logger.infos) != 1 {
		t.Fatalf("logged %d info entries, want 1", len(logger.infos))
	}
	if logger.infos[0]["status"] != http.StatusNoContent {
		t.Errorf("logged status = %v, want 204", logger.infos[0]["status"])
	}
}

func TestRequestLogging_ServerErrorLogged(t *testing.T) {
	logger := &recordingLogger{}
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/articles", nil))

	if len(logger.errors) != 1 {
		t.Errorf("logged %d error entries, want 1", len(logger.errors))
	}
}

func TestRequestLogging_DefaultStatusIs200(t *testing.T) {
	logger := &recordingLogger{}
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if logger.infos[0]["status"] != http.StatusOK {
		t.Errorf("logged status = %v, want 200", logger.infos[0]["status"])
	}
}
