package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGinMiddlewareSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware(MiddlewareConfig{}))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got == "" {
		t.Fatalf("expected X-Request-Id header to be set")
	}
}

func TestGinMiddlewareLogsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	orig := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	defer zap.ReplaceGlobals(orig)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware(MiddlewareConfig{SkipPaths: []string{"/healthz"}}))
	r.GET("/invoices", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if got := len(logs.All()); got != 0 {
		t.Fatalf("expected skipped path to produce no log entries, got %d", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invoices", nil))
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["method"] != http.MethodGet {
		t.Fatalf("expected method GET, got %v", fields["method"])
	}
	if fields["path"] != "/invoices" {
		t.Fatalf("expected path /invoices, got %v", fields["path"])
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Fatalf("expected status 200, got %v", fields["status"])
	}
}
