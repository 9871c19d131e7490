package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(RequestIDHeader)
		if id == "" {
			t.Fatal("Expected a generated request ID")
		}
		if w.Body.String() != id {
			t.Errorf("Expected context ID %s, got %s", id, w.Body.String())
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("Expected abc-123, got %s", got)
		}
	})
}

func TestRateLimiter(t *testing.T) {
	logger, hook := test.NewNullLogger()

	router := gin.New()
	router.Use(RateLimiter(logger, 0.001, 1))
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", w.Code)
	}
	if len(hook.Entries) != 1 {
		t.Errorf("Expected one rate limit log entry, got %d", len(hook.Entries))
	}
}

func TestContentTypeValidation(t *testing.T) {
	router := gin.New()
	router.Use(ContentTypeValidation())
	router.POST("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name        string
		contentType string
		want        int
	}{
		{name: "json", contentType: "application/json", want: http.StatusOK},
		{name: "json with charset", contentType: "application/json; charset=utf-8", want: http.StatusOK},
		{name: "missing", contentType: "", want: http.StatusBadRequest},
		{name: "unsupported", contentType: "text/plain", want: http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestErrorHandler(t *testing.T) {
	logger, hook := test.NewNullLogger()

	router := gin.New()
	router.Use(ErrorHandler(logger))
	router.GET("/unwritten", func(c *gin.Context) {
		_ = c.Error(http.ErrBodyNotAllowed)
	})
	router.GET("/written", func(c *gin.Context) {
		_ = c.Error(http.ErrBodyNotAllowed)
		c.JSON(http.StatusNotFound, gin.H{"error": "missing"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unwritten", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected handler status 404 to be kept, got %d", w.Code)
	}
	if len(hook.Entries) != 2 {
		t.Errorf("Expected 2 logged errors, got %d", len(hook.Entries))
	}
}
