package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"image-pipeline/internal/adapters/inference"
	"image-pipeline/internal/adapters/storage"
	"image-pipeline/internal/models"
	"image-pipeline/internal/services"
)

func newTestRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, NewPipelineHandler(f.container, f.store))
	return router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRoutes_Health(t *testing.T) {
	router := newTestRouter(newFixture(t, "[0.99]"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestRoutes_StageByStage(t *testing.T) {
	router := newTestRouter(newFixture(t, "[0.01, 0.99]"))

	w := post(router, "/api/v1/serialize", `{"s3_bucket":"bucket","s3_key":"test/cat.png"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("serialize: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = post(router, "/api/v1/classify", w.Body.String())
	if w.Code != http.StatusOK {
		t.Fatalf("classify: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = post(router, "/api/v1/filter", w.Body.String())
	if w.Code != http.StatusOK {
		t.Fatalf("filter: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response: %v", err)
	}
	body, err := resp.DecodeBody()
	if err != nil {
		t.Fatalf("DecodeBody failed: %v", err)
	}
	if body.S3Key != "test/cat.png" {
		t.Errorf("Expected provenance to be carried, got %+v", body)
	}
}

func TestRoutes_Pipeline(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		event     string
		wantCode  int
		wantError string
	}{
		{name: "passes gate", response: "[0.03, 0.97]", event: `{"s3_bucket":"bucket","s3_key":"test/cat.png"}`, wantCode: http.StatusOK},
		{name: "below threshold", response: "[0.5, 0.5]", event: `{"s3_bucket":"bucket","s3_key":"test/cat.png"}`, wantCode: http.StatusUnprocessableEntity, wantError: services.ThresholdNotMetMarker},
		{name: "missing object", response: "[0.99]", event: `{"s3_bucket":"bucket","s3_key":"missing.png"}`, wantCode: http.StatusNotFound, wantError: "Object not found"},
		{name: "missing key", response: "[0.99]", event: `{"s3_bucket":"bucket"}`, wantCode: http.StatusBadRequest},
		{name: "not json", response: "[0.99]", event: `{`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(newFixture(t, tt.response))

			w := post(router, "/api/v1/pipeline", tt.event)
			if w.Code != tt.wantCode {
				t.Fatalf("Expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}

			if tt.wantError != "" {
				var errResp ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
					t.Fatalf("Invalid error response: %v", err)
				}
				if errResp.Error != tt.wantError {
					t.Errorf("Expected error %q, got %q", tt.wantError, errResp.Error)
				}
			}
		})
	}
}

func TestRoutes_ClassifyEndpointFailure(t *testing.T) {
	f := newFixture(t, "[0.99]")
	f.endpoint.FailWith(inference.ErrEndpointThrottled)
	router := newTestRouter(f)

	w := post(router, "/api/v1/serialize", `{"s3_bucket":"bucket","s3_key":"test/cat.png"}`)
	w = post(router, "/api/v1/classify", w.Body.String())
	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRoutes_MissingObjectLocation(t *testing.T) {
	router := newTestRouter(newFixture(t, "[0.99]"))

	w := post(router, "/api/v1/serialize", `{"s3_bucket":"bucket","s3_key":"missing.png"}`)
	var errResp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Invalid error response: %v", err)
	}
	if errResp.Object == nil || errResp.Object.Bucket != "bucket" || errResp.Object.Key != "missing.png" {
		t.Errorf("Expected the object location in the error, got %+v", errResp.Object)
	}
}

func TestRoutes_PutObjectThenPipeline(t *testing.T) {
	router := newTestRouter(newFixture(t, "[0.01, 0.99]"))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/objects/uploads/bikes/red.png", strings.NewReader("\x89PNG"))
	req.Header.Set("Content-Type", "image/png")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = post(router, "/api/v1/pipeline", `{"s3_bucket":"uploads","s3_key":"bikes/red.png"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

type readOnlyStore struct {
	storage.ObjectStore
}

func TestRoutes_PutObjectNeedsWritableStore(t *testing.T) {
	f := newFixture(t, "[0.99]")
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, NewPipelineHandler(f.container, readOnlyStore{f.store}))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/objects/uploads/red.png", strings.NewReader("x"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 without an upload route, got %d", w.Code)
	}
}
