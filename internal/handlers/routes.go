package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"image-pipeline/internal/adapters/storage"
	"image-pipeline/internal/models"
	"image-pipeline/internal/services"
)

// maxEventBytes bounds a single stage event on the local server
const maxEventBytes = 20 << 20

// PipelineHandler exposes the pipeline stages over HTTP for local development
type PipelineHandler struct {
	serializeService services.SerializeService
	classifyService  services.ClassifyService
	filterService    services.FilterService
	pipelineService  services.PipelineService
	writer           storage.ObjectWriter
}

// NewPipelineHandler creates a new pipeline HTTP handler. Uploads are enabled
// when the store accepts writes.
func NewPipelineHandler(container *services.ServiceContainer, store storage.ObjectStore) *PipelineHandler {
	writer, _ := store.(storage.ObjectWriter)
	return &PipelineHandler{
		serializeService: container.SerializeService,
		classifyService:  container.ClassifyService,
		filterService:    container.FilterService,
		pipelineService:  container.PipelineService,
		writer:           writer,
	}
}

// RegisterRoutes mounts the health check and stage routes on the router
func RegisterRoutes(router *gin.Engine, h *PipelineHandler) {
	router.GET("/health", Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/serialize", h.Serialize)
		v1.POST("/classify", h.Classify)
		v1.POST("/filter", h.Filter)
		v1.POST("/pipeline", h.Pipeline)

		if h.writer != nil {
			v1.PUT("/objects/:bucket/*key", h.PutObject)
		}
	}
}

// Health reports that the server is up
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	})
}

// Serialize runs the fetcher for {"s3_bucket", "s3_key"}
func (h *PipelineHandler) Serialize(c *gin.Context) {
	event, ok := readEvent(c)
	if !ok {
		return
	}

	req, err := models.ParseFetchRequest(event)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.serializeService.Serialize(c.Request.Context(), req)
	respond(c, resp, err)
}

// Classify runs the classifier on a serializer envelope
func (h *PipelineHandler) Classify(c *gin.Context) {
	event, ok := readEvent(c)
	if !ok {
		return
	}

	resp, err := h.classifyService.Classify(c.Request.Context(), event)
	respond(c, resp, err)
}

// Filter runs the confidence gate on a classifier envelope
func (h *PipelineHandler) Filter(c *gin.Context) {
	event, ok := readEvent(c)
	if !ok {
		return
	}

	resp, err := h.filterService.Filter(c.Request.Context(), event)
	respond(c, resp, err)
}

// Pipeline runs all three stages for {"s3_bucket", "s3_key"}
func (h *PipelineHandler) Pipeline(c *gin.Context) {
	event, ok := readEvent(c)
	if !ok {
		return
	}

	req, err := models.ParseFetchRequest(event)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.pipelineService.Run(c.Request.Context(), req)
	respond(c, resp, err)
}

// PutObject stores the request body as an image for later pipeline runs
func (h *PipelineHandler) PutObject(c *gin.Context) {
	bucket := c.Param("bucket")
	key := strings.TrimPrefix(c.Param("key"), "/")

	data, ok := readEvent(c)
	if !ok {
		return
	}

	if err := h.writer.PutObject(c.Request.Context(), bucket, key, data); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, storage.ObjectLocation{Bucket: bucket, Key: key})
}

func readEvent(c *gin.Context) ([]byte, bool) {
	event, err := io.ReadAll(io.LimitReader(c.Request.Body, maxEventBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return nil, false
	}
	return event, true
}

// respond writes the stage envelope exactly as Lambda would return it
func respond(c *gin.Context, resp *models.Response, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, body := newErrorResponse(err)
	c.JSON(status, body)
}
