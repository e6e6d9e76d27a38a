package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
	"github.com/pageza/recipe-video-analyzer/backend/internal/service"
)

// multipartOverhead is the allowance for boundaries and part headers on top of the file limit
const multipartOverhead = 1 << 20

// AnalyzeHandler serves the video analysis endpoint
type AnalyzeHandler struct {
	service service.IAnalysisService
}

// NewAnalyzeHandler creates a new AnalyzeHandler instance
func NewAnalyzeHandler(svc service.IAnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{service: svc}
}

// RegisterRoutes mounts the analysis routes. uploadMiddleware only guards POST /analyze.
func (h *AnalyzeHandler) RegisterRoutes(router gin.IRouter, uploadMiddleware ...gin.HandlerFunc) {
	router.GET("/analyze", h.Probe)
	router.POST("/analyze", append(uploadMiddleware, h.Analyze)...)
	router.GET("/analyses", h.ListAnalyses)
}

// Probe reports that the endpoint is reachable
func (h *AnalyzeHandler) Probe(c *gin.Context) {
	c.JSON(http.StatusOK, model.AnalysisResponse{
		Status:  model.StatusSuccess,
		Message: model.ProbeMessage,
	})
}

// Analyze accepts a multipart upload in the "file" field
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()
	maxBytes := h.service.MaxUploadBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		err = formError(err)
		if !isProcessingError(err) {
			h.service.RecordRejection(ctx, "", err)
		}
		h.writeError(c, err)
		return
	}

	resp, err := h.service.Analyze(ctx, uploadFromHeader(fh))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAnalyses returns the newest analysis records
func (h *AnalyzeHandler) ListAnalyses(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, model.NewErrorResponse("limit must be a positive integer"))
			return
		}
		limit = n
	}

	records, err := h.service.RecentRecords(c.Request.Context(), limit)
	if errors.Is(err, service.ErrRecordsDisabled) {
		c.JSON(http.StatusNotFound, model.NewErrorResponse(err.Error()))
		return
	}
	if err != nil {
		log.Printf("Failed to list analysis records: %v", err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to fetch analysis records"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *AnalyzeHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoFile):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(service.ErrNoFile.Error()))
	case errors.Is(err, service.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(service.TooLargeMessage(h.service.MaxUploadBytes())))
	default:
		log.Printf("Video analysis failed: %v", err)
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(err.Error()))
	}
}

// formError maps a multipart parsing failure onto the service error variants.
// Only a well-formed form without a "file" part counts as a missing file.
func formError(err error) error {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return service.ErrFileTooLarge
	case errors.Is(err, http.ErrMissingFile):
		return service.ErrNoFile
	default:
		return &service.ProcessingError{Err: fmt.Errorf("failed to parse upload: %w", err)}
	}
}

func isProcessingError(err error) bool {
	var perr *service.ProcessingError
	return errors.As(err, &perr)
}

func uploadFromHeader(fh *multipart.FileHeader) *service.Upload {
	return &service.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
