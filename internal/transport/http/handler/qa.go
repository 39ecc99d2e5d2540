package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"webqa/internal/ai"
	"webqa/internal/app"
	"webqa/internal/fetcher"
	"webqa/internal/transport/http/response"
)

type qaService interface {
	Ingest(ctx context.Context, urls []string) (*app.IngestResult, error)
	Query(ctx context.Context, question string) (*app.QueryResult, error)
	Status() app.Status
}

type QAHandler struct {
	pipeline qaService
}

type IngestRequest struct {
	URLs []string `json:"urls" binding:"required"`
}

type IngestResponse struct {
	Message string `json:"message"`
	*app.IngestResult
}

type QueryRequest struct {
	Question string `json:"question" binding:"required"`
}

func NewQAHandler(pipeline qaService) *QAHandler {
	return &QAHandler{pipeline: pipeline}
}

func (h *QAHandler) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "please provide an array of URLs")
		return
	}

	result, err := h.pipeline.Ingest(c.Request.Context(), req.URLs)
	if err != nil {
		writePipelineError(c, err)
		return
	}

	message := "URLs ingested successfully"
	if len(result.Failures) > 0 {
		message = "URLs ingested with failures"
	}
	response.OK(c, IngestResponse{Message: message, IngestResult: result})
}

func (h *QAHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "please provide a question")
		return
	}

	result, err := h.pipeline.Query(c.Request.Context(), req.Question)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *QAHandler) Status(c *gin.Context) {
	response.OK(c, h.pipeline.Status())
}

func writePipelineError(c *gin.Context, err error) {
	var fetchErr *fetcher.FetchError
	var modelErr *ai.ModelCallError
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrIndexNotReady):
		response.Error(c, http.StatusBadRequest, response.CodeIndexNotReady, err.Error())
	case errors.As(err, &fetchErr):
		response.Error(c, http.StatusInternalServerError, response.CodeFetchFailed, err.Error())
	case errors.As(err, &modelErr):
		response.Error(c, http.StatusInternalServerError, response.CodeModelCall, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, err.Error())
	}
}
