package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"webqa/internal/model"
	"webqa/internal/transport/http/response"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

type runLister interface {
	ListRecent(limit int) ([]model.IngestRun, error)
	GetByRunID(runID string) (*model.IngestRun, error)
}

// HistoryHandler serves ingestion runs. A nil lister means history is disabled.
type HistoryHandler struct {
	runs runLister
}

type ingestRunView struct {
	RunID      string    `json:"runId"`
	Policy     string    `json:"policy"`
	Status     string    `json:"status"`
	URLs       []string  `json:"urls"`
	URLCount   int       `json:"urlCount"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	ChunkCount int       `json:"chunkCount"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

func NewHistoryHandler(runs runLister) *HistoryHandler {
	return &HistoryHandler{runs: runs}
}

func (h *HistoryHandler) List(c *gin.Context) {
	if h.runs == nil {
		response.OK(c, gin.H{"enabled": false, "runs": []ingestRunView{}})
		return
	}

	limit := defaultHistoryLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	runs, err := h.runs.ListRecent(limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list ingestions failed")
		return
	}

	views := make([]ingestRunView, len(runs))
	for i := range runs {
		views[i] = newIngestRunView(&runs[i])
	}
	response.OK(c, gin.H{"enabled": true, "runs": views})
}

func (h *HistoryHandler) Get(c *gin.Context) {
	if h.runs == nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "ingestion history is disabled")
		return
	}

	run, err := h.runs.GetByRunID(c.Param("runId"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get ingestion failed")
		return
	}
	if run == nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "ingestion not found")
		return
	}
	response.OK(c, newIngestRunView(run))
}

func newIngestRunView(run *model.IngestRun) ingestRunView {
	return ingestRunView{
		RunID:      run.RunID,
		Policy:     run.Policy,
		Status:     run.Status,
		URLs:       run.URLList(),
		URLCount:   run.URLCount,
		Succeeded:  run.Succeeded,
		Failed:     run.Failed,
		ChunkCount: run.ChunkCount,
		Error:      run.Error,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}
}
