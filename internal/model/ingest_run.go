package model

import (
	"encoding/json"
	"time"
)

const (
	IngestRunSucceeded = "succeeded"
	IngestRunFailed    = "failed"
)

// IngestRun summarizes one ingestion attempt. URLs is stored as a JSON array.
type IngestRun struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RunID      string    `gorm:"size:36;uniqueIndex;not null" json:"run_id"`
	Policy     string    `gorm:"size:16;not null" json:"policy"`
	Status     string    `gorm:"size:16;not null;index" json:"status"`
	URLCount   int       `json:"url_count"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	ChunkCount int       `json:"chunk_count"`
	Error      string    `gorm:"type:text" json:"error,omitempty"`
	URLs       string    `gorm:"type:text" json:"-"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// URLList returns the parsed URL list; empty on parse error.
func (r *IngestRun) URLList() []string {
	if r.URLs == "" {
		return nil
	}
	var urls []string
	_ = json.Unmarshal([]byte(r.URLs), &urls)
	return urls
}

// SetURLs stores the URL list as JSON.
func (r *IngestRun) SetURLs(urls []string) {
	if len(urls) == 0 {
		r.URLs = "[]"
		return
	}
	b, _ := json.Marshal(urls)
	r.URLs = string(b)
}
