package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Ingest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ingest", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req struct {
			URLs []string `json:"urls"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"https://example.com"}, req.URLs)
		_, _ = w.Write([]byte(`{"message":"URLs ingested successfully","runId":"r1",
			"results":[{"url":"https://example.com","contentLength":42}],"failures":[],"chunkCount":1}`))
	}))
	defer server.Close()

	resp, err := New(server.URL+"/", time.Second).Ingest(context.Background(), []string{"https://example.com"})

	require.NoError(t, err)
	assert.Equal(t, "URLs ingested successfully", resp.Message)
	assert.Equal(t, "r1", resp.RunID)
	assert.Equal(t, 1, resp.ChunkCount)
	assert.Equal(t, []URLResult{{URL: "https://example.com", ContentLength: 42}}, resp.Results)
}

func TestClient_Ask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/query", r.URL.Path)
		_, _ = w.Write([]byte(`{"answer":"illustrative examples","sourceCount":2,"cached":true}`))
	}))
	defer server.Close()

	resp, err := New(server.URL, time.Second).Ask(context.Background(), "What is it for?")

	require.NoError(t, err)
	assert.Equal(t, &QueryResponse{Answer: "illustrative examples", SourceCount: 2, Cached: true}, resp)
}

func TestClient_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"state":"empty","urls":[],"chunkCount":0}`))
	}))
	defer server.Close()

	st, err := New(server.URL, time.Second).Status(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "empty", st.State)
	assert.Empty(t, st.URLs)
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":40010,"error":"no content has been ingested, please ingest URLs first"}`))
	}))
	defer server.Close()

	_, err := New(server.URL, time.Second).Ask(context.Background(), "anything")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, 40010, apiErr.Code)
	assert.Contains(t, apiErr.Error(), "please ingest URLs first")
}

func TestClient_PlainTextError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(server.URL, time.Second).Status(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad gateway", apiErr.Message)
	assert.Equal(t, "server returned 502: bad gateway", apiErr.Error())
}
