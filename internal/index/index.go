// Package index holds chunk embeddings in memory and answers nearest-neighbour queries.
package index

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"webqa/internal/chunker"
)

// ErrDimensionMismatch is returned when the provider returns vectors of differing width.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Embedder produces embeddings for stored chunks and for queries.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Record pairs a chunk with its embedding.
type Record struct {
	Chunk  chunker.Chunk
	Vector []float32
}

// Result is a chunk ranked against a query.
type Result struct {
	Chunk chunker.Chunk
	Score float64
}

// Index is an immutable set of embedding records. A rebuilt corpus gets a new Index;
// existing ones are never modified, so concurrent searches need no locking.
type Index struct {
	embedder  Embedder
	records   []Record
	dimension int
}

// Build embeds every chunk and returns the resulting index.
func Build(ctx context.Context, embedder Embedder, chunks []chunker.Chunk) (*Index, error) {
	idx := &Index{embedder: embedder}
	if len(chunks) == 0 {
		return idx, nil
	}

	vectors, err := embedder.EmbedDocuments(ctx, chunker.Texts(chunks))
	if err != nil {
		return nil, fmt.Errorf("embed chunks failed: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embed chunks failed: got %d vectors for %d chunks", len(vectors), len(chunks))
	}

	idx.dimension = len(vectors[0])
	idx.records = make([]Record, len(chunks))
	for i := range chunks {
		if len(vectors[i]) != idx.dimension {
			return nil, fmt.Errorf("chunk %d: %w", i, ErrDimensionMismatch)
		}
		idx.records[i] = Record{Chunk: chunks[i], Vector: vectors[i]}
	}
	return idx, nil
}

func (ix *Index) Len() int {
	return len(ix.records)
}

func (ix *Index) Dimension() int {
	return ix.dimension
}

// Search embeds query and returns up to k chunks ordered by cosine similarity, best
// first. Equal scores keep chunk order.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]Result, error) {
	if k <= 0 || len(ix.records) == 0 {
		return nil, nil
	}

	queryVec, err := ix.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query failed: %w", err)
	}
	if len(queryVec) != ix.dimension {
		return nil, fmt.Errorf("query: %w", ErrDimensionMismatch)
	}

	scored := make([]Result, len(ix.records))
	for i := range ix.records {
		scored[i] = Result{
			Chunk: ix.records[i].Chunk,
			Score: CosineSimilarity(queryVec, ix.records[i].Vector),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// CosineSimilarity returns 0 for empty, mismatched or zero-length vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
