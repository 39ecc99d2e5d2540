package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"webqa/internal/cache"
	"webqa/internal/chunker"
	"webqa/internal/config"
	"webqa/internal/index"
	"webqa/internal/model"
	"webqa/internal/store"
)

type State string

const (
	StateEmpty     State = "empty"
	StateIngesting State = "ingesting"
	StateReady     State = "ready"
)

// PageFetcher returns the plain text behind a URL.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// AnswerCache stores answers per index snapshot. Implementations must treat a miss as
// (nil, false, nil).
type AnswerCache interface {
	Get(ctx context.Context, snapshotID, question string) (*cache.Answer, bool, error)
	Set(ctx context.Context, snapshotID, question string, answer cache.Answer) error
}

// RunRecorder receives a summary of every ingestion attempt.
type RunRecorder interface {
	Record(ctx context.Context, run model.IngestRun) error
}

type Options struct {
	ChunkSize     int
	ChunkOverlap  int
	TopK          int
	FailurePolicy string
}

// snapshot is everything one successful ingestion produced. It is never mutated after
// being published.
type snapshot struct {
	id      string
	content *store.ContentStore
	index   *index.Index
	chunks  int
	builtAt time.Time
}

// Pipeline owns the ingested corpus and its index. Ingestions are serialized; queries
// read whichever snapshot was last published and never block on an ingestion.
type Pipeline struct {
	fetcher     PageFetcher
	embedder    index.Embedder
	synthesizer *Synthesizer
	cache       AnswerCache
	recorder    RunRecorder
	opts        Options
	logger      *slog.Logger

	// staging collects pages for the ingestion in progress; guarded by ingestMu.
	staging   *store.ContentStore
	ingestMu  sync.Mutex
	ingesting atomic.Bool
	current   atomic.Pointer[snapshot]
}

type PipelineDeps struct {
	Fetcher     PageFetcher
	Embedder    index.Embedder
	Synthesizer *Synthesizer
	Cache       AnswerCache
	Recorder    RunRecorder
	Logger      *slog.Logger
}

func NewPipeline(deps PipelineDeps, opts Options) *Pipeline {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = chunker.DefaultSize
	}
	opts.ChunkOverlap = chunker.NormalizeOverlap(opts.ChunkSize, opts.ChunkOverlap)
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.FailurePolicy == "" {
		opts.FailurePolicy = config.FailurePolicyFailFast
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		fetcher:     deps.Fetcher,
		embedder:    deps.Embedder,
		synthesizer: deps.Synthesizer,
		cache:       deps.Cache,
		recorder:    deps.Recorder,
		opts:        opts,
		logger:      logger,
		staging:     store.NewContentStore(),
	}
}

// URLResult is a successfully scraped URL.
type URLResult struct {
	URL           string `json:"url"`
	ContentLength int    `json:"contentLength"`
}

// URLFailure is a URL skipped under the best-effort policy.
type URLFailure struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

type IngestResult struct {
	RunID      string       `json:"runId"`
	Results    []URLResult  `json:"results"`
	Failures   []URLFailure `json:"failures"`
	ChunkCount int          `json:"chunkCount"`
}

type QueryResult struct {
	Answer      string `json:"answer"`
	SourceCount int    `json:"sourceCount"`
	Cached      bool   `json:"cached"`
}

type Status struct {
	State      State      `json:"state"`
	SnapshotID string     `json:"snapshotId,omitempty"`
	URLs       []string   `json:"urls"`
	ChunkCount int        `json:"chunkCount"`
	BuiltAt    *time.Time `json:"builtAt,omitempty"`
}

// ValidateURLs trims every entry and requires an absolute http(s) URL.
func ValidateURLs(urls []string) ([]string, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: please provide an array of URLs", ErrInvalidInput)
	}
	cleaned := make([]string, 0, len(urls))
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		u, err := url.ParseRequestURI(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidInput, raw)
		}
		cleaned = append(cleaned, raw)
	}
	return cleaned, nil
}

type fetchOutcome struct {
	text string
	err  error
}

// Ingest scrapes urls, replaces the content store and rebuilds the index. Under the
// fail-fast policy any failed URL aborts the request and the previous snapshot stays
// published. Under best-effort the index is built from whatever succeeded.
func (p *Pipeline) Ingest(ctx context.Context, urls []string) (*IngestResult, error) {
	urls, err := ValidateURLs(urls)
	if err != nil {
		return nil, err
	}

	p.ingestMu.Lock()
	defer p.ingestMu.Unlock()
	p.ingesting.Store(true)
	defer p.ingesting.Store(false)

	run := model.IngestRun{
		RunID:     uuid.NewString(),
		Policy:    p.opts.FailurePolicy,
		URLCount:  len(urls),
		StartedAt: time.Now(),
	}
	run.SetURLs(urls)
	p.logger.Info("ingestion started", "run_id", run.RunID, "urls", len(urls), "policy", p.opts.FailurePolicy)

	result, err := p.ingest(ctx, urls, &run)
	run.FinishedAt = time.Now()
	if err != nil {
		run.Status = model.IngestRunFailed
		run.Error = err.Error()
		p.logger.Error("ingestion failed", "run_id", run.RunID, "error", err)
	} else {
		run.Status = model.IngestRunSucceeded
		p.logger.Info("ingestion finished", "run_id", run.RunID, "chunks", result.ChunkCount,
			"succeeded", run.Succeeded, "failed", run.Failed, "took", run.FinishedAt.Sub(run.StartedAt))
	}
	p.record(ctx, run)

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Pipeline) ingest(ctx context.Context, urls []string, run *model.IngestRun) (*IngestResult, error) {
	outcomes, err := p.fetchAll(ctx, urls)
	if err != nil {
		// at least one; the remaining fetches were cancelled
		run.Failed = 1
		return nil, err
	}

	content := p.staging
	content.Clear()
	result := &IngestResult{RunID: run.RunID, Results: []URLResult{}, Failures: []URLFailure{}}
	var fetchErrs []error
	for i, u := range urls {
		if outcomes[i].err != nil {
			fetchErrs = append(fetchErrs, outcomes[i].err)
			result.Failures = append(result.Failures, URLFailure{URL: u, Error: outcomes[i].err.Error()})
			p.logger.Warn("skipping url", "run_id", run.RunID, "url", u, "error", outcomes[i].err)
			continue
		}
		content.Put(u, outcomes[i].text)
		result.Results = append(result.Results, URLResult{URL: u, ContentLength: len([]rune(outcomes[i].text))})
	}
	run.Succeeded = len(result.Results)
	run.Failed = len(result.Failures)
	if content.Len() == 0 {
		return nil, errors.Join(fetchErrs...)
	}

	// Empty pages still count as ingested but add nothing to the corpus.
	var texts []string
	for _, text := range content.Values() {
		if strings.TrimSpace(text) != "" {
			texts = append(texts, text)
		}
	}
	corpus := strings.Join(texts, " ")
	chunks := chunker.Split(corpus, p.opts.ChunkSize, p.opts.ChunkOverlap)
	idx, err := index.Build(ctx, p.embedder, chunks)
	if err != nil {
		return nil, err
	}
	run.ChunkCount = len(chunks)
	result.ChunkCount = len(chunks)

	p.current.Store(&snapshot{
		id:      run.RunID,
		content: content.Clone(),
		index:   idx,
		chunks:  len(chunks),
		builtAt: time.Now(),
	})
	return result, nil
}

// fetchAll fetches every URL concurrently. Under fail-fast the first failure cancels
// the rest and is returned; under best-effort failures are kept per URL.
func (p *Pipeline) fetchAll(ctx context.Context, urls []string) ([]fetchOutcome, error) {
	outcomes := make([]fetchOutcome, len(urls))

	if p.opts.FailurePolicy == config.FailurePolicyBestEffort {
		var g errgroup.Group
		for i, u := range urls {
			g.Go(func() error {
				text, err := p.fetcher.Fetch(ctx, u)
				outcomes[i] = fetchOutcome{text: text, err: err}
				return nil
			})
		}
		_ = g.Wait()
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			text, err := p.fetcher.Fetch(gctx, u)
			if err != nil {
				return err
			}
			outcomes[i] = fetchOutcome{text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (p *Pipeline) record(ctx context.Context, run model.IngestRun) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.Record(context.WithoutCancel(ctx), run); err != nil {
		p.logger.Warn("record ingestion run failed", "run_id", run.RunID, "error", err)
	}
}

// Query answers question from the top-k chunks of the current snapshot.
func (p *Pipeline) Query(ctx context.Context, question string) (*QueryResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: please provide a question", ErrInvalidInput)
	}

	snap := p.current.Load()
	if snap == nil {
		return nil, ErrIndexNotReady
	}

	if p.cache != nil {
		cached, hit, err := p.cache.Get(ctx, snap.id, question)
		if err != nil {
			p.logger.Warn("answer cache read failed", "error", err)
		} else if hit {
			return &QueryResult{Answer: cached.Answer, SourceCount: cached.SourceCount, Cached: true}, nil
		}
	}

	results, err := snap.index.Search(ctx, question, p.opts.TopK)
	if err != nil {
		return nil, err
	}
	contextChunks := make([]string, len(results))
	for i := range results {
		contextChunks[i] = results[i].Chunk.Text
	}

	answer, err := p.synthesizer.Answer(ctx, question, contextChunks)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		entry := cache.Answer{Answer: answer, SourceCount: len(results)}
		if err := p.cache.Set(ctx, snap.id, question, entry); err != nil {
			p.logger.Warn("answer cache write failed", "error", err)
		}
	}

	return &QueryResult{Answer: answer, SourceCount: len(results)}, nil
}

// Status reports the process-level state and a summary of the published snapshot.
func (p *Pipeline) Status() Status {
	snap := p.current.Load()
	st := Status{State: StateEmpty, URLs: []string{}}
	if snap != nil {
		st.State = StateReady
		st.SnapshotID = snap.id
		st.URLs = snap.content.URLs()
		st.ChunkCount = snap.chunks
		builtAt := snap.builtAt
		st.BuiltAt = &builtAt
	}
	if p.ingesting.Load() {
		st.State = StateIngesting
	}
	return st
}
