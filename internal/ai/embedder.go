package ai

import "context"

// EmbeddingModel binds a client to one embedding model and splits large inputs into
// provider-sized batches.
type EmbeddingModel struct {
	client    *OpenAICompatibleClient
	cfg       EmbeddingConfig
	batchSize int
}

func NewEmbeddingModel(client *OpenAICompatibleClient, cfg EmbeddingConfig, batchSize int) *EmbeddingModel {
	if batchSize <= 0 {
		batchSize = 64
	}
	return &EmbeddingModel{client: client, cfg: cfg, batchSize: batchSize}
}

func (m *EmbeddingModel) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += m.batchSize {
		end := i + m.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := m.client.EmbedBatch(ctx, m.cfg, texts[i:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (m *EmbeddingModel) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return m.client.Embed(ctx, m.cfg, text)
}
