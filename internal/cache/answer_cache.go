package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// Answer is the cached outcome of a query against one index snapshot.
type Answer struct {
	Answer      string `json:"answer"`
	SourceCount int    `json:"source_count"`
}

type AnswerCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewAnswerCache(client *redisv9.Client, ttl time.Duration) *AnswerCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AnswerCache{client: client, ttl: ttl}
}

func (c *AnswerCache) Get(ctx context.Context, snapshotID, question string) (*Answer, bool, error) {
	raw, err := c.client.Get(ctx, c.answerKey(snapshotID, question)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get answer failed: %w", err)
	}

	var answer Answer
	if err := json.Unmarshal([]byte(raw), &answer); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached answer failed: %w", err)
	}
	return &answer, true, nil
}

func (c *AnswerCache) Set(ctx context.Context, snapshotID, question string, answer Answer) error {
	payload, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("marshal answer cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.answerKey(snapshotID, question), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set answer failed: %w", err)
	}
	return nil
}

// answerKey scopes the entry to the snapshot so a new ingestion never sees old answers.
func (c *AnswerCache) answerKey(snapshotID, question string) string {
	sum := sha256.Sum256([]byte(question))
	return fmt.Sprintf("webqa:answer:%s:%s", snapshotID, hex.EncodeToString(sum[:]))
}
