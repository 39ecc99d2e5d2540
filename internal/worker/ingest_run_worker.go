package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"webqa/internal/model"
	"webqa/internal/platform/rabbitmq"
)

type runStore interface {
	Create(run *model.IngestRun) error
}

// IngestRunWorker consumes ingestion run events and persists them.
type IngestRunWorker struct {
	conn      *amqp.Connection
	repo      runStore
	queueName string
	logger    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewIngestRunWorker(conn *amqp.Connection, repo runStore, queueName string, logger *slog.Logger) *IngestRunWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestRunWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
		logger:    logger,
	}
}

func (w *IngestRunWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handle(d.Body); err != nil {
					w.logger.Error("ingest run worker dropped message", "message_id", d.MessageId, "error", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *IngestRunWorker) handle(body []byte) error {
	run, err := rabbitmq.DecodeIngestRun(body)
	if err != nil {
		return err
	}
	if err := w.repo.Create(&run); err != nil {
		return err
	}
	return nil
}

func (w *IngestRunWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
