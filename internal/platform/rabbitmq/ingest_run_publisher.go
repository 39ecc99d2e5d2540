package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"webqa/internal/model"
)

// IngestRunPublisher sends ingestion run summaries to the history queue.
type IngestRunPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewIngestRunPublisher(conn *amqp.Connection, queueName string) *IngestRunPublisher {
	return &IngestRunPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *IngestRunPublisher) Record(ctx context.Context, run model.IngestRun) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if err := declareQueue(ch, p.queueName); err != nil {
		return err
	}

	payload, err := EncodeIngestRun(run)
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
			MessageId:    run.RunID,
		},
	); err != nil {
		return fmt.Errorf("publish ingest run failed: %w", err)
	}
	return nil
}

// ingestRunMessage is the wire form of a run; it carries the URL list decoded so
// consumers other than the worker can read it.
type ingestRunMessage struct {
	model.IngestRun
	URLList []string `json:"urls"`
}

func EncodeIngestRun(run model.IngestRun) ([]byte, error) {
	payload, err := json.Marshal(ingestRunMessage{IngestRun: run, URLList: run.URLList()})
	if err != nil {
		return nil, fmt.Errorf("marshal ingest run payload failed: %w", err)
	}
	return payload, nil
}

func DecodeIngestRun(body []byte) (model.IngestRun, error) {
	var msg ingestRunMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return model.IngestRun{}, fmt.Errorf("decode ingest run payload failed: %w", err)
	}
	if msg.RunID == "" {
		return model.IngestRun{}, fmt.Errorf("decode ingest run payload failed: missing run_id")
	}
	run := msg.IngestRun
	run.ID = 0
	run.SetURLs(msg.URLList)
	return run, nil
}
