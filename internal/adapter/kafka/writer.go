package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/cityscan-tabular-etl/internal/config"
	"github.com/couchcryptid/cityscan-tabular-etl/internal/domain"
)

// Publisher produces one message per cleaned row to a Kafka topic.
// It implements pipeline.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured topic.
func NewPublisher(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		WriteTimeout:           cfg.KafkaTimeout,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, clock: clock, logger: logger}
}

// Publish serializes every row of table and writes them in a single
// WriteMessages call. Messages are keyed "<table>/<row index>".
func (p *Publisher) Publish(ctx context.Context, table domain.Table) error {
	if len(table.Rows) == 0 {
		return nil
	}
	processedAt := p.clock.Now().UTC()
	msgs := make([]kafkago.Message, len(table.Rows))
	for i := range table.Rows {
		msg, err := serializeRow(table, i, processedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %s: %w", table.Name, err)
	}
	p.logger.Debug("table published", "table", table.Name, "topic", p.writer.Topic, "messages", len(msgs))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeRow marshals one table row into a Kafka message. The value is a
// JSON object keyed by column name; empty cells become null.
func serializeRow(table domain.Table, i int, processedAt time.Time) (kafkago.Message, error) {
	row := table.Rows[i]
	if len(row) != len(table.Header) {
		return kafkago.Message{}, fmt.Errorf("serialize %s row %d: %d cells for %d columns",
			table.Name, i, len(row), len(table.Header))
	}
	record := make(map[string]*string, len(row))
	for j, col := range table.Header {
		if row[j] == "" {
			record[col] = nil
			continue
		}
		record[col] = &row[j]
	}
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s row %d: %w", table.Name, i, err)
	}
	return kafkago.Message{
		Key:   []byte(table.Name + "/" + strconv.Itoa(i)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "dataset", Value: []byte(table.Name)},
			{Key: "processed_at", Value: []byte(processedAt.Format(time.RFC3339))},
		},
	}, nil
}
