package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"

	"github.com/wanderhub/marketplace-chat/internal/config"
	"github.com/wanderhub/marketplace-chat/pkg/util"
)

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type kafkaPublisher struct {
	writer  *kafka.Writer
	metrics *prometheus.HistogramVec
}

// NewPublisher creates the event publisher, or a noop one when kafka is
// disabled in config.
func NewPublisher(lc fx.Lifecycle, cfg *config.Config) (Publisher, error) {
	if !cfg.Kafka.Enabled {
		return &noopPublisher{}, nil
	}

	metrics, err := util.GetHistogramVec("kafka_events_published", "status", "topic")
	if err != nil {
		return nil, fmt.Errorf("get histogram vec: %w", err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return writer.Close()
		},
	})

	return &kafkaPublisher{
		writer:  writer,
		metrics: metrics,
	}, nil
}

// Publish emits one event keyed by requirement id so consumers see events
// for a requirement in order.
func (p *kafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	start := time.Now()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.RequirementID),
		Value: payload,
	})

	status := "ok"
	if err != nil {
		status = "error"
	}
	p.metrics.WithLabelValues(status, p.writer.Topic).Observe(time.Since(start).Seconds())

	if err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	log.Debugw(ctx, "published event", "type", event.Type, "requirement_id", event.RequirementID)
	return nil
}

type noopPublisher struct{}

func (*noopPublisher) Publish(context.Context, Event) error {
	return nil
}
