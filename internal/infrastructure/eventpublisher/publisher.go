// Package eventpublisher delivers ledger events. The log publisher is
// always available; an AMQP publisher takes over when a broker is
// configured. Events are notifications only and are never read back.
package eventpublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iho/saku/internal/domain"
	"github.com/iho/saku/internal/infrastructure/metrics"
	"github.com/iho/saku/internal/usecase"
)

// LogPublisher is a simple publisher that logs events.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, event *domain.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	p.logger.Info("EVENT PUBLISHED",
		slog.String("event_id", event.ID),
		slog.String("event_type", event.EventType),
		slog.String("session_id", event.SessionID),
		slog.String("payload", string(payload)))

	return nil
}

// AMQPPublisher publishes events to a topic exchange, routed by event type.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial AMQP broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

// Publish sends the event as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, event *domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		event.EventType, // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.OccurredAt,
			Body:         body,
		})
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}

	return p.conn.Close()
}

// Instrumented wraps a publisher and keeps ledger metrics in step with
// the event stream.
type Instrumented struct {
	inner   usecase.EventPublisher
	metrics *metrics.Metrics
}

// NewInstrumented creates an Instrumented publisher.
func NewInstrumented(inner usecase.EventPublisher, m *metrics.Metrics) *Instrumented {
	return &Instrumented{inner: inner, metrics: m}
}

// Publish delegates to the wrapped publisher and updates counters.
func (p *Instrumented) Publish(ctx context.Context, event *domain.Event) error {
	// The mutation already happened, so activity counters move either way.
	p.record(event)

	if err := p.inner.Publish(ctx, event); err != nil {
		p.metrics.PublishFailures.WithLabelValues(event.EventType).Inc()
		return err
	}

	p.metrics.EventsPublished.WithLabelValues(event.EventType).Inc()

	return nil
}

func (p *Instrumented) record(event *domain.Event) {
	switch event.EventType {
	case domain.EventTypeSessionCreated:
		p.metrics.SessionsCreated.Inc()
		p.metrics.SessionsActive.Inc()
	case domain.EventTypeSessionDropped:
		p.metrics.SessionsDropped.Inc()
		p.metrics.SessionsActive.Dec()
	case domain.EventTypeTransactionAdded:
		txType, _ := event.Payload["type"].(string)
		p.metrics.TransactionsAdded.WithLabelValues(txType).Inc()
	case domain.EventTypeTransactionDeleted:
		p.metrics.TransactionsDeleted.Inc()
	case domain.EventTypeLedgerCleared:
		p.metrics.LedgersCleared.Inc()
	}
}
