package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"cinema-seat-hold/internal/pkg/config"
	"cinema-seat-hold/internal/pkg/errs"
	"cinema-seat-hold/internal/usecase/lifecycle"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Dialer opens a channel and returns a func that closes it with its connection.
type Dialer func(url string) (Channel, func(), error)

func DialAMQP(url string) (Channel, func(), error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, errs.Wrap(err, "dial amqp")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "open channel")
	}
	closeAll := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	return ch, closeAll, nil
}

// Publisher sends lifecycle events to a durable queue as persistent JSON.
// A failed publish drops the channel; the next publish dials again.
type Publisher struct {
	url    string
	queue  string
	dial   Dialer
	logger *slog.Logger

	mu      sync.Mutex
	ch      Channel
	closeCh func()
}

func NewPublisher(cfg config.BrokerConfig, dial Dialer, logger *slog.Logger) *Publisher {
	if dial == nil {
		dial = DialAMQP
	}
	return &Publisher{
		url:    cfg.URL,
		queue:  cfg.Queue,
		dial:   dial,
		logger: logger,
	}
}

func (p *Publisher) Publish(ctx context.Context, ev lifecycle.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return errs.Wrap(err, "marshal event")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelLocked()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Type:         string(ev.Type),
			Timestamp:    ev.OccurredAt.UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.resetLocked()
		return errs.Wrapf(err, "publish %s", ev.Type)
	}
	return nil
}

func (p *Publisher) channelLocked() (Channel, error) {
	if p.ch != nil {
		return p.ch, nil
	}
	ch, closeCh, err := p.dial(p.url)
	if err != nil {
		return nil, err
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		closeCh()
		return nil, errs.Wrapf(err, "declare queue %s", p.queue)
	}
	p.logger.Info("amqp publisher connected", "queue", p.queue)
	p.ch, p.closeCh = ch, closeCh
	return ch, nil
}

func (p *Publisher) resetLocked() {
	if p.closeCh != nil {
		p.closeCh()
	}
	p.ch, p.closeCh = nil, nil
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
}

// LogSink writes events to the log when no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(ctx context.Context, ev lifecycle.Event) error {
	s.logger.DebugContext(ctx, "lifecycle event",
		"type", string(ev.Type),
		"hold_code", ev.HoldCode,
		"screening_id", ev.ScreeningID,
		"seat", ev.Seat,
	)
	return nil
}
