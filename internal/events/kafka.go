package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	kgo "github.com/segmentio/kafka-go"
)

// MessageWriter is the part of kafka.Writer used by KafkaPublisher
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kgo.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON messages keyed by recipient id, so all
// events of one recipient land on the same partition in order
type KafkaPublisher struct {
	w       MessageWriter
	logger  echo.Logger
	timeout time.Duration
}

// NewKafkaPublisher creates a publisher writing to topic on the comma separated brokers.
// Writes are asynchronous so requests never wait on the broker; delivery
// failures are logged from the writer's completion callback.
func NewKafkaPublisher(brokers, topic string, logger echo.Logger) *KafkaPublisher {
	w := &kgo.Writer{
		Addr:                   kgo.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kgo.Hash{},
		RequiredAcks:           kgo.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             completionLogger(logger),
	}
	return NewKafkaPublisherWithWriter(w, logger)
}

func completionLogger(logger echo.Logger) func([]kgo.Message, error) {
	return func(msgs []kgo.Message, err error) {
		if err != nil {
			logger.Errorf("events: deliver %d message(s): %v", len(msgs), err)
		}
	}
}

func NewKafkaPublisherWithWriter(w MessageWriter, logger echo.Logger) *KafkaPublisher {
	return &KafkaPublisher{w: w, logger: logger, timeout: 5 * time.Second}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...Event) {
	if len(events) == 0 {
		return
	}
	msgs := make([]kgo.Message, 0, len(events))
	for _, ev := range events {
		b, err := json.Marshal(ev)
		if err != nil {
			p.logger.Errorf("events: marshal %s: %v", ev.Action, err)
			continue
		}
		msgs = append(msgs, kgo.Message{
			Key:   []byte(fmt.Sprint(ev.Notification.RecipientID)),
			Value: b,
			Time:  ev.OccurredAt,
		})
	}

	// with an async writer this only enqueues; the request may finish first
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Errorf("events: publish %d message(s): %v", len(msgs), err)
	}
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }
