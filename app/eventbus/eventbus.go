package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
)

// EventBus publishes and subscribes to wordle topics over core NATS.
type EventBus interface {
	message.Publisher
	message.Subscriber
	// Healthy reports whether the connection carrying publishes and subscriptions is up.
	Healthy() bool
}

// eventBus implements EventBus.
type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	natsConn   *nc.Conn
	closed     chan struct{}
	logger     *slog.Logger
}

// drainTimeout bounds how long Close waits for in-flight subscriptions to drain.
const drainTimeout = 10 * time.Second

// NewEventBus connects to natsURL. Subscriptions share queueGroup so that several
// bot instances split the inbound messages instead of each answering them.
// The publisher and subscriber share one connection, the one Healthy reports on.
func NewEventBus(ctx context.Context, natsURL, queueGroup string, logger *slog.Logger) (EventBus, error) {
	closed := make(chan struct{})
	natsConn, err := nc.Connect(natsURL,
		nc.Name("wordle-bot"),
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30*time.Second),
		nc.ReconnectWait(time.Second),
		nc.DrainTimeout(drainTimeout),
		nc.ClosedHandler(func(*nc.Conn) { close(closed) }),
	)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to connect to NATS", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	// Create a Watermill logger that wraps slog
	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}

	publisher, err := nats.NewPublisherWithNatsConn(
		natsConn,
		nats.PublisherPublishConfig{
			Marshaler:         marshaler,
			SubjectCalculator: nats.DefaultSubjectCalculator,
			JetStream:         nats.JetStreamConfig{Disabled: true},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		logger.ErrorContext(ctx, "Failed to create Watermill publisher", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriberWithNatsConn(
		natsConn,
		nats.SubscriberSubscriptionConfig{
			QueueGroupPrefix: queueGroup,
			SubscribersCount: 1,
			AckWaitTimeout:   30 * time.Second,
			CloseTimeout:     30 * time.Second,
			Unmarshaler:      marshaler,
			JetStream:        nats.JetStreamConfig{Disabled: true},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		logger.ErrorContext(ctx, "Failed to create Watermill subscriber", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Connected to NATS", slog.String("url", natsURL), slog.String("queue_group", queueGroup))

	return &eventBus{
		publisher:  publisher,
		subscriber: subscriber,
		natsConn:   natsConn,
		closed:     closed,
		logger:     logger,
	}, nil
}

func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
		eb.logger.Debug("Publishing message",
			slog.String("topic", topic),
			slog.String("message_id", msg.UUID),
		)
	}
	if err := eb.publisher.Publish(topic, messages...); err != nil {
		eb.logger.Error("Failed to publish message", slog.String("topic", topic), slog.Any("error", err))
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	eb.logger.InfoContext(ctx, "Subscribing to topic", slog.String("topic", topic))
	messages, err := eb.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to topic %s: %w", topic, err)
	}
	return messages, nil
}

func (eb *eventBus) Healthy() bool {
	return eb.natsConn != nil && eb.natsConn.IsConnected()
}

// Close drains the subscriber, then closes the shared connection. The subscriber
// must go first: closing the publisher closes the connection it drains.
func (eb *eventBus) Close() error {
	if eb.subscriber != nil {
		if err := eb.subscriber.Close(); err != nil {
			eb.logger.Error("Error closing NATS subscriber", "error", err)
		} else {
			select {
			case <-eb.closed:
			case <-time.After(drainTimeout):
				eb.logger.Warn("NATS drain did not finish in time")
			}
		}
	}
	if eb.publisher != nil {
		if err := eb.publisher.Close(); err != nil {
			eb.logger.Error("Error closing NATS publisher", "error", err)
		}
	}
	return nil
}
