// Package eventbus wraps the NATS JetStream transport behind Watermill's
// publisher/subscriber interfaces. One NATS connection is shared by the
// publisher and the subscriber.
package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// EventBus is both a Watermill publisher and subscriber.
type EventBus interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}

// Config holds NATS connection settings.
type Config struct {
	URL      string
	NkeySeed string // optional; enables nkey authentication when set
}

// Bus implements EventBus over a single NATS connection.
type Bus struct {
	conn       *nc.Conn
	publisher  message.Publisher
	subscriber message.Subscriber
}

// New connects to NATS and builds the JetStream-backed publisher and
// subscriber pair.
func New(cfg Config, logger watermill.LoggerAdapter) (*Bus, error) {
	opts := []nc.Option{
		nc.MaxReconnects(-1),
		nc.ReconnectWait(2 * time.Second),
	}

	if cfg.NkeySeed != "" {
		opt, err := nkeyOption(cfg.NkeySeed)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}

	conn, err := nc.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	jsConfig := wmnats.JetStreamConfig{
		Disabled:      false,
		AutoProvision: true,
	}

	publisher, err := wmnats.NewPublisherWithNatsConn(conn, wmnats.PublisherPublishConfig{
		Marshaler:         &wmnats.GobMarshaler{},
		JetStream:         jsConfig,
		SubjectCalculator: wmnats.DefaultSubjectCalculator,
	}, logger)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriberWithNatsConn(conn, wmnats.SubscriberSubscriptionConfig{
		Unmarshaler: &wmnats.GobMarshaler{},
		JetStream: wmnats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: true,
			SubscribeOptions: []nc.SubOpt{
				nc.DeliverAll(),
				nc.AckExplicit(),
			},
		},
		SubjectCalculator: wmnats.DefaultSubjectCalculator,
	}, logger)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	return &Bus{
		conn:       conn,
		publisher:  publisher,
		subscriber: subscriber,
	}, nil
}

// nkeyOption builds the NATS auth option from a raw nkey seed.
func nkeyOption(seed string) (nc.Option, error) {
	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("invalid nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive nkey public key: %w", err)
	}
	return nc.Nkey(pub, kp.Sign), nil
}

// Publish publishes messages to a topic.
func (b *Bus) Publish(topic string, messages ...*message.Message) error {
	return b.publisher.Publish(topic, messages...)
}

// Subscribe subscribes to a topic.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.subscriber.Subscribe(ctx, topic)
}

// Conn exposes the underlying NATS connection for request/reply callers.
func (b *Bus) Conn() *nc.Conn {
	return b.conn
}

// Close shuts down the publisher, subscriber, and connection.
func (b *Bus) Close() error {
	var errs []error
	if err := b.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close subscriber: %w", err))
	}
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close publisher: %w", err))
	}
	b.conn.Close()
	if len(errs) > 0 {
		return fmt.Errorf("errors during eventbus close: %v", errs)
	}
	return nil
}

var _ EventBus = (*Bus)(nil)
