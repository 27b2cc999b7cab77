package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Publisher delivers catalog events. Implementations must not block the
// caller longer than the context allows.
type Publisher interface {
	Publish(ctx context.Context, event CatalogChangedEvent) error
}

// NopPublisher drops every event. It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, CatalogChangedEvent) error { return nil }

// AMQPPublisher publishes events as persistent JSON messages to a durable
// queue on the default exchange. Each call opens its own connection so a
// broker outage never leaves a broken channel behind.
type AMQPPublisher struct {
	URL   string
	Queue string
}

// NewAMQPPublisher returns a publisher for the given broker URL and queue.
func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Queue: queue}
}

// Publish sends event. Errors are logged and returned so the caller can
// choose to ignore them.
func (p *AMQPPublisher) Publish(ctx context.Context, event CatalogChangedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      contextDialer(ctx),
	})
	if err != nil {
		logrus.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()
	// Channel setup and publish have no deadline of their own once the
	// handshake completes; closing the connection unblocks them.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	ch, err := conn.Channel()
	if err != nil {
		logrus.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		logrus.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		logrus.WithError(err).Warn("rabbitmq: publish failed")
		return err
	}
	return nil
}

// defaultHandshakeTimeout bounds the AMQP handshake when ctx has no deadline.
const defaultHandshakeTimeout = 5 * time.Second

// contextDialer returns an amqp dial func that honours ctx for the TCP
// connect and sets the handshake deadline from it.
func contextDialer(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		deadline, ok := ctx.Deadline()
		if !ok {
			deadline = time.Now().Add(defaultHandshakeTimeout)
		}
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	}
}
