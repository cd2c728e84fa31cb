package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Publisher is the subset of *amqp.Channel the RabbitMQ transport needs.
// Tests substitute a fake.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQNotifier enqueues one e-mail job per confirmation on a durable queue.
// A mail worker outside this service consumes the queue.
//
// A notifier built by DialRabbitMQ logs the broker closing its channel and
// reconnects on the next publish.
type RabbitMQNotifier struct {
	queue string
	log   *slog.Logger

	mu   sync.Mutex
	pub  Publisher
	url  string
	conn *amqp.Connection
	ch   *amqp.Channel
}

// DialRabbitMQ connects to url, opens a channel and declares queue as durable.
func DialRabbitMQ(url, queue string, log *slog.Logger) (*RabbitMQNotifier, error) {
	n := &RabbitMQNotifier{queue: queue, log: log, url: url}
	if err := n.connect(); err != nil {
		return nil, fmt.Errorf("notify.DialRabbitMQ: %w", err)
	}
	return n, nil
}

// NewRabbitMQNotifier publishes through pub to queue on the default exchange.
// The queue must already exist.
func NewRabbitMQNotifier(pub Publisher, queue string, log *slog.Logger) *RabbitMQNotifier {
	return &RabbitMQNotifier{pub: pub, queue: queue, log: log}
}

// connect dials the broker, declares the queue and starts watching the new
// channel. Callers hold n.mu or own n exclusively.
func (n *RabbitMQNotifier) connect() error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close() //nolint:errcheck
		return fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		n.queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		conn.Close() //nolint:errcheck
		return fmt.Errorf("declare queue %q: %w", n.queue, err)
	}

	n.conn, n.ch, n.pub = conn, ch, ch
	go n.watchClose(ch.NotifyClose(make(chan *amqp.Error, 1)))
	return nil
}

// watchClose logs an abnormal close of the channel. A graceful Close closes
// the notification channel without a value and is not logged.
func (n *RabbitMQNotifier) watchClose(closed <-chan *amqp.Error) {
	amqpErr, ok := <-closed
	if !ok || amqpErr == nil {
		return
	}
	n.log.Error("rabbitmq channel closed",
		"queue", n.queue, "code", amqpErr.Code, "reason", amqpErr.Reason, "server", amqpErr.Server)
}

// publisher returns the current channel, redialling first when the broker
// has closed it.
func (n *RabbitMQNotifier) publisher() (Publisher, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ch == nil || !n.ch.IsClosed() {
		return n.pub, nil
	}

	n.log.Info("reconnecting to rabbitmq", "queue", n.queue)
	if n.conn != nil {
		n.conn.Close() //nolint:errcheck
	}
	if err := n.connect(); err != nil {
		return nil, fmt.Errorf("reconnect: %w", err)
	}
	return n.pub, nil
}

// SendConfirmation implements service.Notifier.
func (n *RabbitMQNotifier) SendConfirmation(ctx context.Context, trip domain.Trip, p domain.Participant) error {
	body, err := json.Marshal(NewConfirmation(trip, p))
	if err != nil {
		return fmt.Errorf("notify.RabbitMQNotifier.SendConfirmation: %w", err)
	}

	pub, err := n.publisher()
	if err != nil {
		return fmt.Errorf("notify.RabbitMQNotifier.SendConfirmation: %w", err)
	}

	err = pub.PublishWithContext(ctx,
		"",      // default exchange
		n.queue, // routing key is the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    p.ID.String(),
			Type:         "trip.confirmation",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("notify.RabbitMQNotifier.SendConfirmation: %w", err)
	}

	n.log.DebugContext(ctx, "confirmation e-mail job queued",
		"queue", n.queue, "trip_id", trip.ID, "participant_id", p.ID)
	return nil
}

// Close closes the channel and connection opened by DialRabbitMQ.
// It is a no-op for notifiers built with NewRabbitMQNotifier.
func (n *RabbitMQNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ch != nil {
		if err := n.ch.Close(); err != nil {
			return err
		}
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
