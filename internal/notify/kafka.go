package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/pkordes/trip-planner/internal/domain"
)

// kafkaBatchTimeout caps how long a synchronous WriteMessages waits for more
// messages before flushing. kafka-go's default is one second.
const kafkaBatchTimeout = 10 * time.Millisecond

// Writer is the subset of *kafka.Writer the Kafka transport needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes one confirmation event per participant.
// Messages are keyed by trip id so all events of a trip share a partition.
type KafkaNotifier struct {
	writer Writer
	log    *slog.Logger
}

// NewKafkaWriter returns the writer used by NewKafkaNotifier.
// It connects lazily on the first message.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           kafkaBatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaNotifier returns a KafkaNotifier writing to topic on brokers.
func NewKafkaNotifier(brokers []string, topic string, log *slog.Logger) *KafkaNotifier {
	return NewKafkaNotifierWithWriter(NewKafkaWriter(brokers, topic), log)
}

// NewKafkaNotifierWithWriter allows injecting a test writer.
func NewKafkaNotifierWithWriter(w Writer, log *slog.Logger) *KafkaNotifier {
	return &KafkaNotifier{writer: w, log: log}
}

// SendConfirmation implements service.Notifier.
func (n *KafkaNotifier) SendConfirmation(ctx context.Context, trip domain.Trip, p domain.Participant) error {
	if err := n.write(ctx, trip, []domain.Participant{p}); err != nil {
		return fmt.Errorf("notify.KafkaNotifier.SendConfirmation: %w", err)
	}
	return nil
}

// SendConfirmations implements service.BatchNotifier. Every participant's
// event goes out in a single WriteMessages call.
func (n *KafkaNotifier) SendConfirmations(ctx context.Context, trip domain.Trip, participants []domain.Participant) error {
	if err := n.write(ctx, trip, participants); err != nil {
		return fmt.Errorf("notify.KafkaNotifier.SendConfirmations: %w", err)
	}
	return nil
}

func (n *KafkaNotifier) write(ctx context.Context, trip domain.Trip, participants []domain.Participant) error {
	if len(participants) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, len(participants))
	for i, p := range participants {
		value, err := json.Marshal(NewConfirmation(trip, p))
		if err != nil {
			return err
		}
		msgs[i] = kafka.Message{
			Key:   []byte(trip.ID.String()),
			Value: value,
			Headers: []kafka.Header{
				{Key: "type", Value: []byte("trip.confirmation")},
			},
		}
	}
	if err := n.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}

	n.log.DebugContext(ctx, "confirmation events published",
		"trip_id", trip.ID, "count", len(msgs))
	return nil
}

// Close flushes and closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
