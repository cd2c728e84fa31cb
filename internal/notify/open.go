package notify

import (
	"fmt"
	"log/slog"

	"github.com/pkordes/trip-planner/internal/config"
)

// Open builds a Multi over the transports named in cfg.Notifiers.
// Connections opened before a failure are closed again.
func Open(cfg config.Config, log *slog.Logger) (*Multi, error) {
	senders := make([]Sender, 0, len(cfg.Notifiers))
	fail := func(err error) (*Multi, error) {
		NewMulti(senders...).Close() //nolint:errcheck
		return nil, err
	}

	for _, name := range cfg.Notifiers {
		switch name {
		case config.NotifierLog:
			senders = append(senders, NewLogNotifier(log))
		case config.NotifierRabbitMQ:
			n, err := DialRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, log)
			if err != nil {
				return fail(fmt.Errorf("notify.Open: %w", err))
			}
			senders = append(senders, n)
		case config.NotifierKafka:
			senders = append(senders, NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic, log))
		default:
			return fail(fmt.Errorf("notify.Open: unknown notifier %q", name))
		}
		log.Info("notifier enabled", "notifier", name)
	}
	return NewMulti(senders...), nil
}
