package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/platform/circuit"
)

// Producer publishes raw records to a broker topic.
type Producer interface {
	Publish(ctx context.Context, key, value []byte) error
}

// KafkaStore ships events to a broker topic for downstream consumers. A
// circuit breaker guards the broker: after consecutive publish failures events
// divert to the fallback store until the broker recovers, so a broker outage
// degrades audit durability instead of dropping events outright.
//
// Reads happen wherever the topic is consumed, so Recent only reports what the
// fallback has captured.
type KafkaStore struct {
	producer Producer
	fallback Store
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewKafkaStore(producer Producer, fallback Store, logger *slog.Logger) *KafkaStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaStore{
		producer: producer,
		fallback: fallback,
		breaker:  circuit.New("audit-kafka"),
		logger:   logger,
	}
}

func (s *KafkaStore) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encoding audit event")
	}

	if err := s.producer.Publish(ctx, []byte(event.AdviceID.String()), payload); err != nil {
		useFallback, change := s.breaker.RecordFailure()
		if change.Opened {
			s.logger.WarnContext(ctx, "audit stream circuit opened", "breaker", s.breaker.Name())
		}
		if useFallback && s.fallback != nil {
			return s.fallback.Append(ctx, event)
		}
		return err
	}

	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "audit stream circuit closed", "breaker", s.breaker.Name())
	}
	return nil
}

func (s *KafkaStore) Recent(ctx context.Context, n int) ([]Event, error) {
	if s.fallback == nil {
		return nil, nil
	}
	return s.fallback.Recent(ctx, n)
}
