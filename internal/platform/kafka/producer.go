// Package kafka wraps the franz-go client behind the small producing surface
// the rest of the service needs.
package kafka

import (
	"context"
	"errors"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	dErrors "counsel/pkg/domain-errors"
)

// Producer publishes records to a single topic.
type Producer struct {
	client *kgo.Client
	topic  string
}

// NewProducer connects to the brokers and ensures the topic exists. Topic
// creation is idempotent: an already-exists response is not an error.
func NewProducer(ctx context.Context, brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "kafka brokers cannot be empty")
	}
	if topic == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "kafka topic cannot be empty")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "creating kafka client")
	}

	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Producer{client: client, topic: topic}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	admin := kadm.NewClient(client)
	resp, err := admin.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "creating kafka topic")
	}
	for _, result := range resp {
		if result.Err != nil && !errors.Is(result.Err, kerr.TopicAlreadyExists) {
			return dErrors.Wrap(result.Err, dErrors.CodeInternal, "creating kafka topic")
		}
	}
	return nil
}

// Publish produces one record synchronously.
func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	record := &kgo.Record{Topic: p.topic, Key: key, Value: value}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "producing kafka record")
	}
	return nil
}

// Health checks broker reachability.
func (p *Producer) Health(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// Close flushes pending records and releases the client.
func (p *Producer) Close() {
	p.client.Close()
}
