//go:build integration

package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"counsel/pkg/testutil/containers"
)

func TestProducerPublishRoundTrip(t *testing.T) {
	broker := containers.NewRedpandaContainer(t).Broker
	ctx := context.Background()

	producer, err := NewProducer(ctx, []string{broker}, "counsel.audit.test")
	require.NoError(t, err)
	t.Cleanup(producer.Close)

	require.NoError(t, producer.Health(ctx))
	require.NoError(t, producer.Publish(ctx, []byte("advice-1"), []byte(`{"action":"advice_issued"}`)))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics("counsel.audit.test"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	pollCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(pollCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "advice-1", string(records[0].Key))
	assert.Contains(t, string(records[0].Value), "advice_issued")
}

func TestProducerTopicCreationIdempotent(t *testing.T) {
	broker := containers.NewRedpandaContainer(t).Broker
	ctx := context.Background()

	first, err := NewProducer(ctx, []string{broker}, "counsel.audit.idempotent")
	require.NoError(t, err)
	first.Close()

	second, err := NewProducer(ctx, []string{broker}, "counsel.audit.idempotent")
	require.NoError(t, err)
	second.Close()
}
