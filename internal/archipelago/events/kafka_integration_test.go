//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"archipelago/internal/archipelago/events"
	"archipelago/internal/platform/kafka"
	"archipelago/pkg/testutil/containers"
)

type KafkaSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
}

func TestKafkaSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaSuite))
}

func (s *KafkaSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
}

func (s *KafkaSuite) TestPublishedEventsAreConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	const topic = "archipelago.events.test"

	producer, err := kafka.NewProducer(s.redpanda.Brokers, topic)
	s.Require().NoError(err)
	defer producer.Close()
	s.Require().NoError(kafka.EnsureTopic(ctx, producer, topic, 1, 1))
	s.Require().NoError(kafka.EnsureTopic(ctx, producer, topic, 1, 1), "existing topic is fine")

	pub := events.NewKafka(producer, topic)
	ev := events.New(events.IslandAdded, 0)
	ev.IslandID = "isl-1"
	s.Require().NoError(pub.Publish(ctx, ev))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	var got []events.Event
	fetches.EachRecord(func(r *kgo.Record) {
		var e events.Event
		s.Require().NoError(json.Unmarshal(r.Value, &e))
		s.Equal("isl-1", string(r.Key))
		got = append(got, e)
	})
	s.Require().Len(got, 1)
	s.Equal(ev.ID, got[0].ID)
	s.Equal(events.IslandAdded, got[0].Type)
}
