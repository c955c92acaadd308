package data

import (
	"encoding/json"
	"time"

	"echourl/internal/biz"
	"echourl/internal/conf"
	"echourl/internal/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-kratos/kratos/v2/log"
)

// partitionKeyMetadata carries the slug so all clicks for one slug land on
// the same partition, which is what preserves per-slug ordering.
const partitionKeyMetadata = "partition_key"

// NewKafkaPublisher creates the Kafka-backed publisher for click events,
// keyed by the slug stored in message metadata.
func NewKafkaPublisher(c *conf.Data, logger log.Logger) (message.Publisher, func(), error) {
	pub, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:               c.Kafka.Brokers,
			Marshaler:             newPartitioningMarshaler(),
			OverwriteSaramaConfig: kafka.DefaultSaramaSyncPublisherConfig(),
		},
		NewWatermillLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		pub.Close()
	}

	return pub, cleanup, nil
}

func newPartitioningMarshaler() kafka.MarshalerUnmarshaler {
	return kafka.NewWithPartitioningMarshaler(func(topic string, msg *message.Message) (string, error) {
		return msg.Metadata.Get(partitionKeyMetadata), nil
	})
}

type clickProducer struct {
	pub   message.Publisher
	topic string
	log   *log.Helper
}

// NewClickProducer creates the fire-and-forget click event producer.
func NewClickProducer(c *conf.Data, pub message.Publisher, logger log.Logger) biz.ClickPublisher {
	return &clickProducer{
		pub:   pub,
		topic: c.Kafka.Topic,
		log:   log.NewHelper(logger),
	}
}

// PublishClick emits a click event for the slug without awaiting broker
// acknowledgement. Failures are logged and discarded; the redirect response
// is never delayed or failed by analytics plumbing.
func (p *clickProducer) PublishClick(slug string) {
	ev := events.ClickEvent{
		Slug:      slug,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Errorf("failed to marshal click event for %q: %v", slug, err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(partitionKeyMetadata, slug)

	go func() {
		if err := p.pub.Publish(p.topic, msg); err != nil {
			p.log.Errorf("failed to publish click event for %q: %v", slug, err)
		}
	}()
}
