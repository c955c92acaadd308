package data

import (
	"echourl/internal/conf"

	"github.com/IBM/sarama"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-kratos/kratos/v2/log"
)

// NewKafkaSubscriber creates the consumer-group subscriber for the click
// topic. The group starts from the earliest retained offset on first run, so
// a freshly deployed aggregator drains the full backlog. Delivery is
// at-least-once; offsets are committed per message after acknowledgement.
func NewKafkaSubscriber(c *conf.Data, logger log.Logger) (message.Subscriber, func(), error) {
	saramaConfig := kafka.DefaultSaramaSubscriberConfig()
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest

	sub, err := kafka.NewSubscriber(
		kafka.SubscriberConfig{
			Brokers:               c.Kafka.Brokers,
			Unmarshaler:           newPartitioningMarshaler(),
			OverwriteSaramaConfig: saramaConfig,
			ConsumerGroup:         c.Kafka.Group,
		},
		NewWatermillLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		sub.Close()
	}

	return sub, cleanup, nil
}
