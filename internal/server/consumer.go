package server

import (
	"context"

	"echourl/internal/biz"
	"echourl/internal/conf"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport"
)

var _ transport.Server = (*ConsumerServer)(nil)

// ConsumerServer runs the click aggregation loop as a Kratos server. It
// processes messages strictly sequentially: one event is fully applied before
// the next is read, and a message is acknowledged only after the apply
// attempt, so a crash mid-apply redelivers (over-count, never under-count).
type ConsumerServer struct {
	sub    message.Subscriber
	agg    *biz.ClickAggregator
	topic  string
	log    *log.Helper
	cancel context.CancelFunc
}

func NewConsumerServer(c *conf.Data, sub message.Subscriber, agg *biz.ClickAggregator, logger log.Logger) *ConsumerServer {
	return &ConsumerServer{
		sub:   sub,
		agg:   agg,
		topic: c.Kafka.Topic,
		log:   log.NewHelper(logger),
	}
}

// Start subscribes and consumes until Stop is called. Blocks for the
// lifetime of the subscription, as Kratos runs each server on its own
// goroutine.
func (s *ConsumerServer) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	msgs, err := s.sub.Subscribe(runCtx, s.topic)
	if err != nil {
		return err
	}

	s.log.Infof("click consumer subscribed to %s", s.topic)

	for msg := range msgs {
		_ = s.agg.Apply(msg.Context(), msg.Payload)
		msg.Ack()
	}

	return nil
}

// Stop cancels the subscription; the consume loop drains and exits once the
// message channel closes.
func (s *ConsumerServer) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}
