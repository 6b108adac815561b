package consumer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// handleFunc processes one message. A nil error commits the message; an error
// leaves it uncommitted so it is redelivered after the next rebalance.
type handleFunc func(ctx context.Context, msg kafkago.Message) error

func run(ctx context.Context, reader MessageReader, log *zap.Logger, name string, handle handleFunc) {
	log.Info(name + " consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info(name + " consumer stopped")
				return
			}
			log.Error("fetch "+name+" message failed", zap.Error(err))
			continue
		}

		if err := handle(ctx, msg); err != nil {
			log.Error("handle "+name+" message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit "+name+" message failed", zap.Error(err))
		}
	}
}
