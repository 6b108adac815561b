package notification

import (
	"context"
)

type Message struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
}

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
