package audit

import (
	"context"
	"time"

	"go-hiring/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Entry records an HR decision or an operational event.
type Entry struct {
	Action  string
	ActorID string
	Target  string
	Message string
	Meta    map[string]any
}

type Logger interface {
	Log(ctx context.Context, entry Entry)
}

type zapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(logger ...*zap.Logger) Logger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &zapLogger{logger: l}
}

// Log falls back to the authenticated caller when the entry names no actor.
func (l *zapLogger) Log(ctx context.Context, entry Entry) {
	md := contextutil.ExtractMetadata(ctx)
	actor := entry.ActorID
	if actor == "" {
		actor = md.UserID
	}
	l.logger.Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("request_id", md.RequestID),
		zap.String("action", entry.Action),
		zap.String("actor_id", actor),
		zap.String("actor_role", md.Role),
		zap.String("target", entry.Target),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}

type nopLogger struct{}

func (nopLogger) Log(context.Context, Entry) {}

func Nop() Logger { return nopLogger{} }
