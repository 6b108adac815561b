package consumer

import (
	"context"
	"encoding/json"

	"go-hiring/internal/employee"
	"go-hiring/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAccountRegistered provisions an employee record for every newly
// registered account.
func ConsumeAccountRegistered(
	ctx context.Context,
	reader MessageReader,
	employeeService employee.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.account_registered")
	run(ctx, reader, log, "account registered", func(ctx context.Context, msg kafkago.Message) error {
		return handleAccountRegistered(ctx, employeeService, log, msg)
	})
}

func handleAccountRegistered(ctx context.Context, svc employee.Service, log *zap.Logger, msg kafkago.Message) error {
	var event events.AccountRegisteredEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode account_registered event failed", zap.Error(err))
		return nil
	}

	_, err := svc.Provision(ctx, employee.ProvisionRequest{
		UserID:   event.UserID,
		Username: event.Username,
		Email:    event.Email,
		Role:     event.Role,
	})
	if err != nil {
		if employee.IsDuplicate(err) {
			log.Warn("employee already provisioned for account, skipping",
				zap.String("user_id", event.UserID),
			)
			return nil
		}
		return err
	}

	log.Info("employee provisioned from account_registered event",
		zap.String("user_id", event.UserID),
		zap.String("username", event.Username),
	)
	return nil
}
