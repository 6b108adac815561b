package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-hiring/internal/employee"
	"go-hiring/internal/events"
	"go-hiring/internal/messaging/kafka/consumer"
	"go-hiring/internal/shared/config"
	"go-hiring/internal/shared/connection"

	"go.uber.org/zap"
)

const (
	provisioningGroupID  = "go-hiring-employee-provisioning"
	notificationsGroupID = "go-hiring-notifications"
)

// RunConsumer provisions employees for new accounts and e-mails review
// outcomes until SIGINT/SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, 5)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	employeeRepo := employee.NewRepository(gormDB)
	employeeService := employee.NewService(sqlDB, employeeRepo, logger)
	notifier := NewNotifier(cfg.SMTP, logger)

	accountReader := connection.NewKafkaReader(cfg.KafkaBroker, provisioningGroupID, events.AccountRegisteredTopic)
	defer accountReader.Close()

	notificationReader := connection.NewKafkaReader(cfg.KafkaBroker, notificationsGroupID, consumer.NotificationTopics...)
	defer notificationReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeAccountRegistered(ctx, accountReader, employeeService, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeNotifications(ctx, notificationReader, notifier, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}
