package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hiring/internal/events"
	"go-hiring/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// NotificationTopics are the topics ConsumeNotifications subscribes to.
var NotificationTopics = []string{
	events.OnboardingDecidedTopic,
	events.VisaDocumentReviewedTopic,
}

// ConsumeNotifications e-mails employees when HR decides their onboarding
// application or reviews one of their visa documents.
func ConsumeNotifications(
	ctx context.Context,
	reader MessageReader,
	notifier notification.Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification")
	run(ctx, reader, log, "notification", func(ctx context.Context, msg kafkago.Message) error {
		return handleNotification(ctx, notifier, log, msg)
	})
}

func handleNotification(ctx context.Context, notifier notification.Notifier, log *zap.Logger, msg kafkago.Message) error {
	var (
		out notification.Message
		err error
	)

	switch msg.Topic {
	case events.OnboardingDecidedTopic:
		out, err = onboardingDecidedMessage(msg.Value)
	case events.VisaDocumentReviewedTopic:
		out, err = documentReviewedMessage(msg.Value)
	default:
		log.Warn("unexpected topic, skipping", zap.String("topic", msg.Topic))
		return nil
	}
	if err != nil {
		log.Error("decode notification event failed", zap.String("topic", msg.Topic), zap.Error(err))
		return nil
	}
	if out.To == "" {
		log.Warn("notification event without recipient, skipping", zap.String("topic", msg.Topic))
		return nil
	}

	if err := notifier.Send(ctx, out); err != nil {
		return err
	}

	log.Info("notification sent",
		zap.String("topic", msg.Topic),
		zap.String("to", out.To),
	)
	return nil
}

func onboardingDecidedMessage(raw []byte) (notification.Message, error) {
	var event events.OnboardingDecidedEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return notification.Message{}, err
	}

	var subject string
	var paragraphs []string
	if event.Status == "approved" {
		subject = "Onboarding Application Approved"
		paragraphs = []string{"Your onboarding application has been approved. Welcome aboard!"}
	} else {
		subject = "Onboarding Application Requires Changes"
		paragraphs = []string{"Your onboarding application was not approved."}
		if event.Feedback != "" {
			paragraphs = append(paragraphs, "Feedback from HR: "+event.Feedback)
		}
		paragraphs = append(paragraphs, "Please update your application and submit it again.")
	}

	return notification.Message{
		To:       event.Email,
		ToName:   event.Name,
		Subject:  subject,
		HTMLBody: notification.RenderLetter(event.Name, paragraphs...),
	}, nil
}

func documentReviewedMessage(raw []byte) (notification.Message, error) {
	var event events.VisaDocumentReviewedEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return notification.Message{}, err
	}

	var subject string
	var paragraphs []string
	if event.Status == "approved" {
		subject = fmt.Sprintf("%s Approved", event.Label)
		paragraphs = []string{fmt.Sprintf("Your %s has been approved.", event.Label)}
		if event.CurrentStep == "completed" {
			paragraphs = append(paragraphs, "All of your visa documents have been approved.")
		}
	} else {
		subject = fmt.Sprintf("%s Rejected", event.Label)
		paragraphs = []string{fmt.Sprintf("Your %s was rejected.", event.Label)}
		if event.Feedback != "" {
			paragraphs = append(paragraphs, "Feedback from HR: "+event.Feedback)
		}
		paragraphs = append(paragraphs, "Please upload an updated version.")
	}

	return notification.Message{
		To:       event.Email,
		ToName:   event.Name,
		Subject:  subject,
		HTMLBody: notification.RenderLetter(event.Name, paragraphs...),
	}, nil
}
