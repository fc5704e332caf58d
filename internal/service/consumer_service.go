package service

import (
	"context"
	"encoding/json"

	"eviden-bot/internal/dto"
	"eviden-bot/internal/pkg/logger"
	"eviden-bot/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventForwarder ships events off the process, e.g. to NATS JetStream.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	auditLogger logger.ILogger
	forwarder   EventForwarder
	logger      logger.ILogger
}

// NewConsumerService drains report events into the audit log. forwarder may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	auditLogger logger.ILogger,
	forwarder EventForwarder,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		auditLogger: auditLogger,
		forwarder:   forwarder,
		logger:      logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Every branch acks: the report row is already committed, so a lost event is only a lost audit line.
	defer msg.Ack()

	var payload dto.ReportSubmittedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal report event", map[string]interface{}{"message_id": msg.UUID, "error": err.Error()})
		return
	}

	data := map[string]interface{}{
		"report_id":        payload.ReportId,
		"telegram_user_id": payload.TelegramUserId,
		"segment_id":       payload.SegmentId,
		"designator_code":  payload.DesignatorCode,
		"photo_ref":        payload.PhotoRef,
		"latitude":         payload.Latitude,
		"longitude":        payload.Longitude,
		"created_at":       payload.CreatedAt,
	}
	cs.auditLogger.Info("REPORT_AUDIT", events.TypeReportSubmitted, data)

	if cs.forwarder == nil {
		return
	}
	event := events.NewReportSubmitted(payload.ReportId, data, payload.CreatedAt)
	if err := cs.forwarder.Publish(ctx, event); err != nil {
		cs.logger.Warn("CONSUMER", "Failed to forward report event", map[string]interface{}{"report_id": payload.ReportId, "error": err.Error()})
		return
	}
	cs.logger.Debug("CONSUMER", "Report event forwarded", map[string]interface{}{"report_id": payload.ReportId})
}
