package service

import (
	"context"
	"encoding/json"

	"eviden-bot/internal/dto"
	"eviden-bot/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	PublishReportSubmitted(ctx context.Context, report *entity.Report) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) PublishReportSubmitted(ctx context.Context, report *entity.Report) error {
	payload := dto.ReportSubmittedMessage{
		ReportId:       report.Id.String(),
		TelegramUserId: report.TelegramUserId,
		SegmentId:      report.SegmentId,
		DesignatorCode: report.DesignatorCode,
		PhotoRef:       report.PhotoRef,
		Latitude:       report.Latitude,
		Longitude:      report.Longitude,
		CreatedAt:      report.CreatedAt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)
	return ps.publisher.Publish(ps.topicName, msg)
}
