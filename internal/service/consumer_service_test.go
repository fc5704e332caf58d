package service

import (
	"context"
	"testing"
	"time"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/pkg/logger"
	"eviden-bot/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "REPORT_SUBMITTED"

func TestReportEventReachesAuditLogAndForwarder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	audit := &recordingLogger{}
	forwarder := &recordingForwarder{}
	consumer := NewConsumerService(pubSub, testTopic, audit, forwarder, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	report := &entity.Report{
		Id:             uuid.New(),
		TelegramUserId: 42,
		SegmentId:      1,
		DesignatorCode: "DC-OF-SM-48D",
		PhotoRef:       "https://storage.googleapis.com/eviden-bot/x.jpg",
		Latitude:       -6.2,
		Longitude:      106.8,
		CreatedAt:      testNow,
	}
	publisher := NewPublisherService(testTopic, pubSub)
	require.NoError(t, publisher.PublishReportSubmitted(ctx, report))

	assert.Eventually(t, func() bool { return forwarder.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	lines := audit.snapshot()
	require.Len(t, lines, 1)
	assert.Equal(t, events.TypeReportSubmitted, lines[0].Message)
	assert.Equal(t, report.Id.String(), lines[0].Details["report_id"])

	forwarder.mu.Lock()
	event := forwarder.events[0]
	forwarder.mu.Unlock()
	assert.Equal(t, events.TypeReportSubmitted, event.EventType())
	assert.Equal(t, report.Id.String(), event.EventID())
	assert.Equal(t, "DC-OF-SM-48D", event.Payload()["designator_code"])
}

func TestMalformedReportEventIsDropped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, watermill.NopLogger{})
	defer pubSub.Close()

	audit := &recordingLogger{}
	forwarder := &recordingForwarder{}
	require.NoError(t, NewConsumerService(pubSub, testTopic, audit, forwarder, logger.NewNopLogger()).Consume(ctx))

	// Publish blocks until the message is acked, so returning at all proves the ack.
	require.NoError(t, pubSub.Publish(testTopic, message.NewMessage(watermill.NewUUID(), []byte("{not json"))))

	assert.Empty(t, audit.snapshot())
	assert.Zero(t, forwarder.count())
}
