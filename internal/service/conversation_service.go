package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"eviden-bot/internal/constant"
	"eviden-bot/internal/dto"
	"eviden-bot/internal/entity"
	"eviden-bot/internal/pkg/apperror"
	"eviden-bot/internal/pkg/logger"
	"eviden-bot/internal/pkg/telegram"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("eviden-bot/service")

type IConversationService interface {
	// Handle runs one inbound event through the report form. User caused problems become chat
	// replies; the returned error only reports replies that could not be delivered.
	Handle(ctx context.Context, evt dto.InboundEvent) error
}

type conversationService struct {
	sessions  ISessionService
	catalog   ICatalogService
	evidence  IEvidenceService
	reports   IReportService
	messenger telegram.Messenger
	logger    logger.ILogger
	clock     func() time.Time
}

func NewConversationService(
	sessions ISessionService,
	catalog ICatalogService,
	evidence IEvidenceService,
	reports IReportService,
	messenger telegram.Messenger,
	logger logger.ILogger,
) IConversationService {
	return &conversationService{
		sessions:  sessions,
		catalog:   catalog,
		evidence:  evidence,
		reports:   reports,
		messenger: messenger,
		logger:    logger,
		clock:     time.Now,
	}
}

// outcome is what one event does to a session. next is nil when nothing must be persisted.
type outcome struct {
	next    *entity.Session
	replies []dto.Reply
}

func reply(replies ...dto.Reply) outcome {
	return outcome{replies: replies}
}

func (s *conversationService) Handle(ctx context.Context, evt dto.InboundEvent) error {
	ctx, span := tracer.Start(ctx, "conversation.Handle", trace.WithAttributes(
		attribute.Int64("telegram.user_id", evt.UserId),
		attribute.Int("telegram.update_id", evt.UpdateId),
		attribute.String("event.kind", string(evt.Kind)),
	))
	defer span.End()

	session, err := s.sessions.Load(ctx, evt.UserId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "session read")
		return s.deliver(ctx, evt, []dto.Reply{dto.SendReply(evt.ChatId, constant.MsgSessionReadFailed, nil)})
	}
	span.SetAttributes(attribute.String("session.stage", session.Stage.String()))

	out := s.step(ctx, evt, session)

	if out.next != nil {
		if err := s.sessions.Save(ctx, out.next); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "session write")
			return s.deliver(ctx, evt, []dto.Reply{dto.SendReply(evt.ChatId, persistFailureMessage(err), nil)})
		}
		span.SetAttributes(attribute.String("session.next_stage", out.next.Stage.String()))
	}

	return s.deliver(ctx, evt, out.replies)
}

// step decides the next session and the replies. The only side effects it performs are the ones a
// transition needs before it may be accepted: catalog reads, the evidence upload and finalization.
func (s *conversationService) step(ctx context.Context, evt dto.InboundEvent, session *entity.Session) outcome {
	switch evt.Kind {
	case dto.EventCommand:
		return s.onCommand(ctx, evt, session)
	case dto.EventSelection:
		return s.onSelection(ctx, evt, session)
	case dto.EventPhoto:
		return s.onPhoto(ctx, evt, session)
	case dto.EventText:
		return s.onText(ctx, evt, session)
	case dto.EventLocation:
		return s.onLocation(ctx, evt, session)
	default:
		return reply(dto.SendReply(evt.ChatId, guidance(session.Stage), nil))
	}
}

func (s *conversationService) onCommand(ctx context.Context, evt dto.InboundEvent, session *entity.Session) outcome {
	switch evt.Command {
	case constant.CommandLapor:
		segments, err := s.catalog.ListSegments(ctx)
		if err != nil {
			return reply(dto.SendReply(evt.ChatId, constant.MsgSegmentUnavailable, nil))
		}

		next := session.Clone()
		next.Fields = entity.SessionFields{}
		stage, err := fire(ctx, session.Stage, flowLapor)
		if err != nil {
			return s.flowError(evt, session, err)
		}
		next.Stage = stage
		return outcome{
			next:    next,
			replies: []dto.Reply{dto.SendReply(evt.ChatId, constant.MsgPromptSegment, segmentKeyboard(segments))},
		}

	case constant.CommandBatal:
		if session.Stage == entity.StageStart {
			return reply(dto.SendReply(evt.ChatId, constant.MsgNothingToCancel, nil))
		}
		next := session.Clone()
		next.Reset()
		stage, err := fire(ctx, session.Stage, flowBatal)
		if err != nil {
			return s.flowError(evt, session, err)
		}
		next.Stage = stage
		return outcome{
			next:    next,
			replies: []dto.Reply{dto.SendReply(evt.ChatId, constant.MsgCancelled, nil)},
		}

	case constant.CommandStart, constant.CommandHelp:
		if session.Stage == entity.StageStart {
			return reply(dto.SendReply(evt.ChatId, constant.MsgWelcome, nil))
		}
		return reply(
			dto.SendReply(evt.ChatId, constant.MsgWelcome, nil),
			dto.SendReply(evt.ChatId, constant.MsgResumeHint+"\n\n"+guidance(session.Stage), nil),
		)

	default:
		return reply(dto.SendReply(evt.ChatId, constant.MsgUnknownCommand+"\n\n"+constant.MsgWelcome, nil))
	}
}

func (s *conversationService) onSelection(ctx context.Context, evt dto.InboundEvent, session *entity.Session) outcome {
	switch {
	case strings.HasPrefix(evt.Data, constant.SegmentCallbackPrefix):
		return s.onSegmentSelected(ctx, evt, session, strings.TrimPrefix(evt.Data, constant.SegmentCallbackPrefix))
	case strings.HasPrefix(evt.Data, constant.DesignatorCallbackPrefix):
		return s.onDesignatorSelected(ctx, evt, session, strings.TrimPrefix(evt.Data, constant.DesignatorCallbackPrefix))
	default:
		// Not ours; deliver still answers the callback so the client stops spinning.
		return reply()
	}
}

func (s *conversationService) onSegmentSelected(ctx context.Context, evt dto.InboundEvent, session *entity.Session, raw string) outcome {
	if !canFire(session.Stage, flowPickSegment) {
		return stale(evt, session.Stage)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return reply(dto.AnswerReply(evt.CallbackId, constant.MsgInvalidSelection))
	}

	segment, err := s.catalog.GetSegment(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return reply(dto.AnswerReply(evt.CallbackId, constant.MsgInvalidSelection))
		}
		return reply(dto.SendReply(evt.ChatId, constant.MsgSegmentUnavailable, nil))
	}

	designators, err := s.catalog.ListDesignators(ctx)
	if err != nil {
		return reply(dto.SendReply(evt.ChatId, constant.MsgDesignatorUnavailable, nil))
	}

	next := session.Clone()
	next.Fields.SegmentId = entity.Ptr(segment.Id)
	next.Fields.SegmentName = entity.Ptr(segment.DisplayName)
	if next.Stage, err = fire(ctx, session.Stage, flowPickSegment); err != nil {
		return s.flowError(evt, session, err)
	}

	text := fmt.Sprintf(constant.MsgPromptDesignator, html.EscapeString(segment.DisplayName))
	return outcome{
		next:    next,
		replies: []dto.Reply{editOrSend(evt, text, designatorKeyboard(designators))},
	}
}

func (s *conversationService) onDesignatorSelected(ctx context.Context, evt dto.InboundEvent, session *entity.Session, code string) outcome {
	if !canFire(session.Stage, flowPickDesignator) {
		return stale(evt, session.Stage)
	}
	if code == "" {
		return reply(dto.AnswerReply(evt.CallbackId, constant.MsgInvalidSelection))
	}

	designator, err := s.catalog.GetDesignator(ctx, code)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return reply(dto.AnswerReply(evt.CallbackId, constant.MsgInvalidSelection))
		}
		return reply(dto.SendReply(evt.ChatId, constant.MsgDesignatorUnavailable, nil))
	}

	next := session.Clone()
	next.Fields.DesignatorId = entity.Ptr(designator.Code)
	if next.Stage, err = fire(ctx, session.Stage, flowPickDesignator); err != nil {
		return s.flowError(evt, session, err)
	}

	text := fmt.Sprintf(constant.MsgPromptPhoto, html.EscapeString(designatorLabel(designator)))
	return outcome{
		next:    next,
		replies: []dto.Reply{editOrSend(evt, text, nil)},
	}
}

func (s *conversationService) onPhoto(ctx context.Context, evt dto.InboundEvent, session *entity.Session) outcome {
	if !canFire(session.Stage, flowSendPhoto) {
		return reply(dto.SendReply(evt.ChatId, guidance(session.Stage), nil))
	}

	// Progress notice only; the stage prompt still waits for the save.
	if err := s.messenger.SendText(ctx, evt.ChatId, constant.MsgProcessingPhoto, nil); err != nil {
		s.logger.Warn("CONVERSATION", "Failed to send progress notice", map[string]interface{}{"chat_id": evt.ChatId, "error": err.Error()})
	}

	ctx, span := tracer.Start(ctx, "evidence.Upload")
	ref, err := s.evidence.Upload(ctx, evt.Photos, EvidenceHints{
		SegmentName:    *session.Fields.SegmentName,
		DesignatorCode: *session.Fields.DesignatorId,
		UserId:         session.UserId,
		At:             s.clock(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperror.CodeOf(err)))
		span.End()
		if errors.Is(err, apperror.ErrUploadConflict) {
			return reply(dto.SendReply(evt.ChatId, constant.MsgUploadConflict, nil))
		}
		return reply(dto.SendReply(evt.ChatId, constant.MsgUploadFailed, nil))
	}
	span.End()

	next := session.Clone()
	next.Fields.PhotoRef = entity.Ptr(ref)
	if next.Stage, err = fire(ctx, session.Stage, flowSendPhoto); err != nil {
		return s.flowError(evt, session, err)
	}
	return outcome{
		next:    next,
		replies: []dto.Reply{dto.SendReply(evt.ChatId, constant.MsgPromptDescription, nil)},
	}
}

func (s *conversationService) onText(ctx context.Context, evt dto.InboundEvent, session *entity.Session) outcome {
	if !canFire(session.Stage, flowDescribe) {
		return reply(dto.SendReply(evt.ChatId, guidance(session.Stage), nil))
	}

	description := strings.TrimSpace(evt.Text)
	if description == "" {
		return reply(dto.SendReply(evt.ChatId, constant.MsgNeedDescription, nil))
	}

	next := session.Clone()
	next.Fields.Description = entity.Ptr(description)
	var err error
	if next.Stage, err = fire(ctx, session.Stage, flowDescribe); err != nil {
		return s.flowError(evt, session, err)
	}
	return outcome{
		next:    next,
		replies: []dto.Reply{dto.SendReply(evt.ChatId, constant.MsgPromptLocation, nil)},
	}
}

// onLocation finalizes the report. The finalizer persists the reset session itself, inside the
// report transaction, so the outcome carries no session to save.
func (s *conversationService) onLocation(ctx context.Context, evt dto.InboundEvent, session *entity.Session) outcome {
	if !canFire(session.Stage, flowSendLocation) {
		return reply(dto.SendReply(evt.ChatId, guidance(session.Stage), nil))
	}

	draft := session.Clone()
	draft.Fields.Latitude = entity.Ptr(evt.Latitude)
	draft.Fields.Longitude = entity.Ptr(evt.Longitude)

	ctx, span := tracer.Start(ctx, "report.Finalize")
	defer span.End()

	report, err := s.reports.Finalize(ctx, draft)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperror.CodeOf(err)))
		if errors.Is(err, apperror.ErrSessionConflict) {
			return reply(dto.SendReply(evt.ChatId, constant.MsgSessionConflict, nil))
		}
		return reply(dto.SendReply(evt.ChatId, fmt.Sprintf(constant.MsgFinalizeFailed, html.EscapeString(err.Error())), nil))
	}

	span.SetAttributes(attribute.String("report.id", report.Id.String()))
	return reply(dto.SendReply(evt.ChatId, constant.MsgReportSaved, nil))
}

func (s *conversationService) flowError(evt dto.InboundEvent, session *entity.Session, err error) outcome {
	s.logger.Error("CONVERSATION", "Illegal stage transition", map[string]interface{}{
		"user_id": session.UserId,
		"stage":   session.Stage.String(),
		"kind":    string(evt.Kind),
		"error":   err.Error(),
	})
	return reply(dto.SendReply(evt.ChatId, guidance(session.Stage), nil))
}

// deliver sends replies in order. A pending callback is always answered so the button stops loading.
func (s *conversationService) deliver(ctx context.Context, evt dto.InboundEvent, replies []dto.Reply) error {
	if evt.CallbackId != "" && !hasAnswer(replies) {
		replies = append([]dto.Reply{dto.AnswerReply(evt.CallbackId, "")}, replies...)
	}

	var errs []error
	for _, r := range replies {
		var err error
		switch r.Kind {
		case dto.ReplySend:
			err = s.messenger.SendText(ctx, r.ChatId, r.Text, r.Keyboard)
		case dto.ReplyEdit:
			err = s.messenger.EditText(ctx, r.ChatId, r.MessageId, r.Text, r.Keyboard)
		case dto.ReplyAnswer:
			err = s.messenger.AnswerCallback(ctx, r.CallbackId, r.Text)
		}
		if err != nil {
			s.logger.Error("CONVERSATION", "Failed to deliver reply", map[string]interface{}{
				"user_id": evt.UserId,
				"kind":    string(r.Kind),
				"error":   err.Error(),
			})
			errs = append(errs, fmt.Errorf("%s reply: %w", r.Kind, err))
		}
	}
	return errors.Join(errs...)
}

func hasAnswer(replies []dto.Reply) bool {
	for _, r := range replies {
		if r.Kind == dto.ReplyAnswer {
			return true
		}
	}
	return false
}

// stale answers a button pressed for a stage the session already left.
func stale(evt dto.InboundEvent, stage entity.Stage) outcome {
	return reply(
		dto.AnswerReply(evt.CallbackId, constant.MsgStaleSelection),
		dto.SendReply(evt.ChatId, guidance(stage), nil),
	)
}

func editOrSend(evt dto.InboundEvent, text string, keyboard dto.Keyboard) dto.Reply {
	if evt.MessageId == 0 {
		return dto.SendReply(evt.ChatId, text, keyboard)
	}
	return dto.EditReply(evt.ChatId, evt.MessageId, text, keyboard)
}

func persistFailureMessage(err error) string {
	if errors.Is(err, apperror.ErrSessionConflict) {
		return constant.MsgSessionConflict
	}
	return constant.MsgSessionWriteFailed
}

// guidance tells the user what the current stage is waiting for.
func guidance(stage entity.Stage) string {
	switch stage {
	case entity.StageAwaitingSegment, entity.StageAwaitingDesignator:
		return constant.MsgNeedButton
	case entity.StageAwaitingPhoto:
		return constant.MsgNeedPhoto
	case entity.StageAwaitingDescription:
		return constant.MsgNeedDescription
	case entity.StageAwaitingLocation:
		return constant.MsgNeedLocation
	default:
		return constant.MsgNeedLapor
	}
}

func segmentKeyboard(segments []*entity.Segment) dto.Keyboard {
	keyboard := make(dto.Keyboard, 0, len(segments))
	for _, seg := range segments {
		keyboard = append(keyboard, []dto.Button{{
			Text: seg.DisplayName,
			Data: constant.SegmentCallbackPrefix + strconv.FormatInt(seg.Id, 10),
		}})
	}
	return keyboard
}

func designatorKeyboard(designators []*entity.Designator) dto.Keyboard {
	keyboard := make(dto.Keyboard, 0, len(designators))
	for _, d := range designators {
		keyboard = append(keyboard, []dto.Button{{
			Text: designatorLabel(d),
			Data: constant.DesignatorCallbackPrefix + d.Code,
		}})
	}
	return keyboard
}

func designatorLabel(d *entity.Designator) string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Code
}
