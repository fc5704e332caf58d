package telegram

import (
	"time"

	"eviden-bot/internal/dto"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ToInboundEvent normalizes an update. ok is false for updates the bot never reacts to
// (channel posts, edited messages, updates without a sender).
func ToInboundEvent(update tgbotapi.Update, now time.Time) (dto.InboundEvent, bool) {
	if cq := update.CallbackQuery; cq != nil {
		if cq.From == nil {
			return dto.InboundEvent{}, false
		}
		evt := dto.InboundEvent{
			UpdateId:   update.UpdateID,
			Kind:       dto.EventSelection,
			UserId:     cq.From.ID,
			ChatId:     cq.From.ID,
			CallbackId: cq.ID,
			Data:       cq.Data,
			ReceivedAt: now,
		}
		if cq.Message != nil {
			evt.MessageId = cq.Message.MessageID
			if cq.Message.Chat != nil {
				evt.ChatId = cq.Message.Chat.ID
			}
		}
		return evt, true
	}

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return dto.InboundEvent{}, false
	}

	evt := dto.InboundEvent{
		UpdateId:   update.UpdateID,
		UserId:     msg.From.ID,
		ChatId:     msg.Chat.ID,
		MessageId:  msg.MessageID,
		ReceivedAt: now,
	}

	switch {
	case msg.IsCommand():
		evt.Kind = dto.EventCommand
		evt.Command = msg.Command()
		evt.Text = msg.CommandArguments()
	case len(msg.Photo) > 0:
		evt.Kind = dto.EventPhoto
		evt.Photos = make([]dto.PhotoVariant, 0, len(msg.Photo))
		for _, p := range msg.Photo {
			evt.Photos = append(evt.Photos, dto.PhotoVariant{
				FileId:   p.FileID,
				Width:    p.Width,
				Height:   p.Height,
				FileSize: p.FileSize,
			})
		}
		evt.Text = msg.Caption
	case msg.Location != nil:
		evt.Kind = dto.EventLocation
		evt.Latitude = msg.Location.Latitude
		evt.Longitude = msg.Location.Longitude
	case msg.Text != "":
		evt.Kind = dto.EventText
		evt.Text = msg.Text
	default:
		evt.Kind = dto.EventUnsupported
	}
	return evt, true
}
