// Package telegram adapts go-telegram-bot-api to the narrow chat capability set the bot needs.
package telegram

import (
	"context"
	"fmt"

	"eviden-bot/internal/dto"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Messenger interface {
	SendText(ctx context.Context, chatId int64, text string, keyboard dto.Keyboard) error
	EditText(ctx context.Context, chatId int64, messageId int, text string, keyboard dto.Keyboard) error
	AnswerCallback(ctx context.Context, callbackId, text string) error
	// FileURL resolves a time-limited download URL for an attachment handle.
	FileURL(ctx context.Context, fileId string) (string, error)
}

type BotMessenger struct {
	api *tgbotapi.BotAPI
}

// NewBotMessenger authorizes against the Bot API (one getMe call).
func NewBotMessenger(token string) (*BotMessenger, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	api.Debug = false
	return &BotMessenger{api: api}, nil
}

func (m *BotMessenger) SendText(ctx context.Context, chatId int64, text string, keyboard dto.Keyboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatId, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if len(keyboard) > 0 {
		msg.ReplyMarkup = InlineKeyboard(keyboard)
	}
	_, err := m.api.Send(msg)
	return err
}

func (m *BotMessenger) EditText(ctx context.Context, chatId int64, messageId int, text string, keyboard dto.Keyboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var edit tgbotapi.EditMessageTextConfig
	if len(keyboard) > 0 {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatId, messageId, text, InlineKeyboard(keyboard))
	} else {
		// Tanpa markup, Telegram menghapus tombol lama.
		edit = tgbotapi.NewEditMessageText(chatId, messageId, text)
	}
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := m.api.Send(edit)
	return err
}

func (m *BotMessenger) AnswerCallback(ctx context.Context, callbackId, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := m.api.Request(tgbotapi.NewCallback(callbackId, text))
	return err
}

func (m *BotMessenger) FileURL(ctx context.Context, fileId string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.api.GetFileDirectURL(fileId)
}

func InlineKeyboard(keyboard dto.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
