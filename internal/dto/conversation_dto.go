package dto

import "time"

type EventKind string

const (
	EventCommand     EventKind = "command"
	EventSelection   EventKind = "selection"
	EventPhoto       EventKind = "photo"
	EventText        EventKind = "text"
	EventLocation    EventKind = "location"
	EventUnsupported EventKind = "unsupported"
)

type PhotoVariant struct {
	FileId   string
	Width    int
	Height   int
	FileSize int
}

// InboundEvent adalah satu update chat yang sudah dinormalisasi dari transport.
type InboundEvent struct {
	UpdateId   int
	Kind       EventKind
	UserId     int64
	ChatId     int64
	MessageId  int
	CallbackId string
	Command    string
	Data       string
	Text       string
	Photos     []PhotoVariant
	Latitude   float64
	Longitude  float64
	ReceivedAt time.Time
}

type Button struct {
	Text string
	Data string
}

type Keyboard [][]Button

type ReplyKind string

const (
	ReplySend   ReplyKind = "send"
	ReplyEdit   ReplyKind = "edit"
	ReplyAnswer ReplyKind = "answer"
)

// Reply is one outbound chat action produced by the conversation state machine.
type Reply struct {
	Kind       ReplyKind
	ChatId     int64
	MessageId  int
	CallbackId string
	Text       string
	Keyboard   Keyboard
}

func SendReply(chatId int64, text string, keyboard Keyboard) Reply {
	return Reply{Kind: ReplySend, ChatId: chatId, Text: text, Keyboard: keyboard}
}

func EditReply(chatId int64, messageId int, text string, keyboard Keyboard) Reply {
	return Reply{Kind: ReplyEdit, ChatId: chatId, MessageId: messageId, Text: text, Keyboard: keyboard}
}

func AnswerReply(callbackId, text string) Reply {
	return Reply{Kind: ReplyAnswer, CallbackId: callbackId, Text: text}
}
