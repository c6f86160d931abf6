package yatgmethods

import (
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgentities"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

type SendMessage struct {
	ChatID                ChatID                    `json:"chat_id"`
	Text                  string                    `json:"text"`
	ParseMode             yatgtypes.ParseMode       `json:"parse_mode,omitempty"`
	Entities              []yatgtypes.MessageEntity `json:"entities,omitempty"`
	DisableWebPagePreview bool                      `json:"disable_web_page_preview,omitempty"`

	MessageOptions
}

func NewSendMessage(chatID ChatID, text string) *SendMessage {
	return &SendMessage{ChatID: chatID, Text: text}
}

func (*SendMessage) MethodName() string { return "sendMessage" }

func (m *SendMessage) WithParseMode(mode yatgtypes.ParseMode) *SendMessage {
	m.ParseMode = mode

	return m
}

func (m *SendMessage) WithEntities(entities ...yatgtypes.MessageEntity) *SendMessage {
	m.Entities = append(m.Entities, entities...)

	return m
}

// WithEntity annotates the byte range [start, end) of Text, converting it to
// the UTF-16 offsets Telegram expects.
//
// Example usage:
//
//	text := "Привет, мир"
//	req := yatgmethods.NewSendMessage(chat, text).
//		WithEntity(yatgtypes.EntityTypeBold, 0, strings.Index(text, ","))
func (m *SendMessage) WithEntity(kind yatgtypes.EntityType, start, end int) *SendMessage {
	offset, length := yatgentities.Range(m.Text, start, end)

	return m.WithEntities(yatgtypes.MessageEntity{Type: kind, Offset: offset, Length: length})
}

// WithTextLink is WithEntity for a text_link pointing at url.
func (m *SendMessage) WithTextLink(start, end int, url string) *SendMessage {
	offset, length := yatgentities.Range(m.Text, start, end)

	return m.WithEntities(yatgtypes.MessageEntity{
		Type:   yatgtypes.EntityTypeTextLink,
		Offset: offset,
		Length: length,
		URL:    url,
	})
}

func (m *SendMessage) WithReplyMarkup(markup yatgtypes.ReplyMarkup) *SendMessage {
	m.ReplyMarkup = markup

	return m
}

func (m *SendMessage) WithReplyTo(messageID int) *SendMessage {
	m.ReplyToMessageID = messageID

	return m
}

func (m *SendMessage) WithoutNotification() *SendMessage {
	m.DisableNotification = true

	return m
}

func (m *SendMessage) WithoutPreview() *SendMessage {
	m.DisableWebPagePreview = true

	return m
}

type ForwardMessage struct {
	ChatID              ChatID `json:"chat_id"`
	FromChatID          ChatID `json:"from_chat_id"`
	MessageID           int    `json:"message_id"`
	MessageThreadID     int    `json:"message_thread_id,omitempty"`
	DisableNotification bool   `json:"disable_notification,omitempty"`
	ProtectContent      bool   `json:"protect_content,omitempty"`
}

func NewForwardMessage(chatID, fromChatID ChatID, messageID int) *ForwardMessage {
	return &ForwardMessage{ChatID: chatID, FromChatID: fromChatID, MessageID: messageID}
}

func (*ForwardMessage) MethodName() string { return "forwardMessage" }

// EditMessageText edits either a chat message (ChatID and MessageID) or an
// inline message (InlineMessageID).
type EditMessageText struct {
	ChatID                ChatID                          `json:"chat_id,omitzero"`
	MessageID             int                             `json:"message_id,omitempty"`
	InlineMessageID       string                          `json:"inline_message_id,omitempty"`
	Text                  string                          `json:"text"`
	ParseMode             yatgtypes.ParseMode             `json:"parse_mode,omitempty"`
	Entities              []yatgtypes.MessageEntity       `json:"entities,omitempty"`
	DisableWebPagePreview bool                            `json:"disable_web_page_preview,omitempty"`
	ReplyMarkup           *yatgtypes.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

func NewEditMessageText(chatID ChatID, messageID int, text string) *EditMessageText {
	return &EditMessageText{ChatID: chatID, MessageID: messageID, Text: text}
}

func NewEditInlineMessageText(inlineMessageID, text string) *EditMessageText {
	return &EditMessageText{InlineMessageID: inlineMessageID, Text: text}
}

func (*EditMessageText) MethodName() string { return "editMessageText" }

func (m *EditMessageText) WithParseMode(mode yatgtypes.ParseMode) *EditMessageText {
	m.ParseMode = mode

	return m
}

func (m *EditMessageText) WithReplyMarkup(markup yatgtypes.InlineKeyboardMarkup) *EditMessageText {
	m.ReplyMarkup = &markup

	return m
}

type DeleteMessage struct {
	ChatID    ChatID `json:"chat_id"`
	MessageID int    `json:"message_id"`
}

func NewDeleteMessage(chatID ChatID, messageID int) *DeleteMessage {
	return &DeleteMessage{ChatID: chatID, MessageID: messageID}
}

func (*DeleteMessage) MethodName() string { return "deleteMessage" }

type SendChatAction struct {
	ChatID          ChatID               `json:"chat_id"`
	Action          yatgtypes.ChatAction `json:"action"`
	MessageThreadID int                  `json:"message_thread_id,omitempty"`
}

func NewSendChatAction(chatID ChatID, action yatgtypes.ChatAction) *SendChatAction {
	return &SendChatAction{ChatID: chatID, Action: action}
}

func (*SendChatAction) MethodName() string { return "sendChatAction" }
