package yatgmethods

import "github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"

// MessageOptions are the delivery parameters shared by every send* method.
type MessageOptions struct {
	MessageThreadID          int                   `json:"message_thread_id,omitempty"`
	DisableNotification      bool                  `json:"disable_notification,omitempty"`
	ProtectContent           bool                  `json:"protect_content,omitempty"`
	ReplyToMessageID         int                   `json:"reply_to_message_id,omitempty"`
	AllowSendingWithoutReply bool                  `json:"allow_sending_without_reply,omitempty"`
	ReplyMarkup              yatgtypes.ReplyMarkup `json:"reply_markup,omitempty"`
}

// CaptionOptions format the caption of a media message.
type CaptionOptions struct {
	Caption         string                    `json:"caption,omitempty"`
	ParseMode       yatgtypes.ParseMode       `json:"parse_mode,omitempty"`
	CaptionEntities []yatgtypes.MessageEntity `json:"caption_entities,omitempty"`
}
