package yatgtypes

// ReplyMarkup is one of InlineKeyboardMarkup, ReplyKeyboardMarkup,
// ReplyKeyboardRemove or ForceReply.
type ReplyMarkup interface {
	replyMarkup()
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

type InlineKeyboardButton struct {
	Text                         string      `json:"text"`
	URL                          string      `json:"url,omitempty"`
	CallbackData                 string      `json:"callback_data,omitempty"`
	WebApp                       *WebAppInfo `json:"web_app,omitempty"`
	LoginURL                     *LoginURL   `json:"login_url,omitempty"`
	SwitchInlineQuery            *string     `json:"switch_inline_query,omitempty"`
	SwitchInlineQueryCurrentChat *string     `json:"switch_inline_query_current_chat,omitempty"`
	Pay                          bool        `json:"pay,omitempty"`
}

type WebAppInfo struct {
	URL string `json:"url"`
}

type LoginURL struct {
	URL                string `json:"url"`
	ForwardText        string `json:"forward_text,omitempty"`
	BotUsername        string `json:"bot_username,omitempty"`
	RequestWriteAccess bool   `json:"request_write_access,omitempty"`
}

type ReplyKeyboardMarkup struct {
	Keyboard              [][]KeyboardButton `json:"keyboard"`
	IsPersistent          bool               `json:"is_persistent,omitempty"`
	ResizeKeyboard        bool               `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard       bool               `json:"one_time_keyboard,omitempty"`
	InputFieldPlaceholder string             `json:"input_field_placeholder,omitempty"`
	Selective             bool               `json:"selective,omitempty"`
}

type KeyboardButton struct {
	Text            string                  `json:"text"`
	RequestContact  bool                    `json:"request_contact,omitempty"`
	RequestLocation bool                    `json:"request_location,omitempty"`
	RequestPoll     *KeyboardButtonPollType `json:"request_poll,omitempty"`
	WebApp          *WebAppInfo             `json:"web_app,omitempty"`
}

type KeyboardButtonPollType struct {
	Type PollType `json:"type,omitempty"`
}

// ReplyKeyboardRemove always marshals remove_keyboard as true.
type ReplyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
	Selective      bool `json:"selective,omitempty"`
}

// ForceReply always marshals force_reply as true.
type ForceReply struct {
	ForceReply            bool   `json:"force_reply"`
	InputFieldPlaceholder string `json:"input_field_placeholder,omitempty"`
	Selective             bool   `json:"selective,omitempty"`
}

func (InlineKeyboardMarkup) replyMarkup() {}

func (ReplyKeyboardMarkup) replyMarkup() {}

func (ReplyKeyboardRemove) replyMarkup() {}

func (ForceReply) replyMarkup() {}

// NewInlineKeyboard builds a markup from rows of buttons.
//
// Example usage:
//
//	markup := yatgtypes.NewInlineKeyboard(
//		yatgtypes.NewInlineRow(yatgtypes.CallbackButton("Yes", "vote:yes"), yatgtypes.CallbackButton("No", "vote:no")),
//	)
func NewInlineKeyboard(rows ...[]InlineKeyboardButton) InlineKeyboardMarkup {
	return InlineKeyboardMarkup{InlineKeyboard: rows}
}

func NewInlineRow(buttons ...InlineKeyboardButton) []InlineKeyboardButton {
	return buttons
}

func CallbackButton(text, data string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, CallbackData: data}
}

func URLButton(text, url string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, URL: url}
}

func NewReplyKeyboard(rows ...[]KeyboardButton) ReplyKeyboardMarkup {
	return ReplyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true}
}

func NewKeyboardRow(texts ...string) []KeyboardButton {
	row := make([]KeyboardButton, 0, len(texts))
	for _, text := range texts {
		row = append(row, KeyboardButton{Text: text})
	}

	return row
}

func NewReplyKeyboardRemove() ReplyKeyboardRemove {
	return ReplyKeyboardRemove{RemoveKeyboard: true}
}

func NewForceReply(placeholder string) ForceReply {
	return ForceReply{ForceReply: true, InputFieldPlaceholder: placeholder}
}
