package yatgmethods

import "github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"

type GetMe struct{}

func (GetMe) MethodName() string { return "getMe" }

const (
	MaxUpdatesLimit    = 100
	DefaultPollTimeout = 30
)

// GetUpdates long-polls for updates. Offset is the id of the first update
// to return; passing the last seen update_id + 1 confirms everything before.
type GetUpdates struct {
	Offset         int64                  `json:"offset,omitempty"`
	Limit          int                    `json:"limit,omitempty"`
	Timeout        int                    `json:"timeout,omitempty"`
	AllowedUpdates []yatgtypes.UpdateType `json:"allowed_updates,omitempty"`
}

// NewGetUpdates clamps limit to [1, 100].
func NewGetUpdates(offset int64, limit, timeoutSeconds int) *GetUpdates {
	return &GetUpdates{
		Offset:  offset,
		Limit:   min(max(limit, 1), MaxUpdatesLimit),
		Timeout: max(timeoutSeconds, 0),
	}
}

func (*GetUpdates) MethodName() string { return "getUpdates" }

func (m *GetUpdates) WithAllowedUpdates(types ...yatgtypes.UpdateType) *GetUpdates {
	m.AllowedUpdates = types

	return m
}

type GetFile struct {
	FileID string `json:"file_id"`
}

func NewGetFile(fileID string) *GetFile {
	return &GetFile{FileID: fileID}
}

func (*GetFile) MethodName() string { return "getFile" }

type SetMyCommands struct {
	Commands     []yatgtypes.BotCommand `json:"commands"`
	LanguageCode string                 `json:"language_code,omitempty"`
}

func NewSetMyCommands(commands ...yatgtypes.BotCommand) *SetMyCommands {
	return &SetMyCommands{Commands: commands}
}

func (*SetMyCommands) MethodName() string { return "setMyCommands" }

// AnswerCallbackQuery stops the loading indicator on the button the user
// pressed, optionally showing Text as a notification or an alert.
type AnswerCallbackQuery struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
	URL             string `json:"url,omitempty"`
	CacheTime       int    `json:"cache_time,omitempty"`
}

func NewAnswerCallbackQuery(callbackQueryID string) *AnswerCallbackQuery {
	return &AnswerCallbackQuery{CallbackQueryID: callbackQueryID}
}

func (*AnswerCallbackQuery) MethodName() string { return "answerCallbackQuery" }

func (m *AnswerCallbackQuery) WithText(text string, alert bool) *AnswerCallbackQuery {
	m.Text = text
	m.ShowAlert = alert

	return m
}

type InputPollOption struct {
	Text string `json:"text"`
}

// SendPoll sends a regular poll or, with WithQuiz, a quiz.
type SendPoll struct {
	ChatID                ChatID                    `json:"chat_id"`
	Question              string                    `json:"question"`
	Options               []InputPollOption         `json:"options"`
	IsAnonymous           *bool                     `json:"is_anonymous,omitempty"`
	Type                  yatgtypes.PollType        `json:"type,omitempty"`
	AllowsMultipleAnswers bool                      `json:"allows_multiple_answers,omitempty"`
	CorrectOptionID       *int                      `json:"correct_option_id,omitempty"`
	Explanation           string                    `json:"explanation,omitempty"`
	ExplanationParseMode  yatgtypes.ParseMode       `json:"explanation_parse_mode,omitempty"`
	ExplanationEntities   []yatgtypes.MessageEntity `json:"explanation_entities,omitempty"`
	OpenPeriod            int                       `json:"open_period,omitempty"`
	CloseDate             int64                     `json:"close_date,omitempty"`
	IsClosed              bool                      `json:"is_closed,omitempty"`

	MessageOptions
}

func NewSendPoll(chatID ChatID, question string, options ...string) *SendPoll {
	poll := &SendPoll{ChatID: chatID, Question: question, Type: yatgtypes.PollTypeRegular}

	for _, option := range options {
		poll.Options = append(poll.Options, InputPollOption{Text: option})
	}

	return poll
}

func (*SendPoll) MethodName() string { return "sendPoll" }

// WithQuiz turns the poll into a quiz whose correct answer is options[correct].
func (m *SendPoll) WithQuiz(correct int, explanation string) *SendPoll {
	m.Type = yatgtypes.PollTypeQuiz
	m.CorrectOptionID = &correct
	m.Explanation = explanation

	return m
}

func (m *SendPoll) WithAnonymous(anonymous bool) *SendPoll {
	m.IsAnonymous = &anonymous

	return m
}
