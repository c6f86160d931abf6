package yatgmethods

type SendPhoto struct {
	ChatID     ChatID    `json:"chat_id"`
	Photo      InputFile `json:"photo"`
	HasSpoiler bool      `json:"has_spoiler,omitempty"`

	CaptionOptions
	MessageOptions
}

func NewSendPhoto(chatID ChatID, photo InputFile) *SendPhoto {
	return &SendPhoto{ChatID: chatID, Photo: photo}
}

func (*SendPhoto) MethodName() string { return "sendPhoto" }

func (m *SendPhoto) Uploads() []Upload { return uploadOf("photo", &m.Photo) }

func (m *SendPhoto) WithCaption(caption CaptionOptions) *SendPhoto {
	m.CaptionOptions = caption

	return m
}

func (m *SendPhoto) WithOptions(options MessageOptions) *SendPhoto {
	m.MessageOptions = options

	return m
}

type SendAudio struct {
	ChatID    ChatID     `json:"chat_id"`
	Audio     InputFile  `json:"audio"`
	Duration  int        `json:"duration,omitempty"`
	Performer string     `json:"performer,omitempty"`
	Title     string     `json:"title,omitempty"`
	Thumbnail *InputFile `json:"thumbnail,omitempty"`

	CaptionOptions
	MessageOptions
}

func NewSendAudio(chatID ChatID, audio InputFile) *SendAudio {
	return &SendAudio{ChatID: chatID, Audio: audio}
}

func (*SendAudio) MethodName() string { return "sendAudio" }

func (m *SendAudio) Uploads() []Upload {
	return append(uploadOf("audio", &m.Audio), attachOf(m.Thumbnail)...)
}

func (m *SendAudio) WithCaption(caption CaptionOptions) *SendAudio {
	m.CaptionOptions = caption

	return m
}

func (m *SendAudio) WithThumbnail(thumbnail InputFile) *SendAudio {
	m.Thumbnail = &thumbnail

	return m
}

type SendDocument struct {
	ChatID                      ChatID     `json:"chat_id"`
	Document                    InputFile  `json:"document"`
	Thumbnail                   *InputFile `json:"thumbnail,omitempty"`
	DisableContentTypeDetection bool       `json:"disable_content_type_detection,omitempty"`

	CaptionOptions
	MessageOptions
}

func NewSendDocument(chatID ChatID, document InputFile) *SendDocument {
	return &SendDocument{ChatID: chatID, Document: document}
}

func (*SendDocument) MethodName() string { return "sendDocument" }

func (m *SendDocument) Uploads() []Upload {
	return append(uploadOf("document", &m.Document), attachOf(m.Thumbnail)...)
}

func (m *SendDocument) WithCaption(caption CaptionOptions) *SendDocument {
	m.CaptionOptions = caption

	return m
}

func (m *SendDocument) WithThumbnail(thumbnail InputFile) *SendDocument {
	m.Thumbnail = &thumbnail

	return m
}

func (m *SendDocument) WithOptions(options MessageOptions) *SendDocument {
	m.MessageOptions = options

	return m
}

type SendVideo struct {
	ChatID            ChatID     `json:"chat_id"`
	Video             InputFile  `json:"video"`
	Duration          int        `json:"duration,omitempty"`
	Width             int        `json:"width,omitempty"`
	Height            int        `json:"height,omitempty"`
	Thumbnail         *InputFile `json:"thumbnail,omitempty"`
	HasSpoiler        bool       `json:"has_spoiler,omitempty"`
	SupportsStreaming bool       `json:"supports_streaming,omitempty"`

	CaptionOptions
	MessageOptions
}

func NewSendVideo(chatID ChatID, video InputFile) *SendVideo {
	return &SendVideo{ChatID: chatID, Video: video}
}

func (*SendVideo) MethodName() string { return "sendVideo" }

func (m *SendVideo) Uploads() []Upload {
	return append(uploadOf("video", &m.Video), attachOf(m.Thumbnail)...)
}

func (m *SendVideo) WithCaption(caption CaptionOptions) *SendVideo {
	m.CaptionOptions = caption

	return m
}

func (m *SendVideo) WithThumbnail(thumbnail InputFile) *SendVideo {
	m.Thumbnail = &thumbnail

	return m
}

type SendAnimation struct {
	ChatID     ChatID     `json:"chat_id"`
	Animation  InputFile  `json:"animation"`
	Duration   int        `json:"duration,omitempty"`
	Width      int        `json:"width,omitempty"`
	Height     int        `json:"height,omitempty"`
	Thumbnail  *InputFile `json:"thumbnail,omitempty"`
	HasSpoiler bool       `json:"has_spoiler,omitempty"`

	CaptionOptions
	MessageOptions
}

func NewSendAnimation(chatID ChatID, animation InputFile) *SendAnimation {
	return &SendAnimation{ChatID: chatID, Animation: animation}
}

func (*SendAnimation) MethodName() string { return "sendAnimation" }

func (m *SendAnimation) Uploads() []Upload {
	return append(uploadOf("animation", &m.Animation), attachOf(m.Thumbnail)...)
}

func (m *SendAnimation) WithCaption(caption CaptionOptions) *SendAnimation {
	m.CaptionOptions = caption

	return m
}

type SendVoice struct {
	ChatID   ChatID    `json:"chat_id"`
	Voice    InputFile `json:"voice"`
	Duration int       `json:"duration,omitempty"`

	CaptionOptions
	MessageOptions
}

func NewSendVoice(chatID ChatID, voice InputFile) *SendVoice {
	return &SendVoice{ChatID: chatID, Voice: voice}
}

func (*SendVoice) MethodName() string { return "sendVoice" }

func (m *SendVoice) Uploads() []Upload { return uploadOf("voice", &m.Voice) }

func (m *SendVoice) WithCaption(caption CaptionOptions) *SendVoice {
	m.CaptionOptions = caption

	return m
}

// SendVideoNote sends a rounded square video. Length is the side in pixels.
type SendVideoNote struct {
	ChatID    ChatID     `json:"chat_id"`
	VideoNote InputFile  `json:"video_note"`
	Duration  int        `json:"duration,omitempty"`
	Length    int        `json:"length,omitempty"`
	Thumbnail *InputFile `json:"thumbnail,omitempty"`

	MessageOptions
}

func NewSendVideoNote(chatID ChatID, videoNote InputFile) *SendVideoNote {
	return &SendVideoNote{ChatID: chatID, VideoNote: videoNote}
}

func (*SendVideoNote) MethodName() string { return "sendVideoNote" }

func (m *SendVideoNote) Uploads() []Upload {
	return append(uploadOf("video_note", &m.VideoNote), attachOf(m.Thumbnail)...)
}

type MediaType string

const (
	MediaTypePhoto    MediaType = "photo"
	MediaTypeVideo    MediaType = "video"
	MediaTypeAudio    MediaType = "audio"
	MediaTypeDocument MediaType = "document"
)

// InputMedia is an item of a media group: InputMediaPhoto, InputMediaVideo,
// InputMediaAudio or InputMediaDocument.
type InputMedia interface {
	mediaUploads() []Upload
}

type InputMediaPhoto struct {
	Type       MediaType `json:"type"`
	Media      InputFile `json:"media"`
	HasSpoiler bool      `json:"has_spoiler,omitempty"`

	CaptionOptions
}

func NewInputMediaPhoto(media InputFile) *InputMediaPhoto {
	return &InputMediaPhoto{Type: MediaTypePhoto, Media: media}
}

func (m *InputMediaPhoto) mediaUploads() []Upload { return attachOf(&m.Media) }

type InputMediaVideo struct {
	Type              MediaType  `json:"type"`
	Media             InputFile  `json:"media"`
	Thumbnail         *InputFile `json:"thumbnail,omitempty"`
	Width             int        `json:"width,omitempty"`
	Height            int        `json:"height,omitempty"`
	Duration          int        `json:"duration,omitempty"`
	SupportsStreaming bool       `json:"supports_streaming,omitempty"`
	HasSpoiler        bool       `json:"has_spoiler,omitempty"`

	CaptionOptions
}

func NewInputMediaVideo(media InputFile) *InputMediaVideo {
	return &InputMediaVideo{Type: MediaTypeVideo, Media: media}
}

func (m *InputMediaVideo) mediaUploads() []Upload {
	return append(attachOf(&m.Media), attachOf(m.Thumbnail)...)
}

type InputMediaAudio struct {
	Type      MediaType  `json:"type"`
	Media     InputFile  `json:"media"`
	Thumbnail *InputFile `json:"thumbnail,omitempty"`
	Duration  int        `json:"duration,omitempty"`
	Performer string     `json:"performer,omitempty"`
	Title     string     `json:"title,omitempty"`

	CaptionOptions
}

func NewInputMediaAudio(media InputFile) *InputMediaAudio {
	return &InputMediaAudio{Type: MediaTypeAudio, Media: media}
}

func (m *InputMediaAudio) mediaUploads() []Upload {
	return append(attachOf(&m.Media), attachOf(m.Thumbnail)...)
}

type InputMediaDocument struct {
	Type                        MediaType  `json:"type"`
	Media                       InputFile  `json:"media"`
	Thumbnail                   *InputFile `json:"thumbnail,omitempty"`
	DisableContentTypeDetection bool       `json:"disable_content_type_detection,omitempty"`

	CaptionOptions
}

func NewInputMediaDocument(media InputFile) *InputMediaDocument {
	return &InputMediaDocument{Type: MediaTypeDocument, Media: media}
}

func (m *InputMediaDocument) mediaUploads() []Upload {
	return append(attachOf(&m.Media), attachOf(m.Thumbnail)...)
}

// SendMediaGroup sends 2 to 10 items as an album. Audio and documents can
// only be grouped with items of the same type.
type SendMediaGroup struct {
	ChatID              ChatID       `json:"chat_id"`
	Media               []InputMedia `json:"media"`
	MessageThreadID     int          `json:"message_thread_id,omitempty"`
	DisableNotification bool         `json:"disable_notification,omitempty"`
	ProtectContent      bool         `json:"protect_content,omitempty"`
	ReplyToMessageID    int          `json:"reply_to_message_id,omitempty"`
}

func NewSendMediaGroup(chatID ChatID, media ...InputMedia) *SendMediaGroup {
	return &SendMediaGroup{ChatID: chatID, Media: media}
}

func (*SendMediaGroup) MethodName() string { return "sendMediaGroup" }

func (m *SendMediaGroup) Uploads() []Upload {
	var uploads []Upload

	for _, media := range m.Media {
		uploads = append(uploads, media.mediaUploads()...)
	}

	return uploads
}
