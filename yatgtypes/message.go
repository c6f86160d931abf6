package yatgtypes

import (
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgentities"
)

// Message is a Telegram message. Text messages carry Text and Entities,
// media messages carry Caption and CaptionEntities.
type Message struct {
	MessageID             int                   `json:"message_id"`
	MessageThreadID       int                   `json:"message_thread_id,omitempty"`
	From                  *User                 `json:"from,omitempty"`
	SenderChat            *Chat                 `json:"sender_chat,omitempty"`
	Date                  int64                 `json:"date"`
	Chat                  Chat                  `json:"chat"`
	ForwardFrom           *User                 `json:"forward_from,omitempty"`
	ForwardFromChat       *Chat                 `json:"forward_from_chat,omitempty"`
	ForwardDate           int64                 `json:"forward_date,omitempty"`
	IsTopicMessage        bool                  `json:"is_topic_message,omitempty"`
	IsAutomaticForward    bool                  `json:"is_automatic_forward,omitempty"`
	ReplyToMessage        *Message              `json:"reply_to_message,omitempty"`
	ViaBot                *User                 `json:"via_bot,omitempty"`
	EditDate              int64                 `json:"edit_date,omitempty"`
	HasProtectedContent   bool                  `json:"has_protected_content,omitempty"`
	MediaGroupID          string                `json:"media_group_id,omitempty"`
	AuthorSignature       string                `json:"author_signature,omitempty"`
	Text                  string                `json:"text,omitempty"`
	Entities              []MessageEntity       `json:"entities,omitempty"`
	Animation             *Animation            `json:"animation,omitempty"`
	Audio                 *Audio                `json:"audio,omitempty"`
	Document              *Document             `json:"document,omitempty"`
	Photo                 []PhotoSize           `json:"photo,omitempty"`
	Sticker               *Sticker              `json:"sticker,omitempty"`
	Video                 *Video                `json:"video,omitempty"`
	VideoNote             *VideoNote            `json:"video_note,omitempty"`
	Voice                 *Voice                `json:"voice,omitempty"`
	Caption               string                `json:"caption,omitempty"`
	CaptionEntities       []MessageEntity       `json:"caption_entities,omitempty"`
	HasMediaSpoiler       bool                  `json:"has_media_spoiler,omitempty"`
	Contact               *Contact              `json:"contact,omitempty"`
	Dice                  *Dice                 `json:"dice,omitempty"`
	Poll                  *Poll                 `json:"poll,omitempty"`
	Venue                 *Venue                `json:"venue,omitempty"`
	Location              *Location             `json:"location,omitempty"`
	NewChatMembers        []User                `json:"new_chat_members,omitempty"`
	LeftChatMember        *User                 `json:"left_chat_member,omitempty"`
	NewChatTitle          string                `json:"new_chat_title,omitempty"`
	NewChatPhoto          []PhotoSize           `json:"new_chat_photo,omitempty"`
	DeleteChatPhoto       bool                  `json:"delete_chat_photo,omitempty"`
	GroupChatCreated      bool                  `json:"group_chat_created,omitempty"`
	SupergroupChatCreated bool                  `json:"supergroup_chat_created,omitempty"`
	ChannelChatCreated    bool                  `json:"channel_chat_created,omitempty"`
	MigrateToChatID       int64                 `json:"migrate_to_chat_id,omitempty"`
	MigrateFromChatID     int64                 `json:"migrate_from_chat_id,omitempty"`
	PinnedMessage         *Message              `json:"pinned_message,omitempty"`
	ReplyMarkup           *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// ResolveEntities resolves Entities against Text, one ref per entity.
// Nested entities are supported.
//
// Example usage:
//
//	for _, ref := range msg.ResolveEntities() {
//		if ref.Entity.Type == yatgtypes.EntityTypeHashtag {
//			tags = append(tags, ref.Text())
//		}
//	}
func (m *Message) ResolveEntities() []EntityRef {
	return yatgentities.ResolveNested(m.Text, m.Entities)
}

// ResolveCaptionEntities resolves CaptionEntities against Caption.
func (m *Message) ResolveCaptionEntities() []EntityRef {
	return yatgentities.ResolveNested(m.Caption, m.CaptionEntities)
}

// EntityTexts returns the text of every entity of the given kind, from the
// text and from the caption.
func (m *Message) EntityTexts(kind EntityType) []string {
	var texts []string

	for _, refs := range [][]EntityRef{m.ResolveEntities(), m.ResolveCaptionEntities()} {
		for _, ref := range refs {
			if ref.Entity.Type == kind {
				texts = append(texts, ref.Text())
			}
		}
	}

	return texts
}

// Content returns Text, or Caption for media messages, with its entities.
func (m *Message) Content() (string, []MessageEntity) {
	if m.Text != "" {
		return m.Text, m.Entities
	}

	return m.Caption, m.CaptionEntities
}

// LargestPhoto returns the biggest size of a photo message, or nil.
func (m *Message) LargestPhoto() *PhotoSize {
	if len(m.Photo) == 0 {
		return nil
	}

	largest := &m.Photo[0]

	for i := range m.Photo {
		if m.Photo[i].Width*m.Photo[i].Height > largest.Width*largest.Height {
			largest = &m.Photo[i]
		}
	}

	return largest
}

// MessageID identifies a message returned by copy-like methods.
type MessageID struct {
	MessageID int `json:"message_id"`
}
