package yatgtypes

import (
	"fmt"

	"github.com/YaCodeDev/GoYaTgBotAPI/yatgentities"
)

// EntityType is the kind of a MessageEntity.
type EntityType string

const (
	EntityTypeMention       EntityType = "mention"
	EntityTypeHashtag       EntityType = "hashtag"
	EntityTypeCashtag       EntityType = "cashtag"
	EntityTypeBotCommand    EntityType = "bot_command"
	EntityTypeURL           EntityType = "url"
	EntityTypeEmail         EntityType = "email"
	EntityTypePhoneNumber   EntityType = "phone_number"
	EntityTypeBold          EntityType = "bold"
	EntityTypeItalic        EntityType = "italic"
	EntityTypeUnderline     EntityType = "underline"
	EntityTypeStrikethrough EntityType = "strikethrough"
	EntityTypeSpoiler       EntityType = "spoiler"
	EntityTypeCode          EntityType = "code"
	EntityTypePre           EntityType = "pre"
	EntityTypeTextLink      EntityType = "text_link"
	EntityTypeTextMention   EntityType = "text_mention"
	EntityTypeCustomEmoji   EntityType = "custom_emoji"
)

var entityTypes = map[EntityType]struct{}{
	EntityTypeMention:       {},
	EntityTypeHashtag:       {},
	EntityTypeCashtag:       {},
	EntityTypeBotCommand:    {},
	EntityTypeURL:           {},
	EntityTypeEmail:         {},
	EntityTypePhoneNumber:   {},
	EntityTypeBold:          {},
	EntityTypeItalic:        {},
	EntityTypeUnderline:     {},
	EntityTypeStrikethrough: {},
	EntityTypeSpoiler:       {},
	EntityTypeCode:          {},
	EntityTypePre:           {},
	EntityTypeTextLink:      {},
	EntityTypeTextMention:   {},
	EntityTypeCustomEmoji:   {},
}

func (t EntityType) IsValid() bool {
	_, ok := entityTypes[t]

	return ok
}

// IsFormatting reports whether the entity only changes how the text looks,
// as opposed to entities Telegram detects in plain text (mentions, urls, ...).
func (t EntityType) IsFormatting() bool {
	switch t {
	case EntityTypeBold, EntityTypeItalic, EntityTypeUnderline, EntityTypeStrikethrough,
		EntityTypeSpoiler, EntityTypeCode, EntityTypePre, EntityTypeTextLink,
		EntityTypeTextMention, EntityTypeCustomEmoji:
		return true
	default:
		return false
	}
}

func (t *EntityType) UnmarshalText(text []byte) error {
	parsed := EntityType(text)
	if !parsed.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownEntityType, text)
	}

	*t = parsed

	return nil
}

// MessageEntity is one special entity in a text message, for example a
// hashtag, a username or a URL. Offset and Length are in UTF-16 code units.
type MessageEntity struct {
	Type          EntityType `json:"type"`
	Offset        int        `json:"offset"`
	Length        int        `json:"length"`
	URL           string     `json:"url,omitempty"`
	User          *User      `json:"user,omitempty"`
	Language      string     `json:"language,omitempty"`
	CustomEmojiID string     `json:"custom_emoji_id,omitempty"`
}

func (e MessageEntity) GetOffset() int { return e.Offset }

func (e MessageEntity) GetLength() int { return e.Length }

// EntityRef is a MessageEntity resolved against the text it belongs to.
type EntityRef = yatgentities.Ref[MessageEntity]
