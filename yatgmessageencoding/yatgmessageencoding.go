// Package yatgmessageencoding converts between Telegram entities and the
// markup of the Bot API parse modes.
//
// Unparse renders a text and its entities (a received message, typically)
// back into markup that produces the same formatting when sent with the
// matching parse mode. Parse goes the other way and turns markup into plain
// text plus entities, which lets a bot send formatted text without a parse
// mode at all.
//
// Entities may nest and may partially overlap. Unparse closes and reopens
// tags where two entities cross, so the output is always well formed.
package yatgmessageencoding

import (
	"github.com/gotd/td/tg"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

// Unparser renders text and entities as markup.
type Unparser interface {
	// Unparse reconstructs markup for text. Entities are measured in
	// UTF-16 code units, as received from Telegram.
	//
	// Example usage:
	//
	//	html := yatgmessageencoding.NewHTMLEncoding()
	//	out := html.Unparse("This is bold text", []yatgtypes.MessageEntity{
	//		{Type: yatgtypes.EntityTypeBold, Offset: 8, Length: 4},
	//	})
	//	// out == "This is <b>bold</b> text"
	Unparse(text string, entities []yatgtypes.MessageEntity) string
}

// Parser turns markup into plain text and entities.
type Parser interface {
	// Parse returns the plain text and its entities.
	//
	// Example usage:
	//
	//	text, entities, err := yatgmessageencoding.NewHTMLEncoding().Parse("<b>hi</b> there")
	//	// text == "hi there", entities == [{bold 0 2}]
	Parse(markup string) (string, []yatgtypes.MessageEntity, yaerrors.Error)
}

// MessageEncoding both parses and unparses one markup language.
type MessageEncoding interface {
	Parser
	Unparser
}

// UnparseTD is Unparse for entities received over MTProto through gotd.
func UnparseTD(u Unparser, text string, entities []tg.MessageEntityClass) string {
	return u.Unparse(text, yatgtypes.FromTDEntities(entities))
}

// ForParseMode returns the unparser producing markup for mode, or nil for
// yatgtypes.ParseModeNone and the legacy Markdown mode.
func ForParseMode(mode yatgtypes.ParseMode) Unparser {
	switch mode {
	case yatgtypes.ParseModeHTML:
		return NewHTMLEncoding()
	case yatgtypes.ParseModeMarkdownV2:
		return NewMarkdownV2Encoding()
	default:
		return nil
	}
}
