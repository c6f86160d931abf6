package yatgmessageencoding

import (
	"strings"

	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

// MarkdownV2Encoding renders the MarkdownV2 parse mode.
type MarkdownV2Encoding struct{}

// NewMarkdownV2Encoding returns the MarkdownV2 unparser.
//
// Example usage:
//
//	md := yatgmessageencoding.NewMarkdownV2Encoding()
//	markup := md.Unparse("1.5 is bold", []yatgtypes.MessageEntity{
//		{Type: yatgtypes.EntityTypeBold, Offset: 7, Length: 4},
//	})
//	// markup == "1\\.5 is *bold*"
func NewMarkdownV2Encoding() *MarkdownV2Encoding {
	return &MarkdownV2Encoding{}
}

// Unparse renders text as MarkdownV2.
func (m *MarkdownV2Encoding) Unparse(text string, entities []yatgtypes.MessageEntity) string {
	return render(markdownV2Syntax{}, text, entities)
}

// EscapeMarkdownV2 escapes every character MarkdownV2 reserves.
func EscapeMarkdownV2(text string) string {
	return markdownV2TextEscaper.Replace(text)
}

type markdownV2Syntax struct{}

var (
	markdownV2TextEscaper = strings.NewReplacer(
		`\`, `\\`, "_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
		"~", `\~`, "`", "\\`", ">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`,
		"=", `\=`, "|", `\|`, "{", `\{`, "}", `\}`, ".", `\.`, "!", `\!`,
	)
	markdownV2CodeEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`")
	markdownV2URLEscaper  = strings.NewReplacer(`\`, `\\`, ")", `\)`)
)

func (markdownV2Syntax) open(entity yatgtypes.MessageEntity) string {
	switch entity.Type {
	case yatgtypes.EntityTypeBold:
		return "*"
	case yatgtypes.EntityTypeItalic:
		return "_"
	case yatgtypes.EntityTypeUnderline:
		return "__"
	case yatgtypes.EntityTypeStrikethrough:
		return "~"
	case yatgtypes.EntityTypeSpoiler:
		return "||"
	case yatgtypes.EntityTypeCode:
		return "`"
	case yatgtypes.EntityTypePre:
		return "```" + entity.Language + "\n"
	case yatgtypes.EntityTypeTextLink:
		return "["
	case yatgtypes.EntityTypeTextMention:
		if entity.User == nil {
			return ""
		}

		return "["
	case yatgtypes.EntityTypeCustomEmoji:
		return "!["
	default:
		return ""
	}
}

func (markdownV2Syntax) close(entity yatgtypes.MessageEntity) string {
	switch entity.Type {
	case yatgtypes.EntityTypePre:
		return "\n```"
	case yatgtypes.EntityTypeTextLink:
		return "](" + markdownV2URLEscaper.Replace(entity.URL) + ")"
	case yatgtypes.EntityTypeTextMention:
		if entity.User == nil {
			return ""
		}

		return "](" + entity.User.MentionURL() + ")"
	case yatgtypes.EntityTypeCustomEmoji:
		return "](" + emojiURLPrefix + markdownV2URLEscaper.Replace(entity.CustomEmojiID) + ")"
	default:
		return markdownV2Syntax{}.open(entity)
	}
}

func (markdownV2Syntax) escape(text string, inCode bool) string {
	if inCode {
		return markdownV2CodeEscaper.Replace(text)
	}

	return markdownV2TextEscaper.Replace(text)
}

// joint breaks runs of underscores, since "___" is read greedily as the
// underline marker first.
func (markdownV2Syntax) joint(prev, next string) string {
	if strings.HasSuffix(prev, "_") && strings.HasPrefix(next, "_") {
		return "\r"
	}

	return ""
}
