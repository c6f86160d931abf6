package yatgmessageencoding

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

const (
	mentionURLPrefix = "tg://user?id="
	emojiURLPrefix   = "tg://emoji?id="
	languagePrefix   = "language-"
)

// HTMLEncoding handles the HTML parse mode.
type HTMLEncoding struct{}

// NewHTMLEncoding returns the HTML parse mode encoding.
//
// Example usage:
//
//	html := yatgmessageencoding.NewHTMLEncoding()
//	markup := html.Unparse(msg.Text, msg.Entities)
func NewHTMLEncoding() *HTMLEncoding {
	return &HTMLEncoding{}
}

// Unparse renders text as Telegram HTML.
func (h *HTMLEncoding) Unparse(text string, entities []yatgtypes.MessageEntity) string {
	return render(htmlSyntax{}, text, entities)
}

type htmlSyntax struct{}

var (
	htmlTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	htmlAttrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func (htmlSyntax) open(entity yatgtypes.MessageEntity) string {
	switch entity.Type {
	case yatgtypes.EntityTypeBold:
		return "<b>"
	case yatgtypes.EntityTypeItalic:
		return "<i>"
	case yatgtypes.EntityTypeUnderline:
		return "<u>"
	case yatgtypes.EntityTypeStrikethrough:
		return "<s>"
	case yatgtypes.EntityTypeSpoiler:
		return "<tg-spoiler>"
	case yatgtypes.EntityTypeCode:
		return "<code>"
	case yatgtypes.EntityTypePre:
		if entity.Language == "" {
			return "<pre>"
		}

		return `<pre><code class="` + languagePrefix + htmlAttrEscaper.Replace(entity.Language) + `">`
	case yatgtypes.EntityTypeTextLink:
		return `<a href="` + htmlAttrEscaper.Replace(entity.URL) + `">`
	case yatgtypes.EntityTypeTextMention:
		if entity.User == nil {
			return ""
		}

		return `<a href="` + entity.User.MentionURL() + `">`
	case yatgtypes.EntityTypeCustomEmoji:
		return `<tg-emoji emoji-id="` + htmlAttrEscaper.Replace(entity.CustomEmojiID) + `">`
	default:
		return ""
	}
}

func (htmlSyntax) close(entity yatgtypes.MessageEntity) string {
	switch entity.Type {
	case yatgtypes.EntityTypeBold:
		return "</b>"
	case yatgtypes.EntityTypeItalic:
		return "</i>"
	case yatgtypes.EntityTypeUnderline:
		return "</u>"
	case yatgtypes.EntityTypeStrikethrough:
		return "</s>"
	case yatgtypes.EntityTypeSpoiler:
		return "</tg-spoiler>"
	case yatgtypes.EntityTypeCode:
		return "</code>"
	case yatgtypes.EntityTypePre:
		if entity.Language == "" {
			return "</pre>"
		}

		return "</code></pre>"
	case yatgtypes.EntityTypeTextLink:
		return "</a>"
	case yatgtypes.EntityTypeTextMention:
		if entity.User == nil {
			return ""
		}

		return "</a>"
	case yatgtypes.EntityTypeCustomEmoji:
		return "</tg-emoji>"
	default:
		return ""
	}
}

func (htmlSyntax) escape(text string, _ bool) string {
	return htmlTextEscaper.Replace(text)
}

func (htmlSyntax) joint(_, _ string) string {
	return ""
}

// openTag is an element on the Parse stack. index is -1 for elements that
// do not produce an entity of their own.
type openTag struct {
	name  string
	index int
}

// Parse turns Telegram HTML into plain text and entities. Only the tags the
// Bot API accepts are allowed, and every tag must be closed in order.
//
// Example usage:
//
//	text, entities, err := html.Parse(`<a href="https://go.dev">Go</a> &amp; more`)
//	// text == "Go & more", entities == [{text_link 0 2 https://go.dev}]
func (h *HTMLEncoding) Parse(markup string) (string, []yatgtypes.MessageEntity, yaerrors.Error) {
	if !utf8.ValidString(markup) {
		return "", nil, invalidUTF8("[HTML]")
	}

	var (
		buf   textBuffer
		stack []openTag
	)

	z := html.NewTokenizer(strings.NewReader(markup))

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", nil, yaerrors.FromError(
					http.StatusBadRequest,
					errors.Join(ErrInvalidMarkup, err),
					"[HTML] failed to tokenize",
				)
			}

			if len(stack) > 0 {
				return "", nil, yaerrors.FromError(
					http.StatusBadRequest,
					ErrUnclosedTag,
					fmt.Sprintf("[HTML] <%s> is never closed", stack[len(stack)-1].name),
				)
			}

			text, entities := buf.result()

			return text, entities, nil
		case html.TextToken:
			buf.write(string(z.Text()))
		case html.StartTagToken:
			tag, err := h.startTag(z, &buf, stack)
			if err != nil {
				return "", nil, err
			}

			stack = append(stack, tag)
		case html.EndTagToken:
			name, _ := z.TagName()

			if len(stack) == 0 || stack[len(stack)-1].name != string(name) {
				return "", nil, yaerrors.FromError(
					http.StatusBadRequest,
					ErrUnexpectedEndTag,
					fmt.Sprintf("[HTML] unexpected </%s>", name),
				)
			}

			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if top.index >= 0 {
				buf.close(top.index)
			}
		case html.SelfClosingTagToken:
			name, _ := z.TagName()

			return "", nil, yaerrors.FromError(
				http.StatusBadRequest,
				ErrUnsupportedTag,
				fmt.Sprintf("[HTML] self-closing <%s/>", name),
			)
		case html.CommentToken, html.DoctypeToken:
		}
	}
}

func (h *HTMLEncoding) startTag(
	z *html.Tokenizer,
	buf *textBuffer,
	stack []openTag,
) (openTag, yaerrors.Error) {
	rawName, hasAttr := z.TagName()
	name := string(rawName)

	attrs := make(map[string]string)

	for hasAttr {
		var key, val []byte

		key, val, hasAttr = z.TagAttr()
		attrs[string(key)] = string(val)
	}

	entity := yatgtypes.MessageEntity{}

	switch name {
	case "b", "strong":
		entity.Type = yatgtypes.EntityTypeBold
	case "i", "em":
		entity.Type = yatgtypes.EntityTypeItalic
	case "u", "ins":
		entity.Type = yatgtypes.EntityTypeUnderline
	case "s", "strike", "del":
		entity.Type = yatgtypes.EntityTypeStrikethrough
	case "tg-spoiler":
		entity.Type = yatgtypes.EntityTypeSpoiler
	case "span":
		if attrs["class"] != "tg-spoiler" {
			return openTag{}, unsupportedTag(`<span> without class="tg-spoiler"`)
		}

		entity.Type = yatgtypes.EntityTypeSpoiler
	case "pre":
		entity.Type = yatgtypes.EntityTypePre
	case "code":
		if pre, ok := h.enclosingPre(buf, stack); ok {
			buf.entities[pre].Language = strings.TrimPrefix(attrs["class"], languagePrefix)

			return openTag{name: name, index: -1}, nil
		}

		entity.Type = yatgtypes.EntityTypeCode
	case "a":
		href, ok := attrs["href"]
		if !ok {
			return openTag{}, yaerrors.FromError(
				http.StatusBadRequest,
				ErrMissingAttribute,
				"[HTML] <a> without href",
			)
		}

		if id, found := strings.CutPrefix(href, mentionURLPrefix); found {
			userID, err := strconv.ParseInt(id, 10, 64)
			if err != nil {
				return openTag{}, yaerrors.FromError(
					http.StatusBadRequest,
					errors.Join(ErrInvalidUserID, err),
					"[HTML] bad mention link "+href,
				)
			}

			entity.Type = yatgtypes.EntityTypeTextMention
			entity.User = &yatgtypes.User{ID: userID}
		} else {
			entity.Type = yatgtypes.EntityTypeTextLink
			entity.URL = href
		}
	case "tg-emoji":
		id, ok := attrs["emoji-id"]
		if !ok {
			return openTag{}, yaerrors.FromError(
				http.StatusBadRequest,
				ErrMissingAttribute,
				"[HTML] <tg-emoji> without emoji-id",
			)
		}

		entity.Type = yatgtypes.EntityTypeCustomEmoji
		entity.CustomEmojiID = id
	default:
		return openTag{}, unsupportedTag("<" + name + ">")
	}

	return openTag{name: name, index: buf.open(entity)}, nil
}

// enclosingPre reports the pre entity a <code> tag gives a language to: the
// innermost open tag is <pre> and no text was written inside it yet.
func (h *HTMLEncoding) enclosingPre(buf *textBuffer, stack []openTag) (int, bool) {
	if len(stack) == 0 {
		return 0, false
	}

	top := stack[len(stack)-1]
	if top.name != "pre" || top.index < 0 {
		return 0, false
	}

	if buf.entities[top.index].Offset != buf.utf16 {
		return 0, false
	}

	return top.index, true
}

func invalidUTF8(prefix string) yaerrors.Error {
	return yaerrors.FromError(
		http.StatusBadRequest,
		ErrInvalidMarkup,
		prefix+" markup is not valid UTF-8",
	)
}

func unsupportedTag(what string) yaerrors.Error {
	return yaerrors.FromError(
		http.StatusBadRequest,
		ErrUnsupportedTag,
		"[HTML] "+what,
	)
}
