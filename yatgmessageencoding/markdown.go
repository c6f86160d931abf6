package yatgmessageencoding

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

const (
	bulletMarker  = "• "
	thematicBreak = "————————"
)

// MarkdownEncoding parses CommonMark with GFM strikethrough into plain text
// and entities. Telegram has no markup mode for it, so the result is meant
// to be sent with the entities field and no parse mode.
type MarkdownEncoding struct {
	md goldmark.Markdown
}

// NewMarkdownEncoding returns a Markdown parser.
//
// Example usage:
//
//	text, entities, _ := yatgmessageencoding.NewMarkdownEncoding().Parse("# Title\n\nHello **world**")
//	// text == "Title\n\nHello world"
//	// entities == [{bold 0 5} {bold 13 5}]
func NewMarkdownEncoding() *MarkdownEncoding {
	return &MarkdownEncoding{
		md: goldmark.New(goldmark.WithExtensions(extension.Strikethrough)),
	}
}

// Parse converts markdown. Headings become bold, list items get a bullet or
// their number, and links to tg://user?id= become text mentions. Any other
// raw HTML than <tg-spoiler> is dropped.
func (m *MarkdownEncoding) Parse(markdown string) (string, []yatgtypes.MessageEntity, yaerrors.Error) {
	if !utf8.ValidString(markdown) {
		return "", nil, invalidUTF8("[MARKDOWN]")
	}

	source := []byte(markdown)
	root := m.md.Parser().Parse(text.NewReader(source))

	w := markdownWalker{source: source}

	if err := ast.Walk(root, w.walk); err != nil {
		return "", nil, yaerrors.FromError(
			http.StatusBadRequest,
			fmt.Errorf("%w: %w", ErrInvalidMarkup, err),
			"[MARKDOWN] failed to walk document",
		)
	}

	w.buf.trimTrailingNewlines()

	plain, entities := w.buf.result()

	return plain, entities, nil
}

// markdownWalker flattens a goldmark document into a textBuffer.
type markdownWalker struct {
	source   []byte
	buf      textBuffer
	stack    []int
	spoilers []int
	blocks   int
	lists    []*int
}

func (w *markdownWalker) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Text:
		if entering {
			w.text(n)
		}
	case *ast.String:
		if entering {
			w.buf.write(string(n.Value))
		}
	case *ast.CodeSpan:
		if entering {
			w.codeSpan(n)

			return ast.WalkSkipChildren, nil
		}
	case *ast.Emphasis:
		kind := yatgtypes.EntityTypeItalic
		if n.Level >= 2 {
			kind = yatgtypes.EntityTypeBold
		}

		w.toggle(entering, yatgtypes.MessageEntity{Type: kind})
	case *east.Strikethrough:
		w.toggle(entering, yatgtypes.MessageEntity{Type: yatgtypes.EntityTypeStrikethrough})
	case *ast.Link:
		w.toggle(entering, linkEntity(string(n.Destination)))
	case *ast.Image:
		w.toggle(entering, linkEntity(string(n.Destination)))
	case *ast.AutoLink:
		if entering {
			w.buf.write(string(n.URL(w.source)))
		}

		return ast.WalkSkipChildren, nil
	case *ast.RawHTML:
		if entering {
			w.rawHTML(n)
		}
	case *ast.Paragraph, *ast.TextBlock:
		w.paragraph(entering)
	case *ast.Heading:
		if entering {
			w.spacing()
		} else {
			w.blocks++
		}

		w.toggle(entering, yatgtypes.MessageEntity{Type: yatgtypes.EntityTypeBold})
	case *ast.FencedCodeBlock:
		if entering {
			w.codeBlock(n, infoLanguage(n.Language(w.source)))
		}

		return ast.WalkSkipChildren, nil
	case *ast.CodeBlock:
		if entering {
			w.codeBlock(n, "")
		}

		return ast.WalkSkipChildren, nil
	case *ast.List:
		w.list(n, entering)
	case *ast.ListItem:
		w.listItem(entering)
	case *ast.ThematicBreak:
		if entering {
			w.spacing()
			w.buf.write(thematicBreak)
			w.blocks++
		}
	case *ast.HTMLBlock:
		return ast.WalkSkipChildren, nil
	}

	return ast.WalkContinue, nil
}

func (w *markdownWalker) text(n *ast.Text) {
	value := n.Segment.Value(w.source)
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)

	w.buf.write(string(value))

	if n.SoftLineBreak() || n.HardLineBreak() {
		w.buf.write("\n")
	}
}

func (w *markdownWalker) codeSpan(n *ast.CodeSpan) {
	var code strings.Builder

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			code.Write(t.Segment.Value(w.source))
		}
	}

	index := w.buf.open(yatgtypes.MessageEntity{Type: yatgtypes.EntityTypeCode})
	w.buf.write(code.String())
	w.buf.close(index)
}

func (w *markdownWalker) codeBlock(n ast.Node, language string) {
	var code strings.Builder

	lines := n.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		code.Write(line.Value(w.source))
	}

	w.spacing()

	index := w.buf.open(yatgtypes.MessageEntity{
		Type:     yatgtypes.EntityTypePre,
		Language: language,
	})
	w.buf.write(strings.TrimSuffix(code.String(), "\n"))
	w.buf.close(index)

	w.blocks++
}

func (w *markdownWalker) rawHTML(n *ast.RawHTML) {
	tag := strings.ToLower(strings.TrimSpace(string(n.Segments.Value(w.source))))

	switch tag {
	case "<tg-spoiler>":
		w.spoilers = append(w.spoilers, w.buf.open(yatgtypes.MessageEntity{Type: yatgtypes.EntityTypeSpoiler}))
	case "</tg-spoiler>":
		if len(w.spoilers) == 0 {
			return
		}

		w.buf.close(w.spoilers[len(w.spoilers)-1])
		w.spoilers = w.spoilers[:len(w.spoilers)-1]
	}
}

func (w *markdownWalker) paragraph(entering bool) {
	if entering {
		if len(w.lists) == 0 {
			w.spacing()
		}

		return
	}

	if len(w.lists) == 0 {
		w.blocks++
	} else if w.buf.trailingNewlines() == 0 {
		w.buf.write("\n")
	}
}

func (w *markdownWalker) list(n *ast.List, entering bool) {
	if !entering {
		w.lists = w.lists[:len(w.lists)-1]
		if len(w.lists) == 0 {
			w.blocks++
		}

		return
	}

	if len(w.lists) == 0 {
		w.spacing()
	}

	var next *int

	if n.IsOrdered() {
		start := n.Start
		next = &start
	}

	w.lists = append(w.lists, next)
}

func (w *markdownWalker) listItem(entering bool) {
	if !entering {
		if w.buf.trailingNewlines() == 0 {
			w.buf.write("\n")
		}

		return
	}

	if w.buf.utf16 > 0 && w.buf.trailingNewlines() == 0 {
		w.buf.write("\n")
	}

	w.buf.write(strings.Repeat("  ", len(w.lists)-1))

	if next := w.lists[len(w.lists)-1]; next != nil {
		w.buf.write(strconv.Itoa(*next) + ". ")
		*next++
	} else {
		w.buf.write(bulletMarker)
	}
}

// spacing separates a new top-level block from the previous one by an
// empty line.
func (w *markdownWalker) spacing() {
	if w.blocks == 0 {
		return
	}

	if missing := 2 - w.buf.trailingNewlines(); missing > 0 {
		w.buf.write(strings.Repeat("\n", missing))
	}
}

func (w *markdownWalker) toggle(entering bool, entity yatgtypes.MessageEntity) {
	if entering {
		w.stack = append(w.stack, w.buf.open(entity))

		return
	}

	if len(w.stack) == 0 {
		return
	}

	w.buf.close(w.stack[len(w.stack)-1])
	w.stack = w.stack[:len(w.stack)-1]
}

func linkEntity(destination string) yatgtypes.MessageEntity {
	if id, ok := strings.CutPrefix(destination, mentionURLPrefix); ok {
		if userID, err := strconv.ParseInt(id, 10, 64); err == nil {
			return yatgtypes.MessageEntity{
				Type: yatgtypes.EntityTypeTextMention,
				User: &yatgtypes.User{ID: userID},
			}
		}
	}

	if id, ok := strings.CutPrefix(destination, emojiURLPrefix); ok && id != "" {
		return yatgtypes.MessageEntity{
			Type:          yatgtypes.EntityTypeCustomEmoji,
			CustomEmojiID: id,
		}
	}

	return yatgtypes.MessageEntity{
		Type: yatgtypes.EntityTypeTextLink,
		URL:  destination,
	}
}

// infoLanguage is the first word of a fenced block's info string.
func infoLanguage(info []byte) string {
	fields := strings.FieldsFunc(string(info), func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}
