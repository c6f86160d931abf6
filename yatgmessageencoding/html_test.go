package yatgmessageencoding_test

import (
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmessageencoding"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

type E = yatgtypes.MessageEntity

func TestHTMLUnparse_Works(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		entities []E
		want     string
	}{
		{
			name:     "single bold",
			text:     "This is bold text",
			entities: []E{{Type: yatgtypes.EntityTypeBold, Offset: 8, Length: 4}},
			want:     "This is <b>bold</b> text",
		},
		{
			name: "escapes plain text",
			text: "a < b & c",
			want: "a &lt; b &amp; c",
		},
		{
			name: "nested",
			text: "bold italic",
			entities: []E{
				{Type: yatgtypes.EntityTypeBold, Offset: 0, Length: 11},
				{Type: yatgtypes.EntityTypeItalic, Offset: 5, Length: 6},
			},
			want: "<b>bold <i>italic</i></b>",
		},
		{
			name:     "huge length is cut at the end",
			text:     "a😀b_c",
			entities: []E{{Type: yatgtypes.EntityTypeBold, Offset: 1, Length: math.MaxInt}},
			want:     "a<b>😀b_c</b>",
		},
		{
			name: "unsorted input",
			text: "bold italic",
			entities: []E{
				{Type: yatgtypes.EntityTypeItalic, Offset: 5, Length: 6},
				{Type: yatgtypes.EntityTypeBold, Offset: 0, Length: 11},
			},
			want: "<b>bold <i>italic</i></b>",
		},
		{
			name: "partial overlap reopens",
			text: "abcdef",
			entities: []E{
				{Type: yatgtypes.EntityTypeBold, Offset: 0, Length: 4},
				{Type: yatgtypes.EntityTypeItalic, Offset: 2, Length: 4},
			},
			want: "<b>ab<i>cd</i></b><i>ef</i>",
		},
		{
			name:     "surrogate pair",
			text:     "Hello 🌍 world",
			entities: []E{{Type: yatgtypes.EntityTypeBold, Offset: 6, Length: 2}},
			want:     "Hello <b>🌍</b> world",
		},
		{
			name:     "pre with language",
			text:     "x := 1",
			entities: []E{{Type: yatgtypes.EntityTypePre, Offset: 0, Length: 6, Language: "go"}},
			want:     `<pre><code class="language-go">x := 1</code></pre>`,
		},
		{
			name:     "pre without language",
			text:     "a<b",
			entities: []E{{Type: yatgtypes.EntityTypePre, Offset: 0, Length: 3}},
			want:     "<pre>a&lt;b</pre>",
		},
		{
			name: "link url is attribute escaped",
			text: "go",
			entities: []E{
				{Type: yatgtypes.EntityTypeTextLink, Offset: 0, Length: 2, URL: `https://x.y/?q="a"&b`},
			},
			want: `<a href="https://x.y/?q=&quot;a&quot;&amp;b">go</a>`,
		},
		{
			name: "text mention",
			text: "Bob",
			entities: []E{
				{Type: yatgtypes.EntityTypeTextMention, Offset: 0, Length: 3, User: &yatgtypes.User{ID: 42}},
			},
			want: `<a href="tg://user?id=42">Bob</a>`,
		},
		{
			name: "custom emoji",
			text: "👍",
			entities: []E{
				{Type: yatgtypes.EntityTypeCustomEmoji, Offset: 0, Length: 2, CustomEmojiID: "5368"},
			},
			want: `<tg-emoji emoji-id="5368">👍</tg-emoji>`,
		},
		{
			name: "entities inside code are dropped",
			text: "code bold",
			entities: []E{
				{Type: yatgtypes.EntityTypeCode, Offset: 0, Length: 9},
				{Type: yatgtypes.EntityTypeBold, Offset: 5, Length: 4},
			},
			want: "<code>code bold</code>",
		},
		{
			name:     "detected entities carry no markup",
			text:     "@bob hi",
			entities: []E{{Type: yatgtypes.EntityTypeMention, Offset: 0, Length: 4}},
			want:     "@bob hi",
		},
		{
			name:     "entity running past the end",
			text:     "hi",
			entities: []E{{Type: yatgtypes.EntityTypeBold, Offset: 0, Length: 10}},
			want:     "<b>hi</b>",
		},
		{
			name:     "empty entity",
			text:     "hi",
			entities: []E{{Type: yatgtypes.EntityTypeBold, Offset: 1, Length: 0}},
			want:     "hi",
		},
	}

	html := yatgmessageencoding.NewHTMLEncoding()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, html.Unparse(tt.text, tt.entities))
		})
	}
}

func TestHTMLParse_Works(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markup   string
		text     string
		entities []E
	}{
		{
			name:     "bold",
			markup:   "<b>hi</b> there",
			text:     "hi there",
			entities: []E{{Type: yatgtypes.EntityTypeBold, Offset: 0, Length: 2}},
		},
		{
			name:   "link and character reference",
			markup: `<a href="https://go.dev">Go</a> &amp; more`,
			text:   "Go & more",
			entities: []E{
				{Type: yatgtypes.EntityTypeTextLink, Offset: 0, Length: 2, URL: "https://go.dev"},
			},
		},
		{
			name:   "nested with surrogate pair",
			markup: "<strong>Hello <em>🌍</em></strong>",
			text:   "Hello 🌍",
			entities: []E{
				{Type: yatgtypes.EntityTypeBold, Offset: 0, Length: 8},
				{Type: yatgtypes.EntityTypeItalic, Offset: 6, Length: 2},
			},
		},
		{
			name:   "pre with language",
			markup: `<pre><code class="language-go">x := 1</code></pre>`,
			text:   "x := 1",
			entities: []E{
				{Type: yatgtypes.EntityTypePre, Offset: 0, Length: 6, Language: "go"},
			},
		},
		{
			name:   "code inside pre after text stays code",
			markup: "<pre>a <code>b</code></pre>",
			text:   "a b",
			entities: []E{
				{Type: yatgtypes.EntityTypePre, Offset: 0, Length: 3},
				{Type: yatgtypes.EntityTypeCode, Offset: 2, Length: 1},
			},
		},
		{
			name:   "mention",
			markup: `<a href="tg://user?id=42">Bob</a>`,
			text:   "Bob",
			entities: []E{
				{Type: yatgtypes.EntityTypeTextMention, Offset: 0, Length: 3, User: &yatgtypes.User{ID: 42}},
			},
		},
		{
			name:   "span spoiler",
			markup: `<span class="tg-spoiler">s</span><tg-spoiler>t</tg-spoiler>`,
			text:   "st",
			entities: []E{
				{Type: yatgtypes.EntityTypeSpoiler, Offset: 0, Length: 1},
				{Type: yatgtypes.EntityTypeSpoiler, Offset: 1, Length: 1},
			},
		},
		{
			name:   "custom emoji",
			markup: `<tg-emoji emoji-id="5368">👍</tg-emoji>`,
			text:   "👍",
			entities: []E{
				{Type: yatgtypes.EntityTypeCustomEmoji, Offset: 0, Length: 2, CustomEmojiID: "5368"},
			},
		},
		{
			name:   "empty tags are dropped",
			markup: "<b></b>x<!-- note -->",
			text:   "x",
		},
	}

	html := yatgmessageencoding.NewHTMLEncoding()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, entities, err := html.Parse(tt.markup)
			require.Nil(t, err)

			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.entities, entities)
		})
	}
}

func TestHTMLParse_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   error
	}{
		{name: "unclosed", markup: "<b>x", want: yatgmessageencoding.ErrUnclosedTag},
		{name: "crossed", markup: "<b><i>x</b></i>", want: yatgmessageencoding.ErrUnexpectedEndTag},
		{name: "stray end", markup: "x</b>", want: yatgmessageencoding.ErrUnexpectedEndTag},
		{name: "unsupported", markup: "<div>x</div>", want: yatgmessageencoding.ErrUnsupportedTag},
		{name: "plain span", markup: "<span>x</span>", want: yatgmessageencoding.ErrUnsupportedTag},
		{name: "self closing", markup: "a<br/>b", want: yatgmessageencoding.ErrUnsupportedTag},
		{name: "link without href", markup: "<a>x</a>", want: yatgmessageencoding.ErrMissingAttribute},
		{name: "emoji without id", markup: "<tg-emoji>x</tg-emoji>", want: yatgmessageencoding.ErrMissingAttribute},
		{name: "bad mention", markup: `<a href="tg://user?id=abc">x</a>`, want: yatgmessageencoding.ErrInvalidUserID},
		{name: "invalid utf-8", markup: "\xff", want: yatgmessageencoding.ErrInvalidMarkup},
	}

	html := yatgmessageencoding.NewHTMLEncoding()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := html.Parse(tt.markup)
			require.NotNil(t, err)

			assert.True(t, errors.Is(err, tt.want))
			assert.Equal(t, http.StatusBadRequest, err.Code())
		})
	}
}

func TestHTML_RoundTrip(t *testing.T) {
	t.Parallel()

	text := "Hello 🌍 & <world>"
	entities := []E{
		{Type: yatgtypes.EntityTypeBold, Offset: 0, Length: 8},
		{Type: yatgtypes.EntityTypeItalic, Offset: 6, Length: 2},
		{Type: yatgtypes.EntityTypeTextLink, Offset: 11, Length: 7, URL: "https://example.com/?a=1&b=2"},
	}

	html := yatgmessageencoding.NewHTMLEncoding()

	gotText, gotEntities, err := html.Parse(html.Unparse(text, entities))
	require.Nil(t, err)

	assert.Equal(t, text, gotText)
	assert.Equal(t, entities, gotEntities)
}
