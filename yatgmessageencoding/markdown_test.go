package yatgmessageencoding_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmessageencoding"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

func TestMarkdownParse_Works(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		text     string
		entities []E
	}{
		{
			name:     "heading and paragraph",
			markdown: "# Title\n\nHello **world**",
			text:     "Title\n\nHello world",
			entities: []E{
				{Type: yatgtypes.EntityTypeBold, Offset: 0, Length: 5},
				{Type: yatgtypes.EntityTypeBold, Offset: 13, Length: 5},
			},
		},
		{
			name:     "inline styles",
			markdown: "*it* and **bold** and ~~gone~~",
			text:     "it and bold and gone",
			entities: []E{
				{Type: yatgtypes.EntityTypeItalic, Offset: 0, Length: 2},
				{Type: yatgtypes.EntityTypeBold, Offset: 7, Length: 4},
				{Type: yatgtypes.EntityTypeStrikethrough, Offset: 16, Length: 4},
			},
		},
		{
			name:     "code span",
			markdown: "run `go test` now",
			text:     "run go test now",
			entities: []E{{Type: yatgtypes.EntityTypeCode, Offset: 4, Length: 7}},
		},
		{
			name:     "fenced code",
			markdown: "```go\nfmt.Println()\n```",
			text:     "fmt.Println()",
			entities: []E{{Type: yatgtypes.EntityTypePre, Offset: 0, Length: 13, Language: "go"}},
		},
		{
			name:     "link",
			markdown: "[Go](https://go.dev) site",
			text:     "Go site",
			entities: []E{{Type: yatgtypes.EntityTypeTextLink, Offset: 0, Length: 2, URL: "https://go.dev"}},
		},
		{
			name:     "mention link",
			markdown: "[Bob](tg://user?id=42)",
			text:     "Bob",
			entities: []E{
				{Type: yatgtypes.EntityTypeTextMention, Offset: 0, Length: 3, User: &yatgtypes.User{ID: 42}},
			},
		},
		{
			name:     "bullet list",
			markdown: "- one\n- two",
			text:     "• one\n• two",
		},
		{
			name:     "ordered list keeps its start",
			markdown: "3. a\n4. b",
			text:     "3. a\n4. b",
		},
		{
			name:     "thematic break",
			markdown: "a\n\n---\n\nb",
			text:     "a\n\n————————\n\nb",
		},
		{
			name:     "soft line break",
			markdown: "a\nb",
			text:     "a\nb",
		},
		{
			name:     "inline spoiler",
			markdown: "hi <tg-spoiler>secret</tg-spoiler>",
			text:     "hi secret",
			entities: []E{{Type: yatgtypes.EntityTypeSpoiler, Offset: 3, Length: 6}},
		},
		{
			name:     "surrogate pair",
			markdown: "🌍 **bold**",
			text:     "🌍 bold",
			entities: []E{{Type: yatgtypes.EntityTypeBold, Offset: 3, Length: 4}},
		},
		{
			name:     "autolink is plain text",
			markdown: "<https://go.dev>",
			text:     "https://go.dev",
		},
	}

	md := yatgmessageencoding.NewMarkdownEncoding()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, entities, err := md.Parse(tt.markdown)
			require.Nil(t, err)

			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.entities, entities)
		})
	}
}

func TestMarkdownParse_InvalidUTF8(t *testing.T) {
	t.Parallel()

	_, _, err := yatgmessageencoding.NewMarkdownEncoding().Parse("\xff")
	require.NotNil(t, err)

	assert.True(t, errors.Is(err, yatgmessageencoding.ErrInvalidMarkup))
}
