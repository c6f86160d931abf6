package yatgmessageencoding

import (
	"strings"

	"github.com/YaCodeDev/GoYaTgBotAPI/yatgentities"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

// textBuffer accumulates plain text together with its length in UTF-16
// code units, which is what entity offsets are measured in.
type textBuffer struct {
	text     strings.Builder
	utf16    int
	entities []yatgtypes.MessageEntity
}

func (b *textBuffer) write(s string) {
	b.text.WriteString(s)
	b.utf16 += yatgentities.UTF16Len(s)
}

// open starts an entity at the current position and returns its index.
func (b *textBuffer) open(entity yatgtypes.MessageEntity) int {
	entity.Offset = b.utf16
	b.entities = append(b.entities, entity)

	return len(b.entities) - 1
}

// close finishes the entity opened at index.
func (b *textBuffer) close(index int) {
	b.entities[index].Length = b.utf16 - b.entities[index].Offset
}

// trailingNewlines counts the newlines the text ends with.
func (b *textBuffer) trailingNewlines() int {
	s := b.text.String()

	return len(s) - len(strings.TrimRight(s, "\n"))
}

// trimTrailingNewlines drops the newlines the text ends with and shortens
// entities that covered them.
func (b *textBuffer) trimTrailingNewlines() {
	n := b.trailingNewlines()
	if n == 0 {
		return
	}

	s := b.text.String()

	b.text.Reset()
	b.text.WriteString(s[:len(s)-n])
	b.utf16 -= n

	for i := range b.entities {
		end := min(b.entities[i].Offset+b.entities[i].Length, b.utf16)
		b.entities[i].Length = max(end-b.entities[i].Offset, 0)
	}
}

// result returns the text and every non-empty entity in opening order.
func (b *textBuffer) result() (string, []yatgtypes.MessageEntity) {
	entities := make([]yatgtypes.MessageEntity, 0, len(b.entities))

	for _, entity := range b.entities {
		if entity.Length > 0 {
			entities = append(entities, entity)
		}
	}

	if len(entities) == 0 {
		entities = nil
	}

	return b.text.String(), entities
}
