package yatgentities

// UTF16Len returns the length of s in UTF-16 code units, the unit Telegram
// uses for entity offsets and message length limits.
func UTF16Len(s string) int {
	n := 0

	for _, r := range s {
		n += utf16Width(r)
	}

	return n
}

// UTF16Offset converts a byte offset of text into a UTF-16 offset. An offset
// inside a multi-byte rune is rounded up to the end of that rune, an offset
// past the end of text is clamped to it.
func UTF16Offset(text string, byteOffset int) int {
	c := cursor{text: text}

	for c.pos.utf8 < byteOffset {
		if !c.advance() {
			break
		}
	}

	return c.pos.utf16
}

// ByteOffset converts a UTF-16 offset into a byte offset of text. An offset
// inside a surrogate pair is rounded up past the pair, an offset past the end
// of text is clamped to len(text).
func ByteOffset(text string, utf16Offset int) int {
	c := cursor{text: text}
	c.seek(utf16Offset)

	return c.pos.utf8
}

// Range converts the byte range [start, end) of text into the offset and
// length pair Telegram expects in a MessageEntity.
//
// Example usage:
//
//	text := "🔥 hot deal"
//	start := strings.Index(text, "hot")
//	offset, length := yatgentities.Range(text, start, start+len("hot")) // 3, 3
func Range(text string, start, end int) (offset, length int) {
	offset = UTF16Offset(text, start)

	if end <= start {
		return offset, 0
	}

	return offset, UTF16Offset(text, end) - offset
}
