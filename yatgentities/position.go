package yatgentities

import "unicode/utf8"

const maxOneUTF16CodeUnitRune = 0xFFFF

// position is a point in a string measured in both encodings at once.
type position struct {
	utf8  int
	utf16 int
}

// cursor walks a string rune by rune. pos is always the start of the rune
// that has not been consumed yet.
type cursor struct {
	text string
	pos  position
}

// advance consumes one rune and reports false when the text is exhausted.
// Invalid bytes are consumed one at a time, each counting as U+FFFD.
func (c *cursor) advance() bool {
	if c.pos.utf8 >= len(c.text) {
		return false
	}

	r, size := utf8.DecodeRuneInString(c.text[c.pos.utf8:])

	c.pos.utf8 += size
	c.pos.utf16 += utf16Width(r)

	return true
}

// seek consumes runes until the UTF-16 position reaches target. A target
// inside a surrogate pair lands right after the pair. It reports false when
// the text runs out first.
func (c *cursor) seek(target int) bool {
	for c.pos.utf16 < target {
		if !c.advance() {
			return false
		}
	}

	return true
}

func utf16Width(r rune) int {
	if r > maxOneUTF16CodeUnitRune {
		return 2
	}

	return 1
}
