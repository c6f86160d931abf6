// Package yatgentities translates Telegram message entities into byte ranges
// of Go strings.
//
// Telegram measures entity offsets and lengths in UTF-16 code units, while
// Go strings are indexed in UTF-8 bytes. Resolve walks the text once, rune by
// rune, and turns every (offset, length) pair into a [Start, End) byte range
// that never splits a rune.
//
// Any type with GetOffset and GetLength methods is an Annotation, which
// covers yatgtypes.MessageEntity as well as gotd tg.MessageEntityClass. The
// annotation is carried through unchanged, so its kind and extra fields stay
// available next to the resolved range.
//
// Example usage:
//
//	for _, ref := range yatgentities.Resolve(msg.Text, msg.Entities) {
//		fmt.Println(ref.Entity.Type, ref.Text())
//	}
package yatgentities

// Annotation is a rich-text marker measured in UTF-16 code units.
type Annotation interface {
	GetOffset() int
	GetLength() int
}

// Ref is an annotation resolved against its text. Start and End are byte
// offsets, so text[Start:End] is the annotated substring.
type Ref[A Annotation] struct {
	Entity A
	Start  int
	End    int

	text string
}

// Text returns the annotated substring. It shares memory with the resolved text.
func (r Ref[A]) Text() string {
	return r.text[r.Start:r.End]
}

// Len returns the length of the annotated substring in bytes.
func (r Ref[A]) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the annotation resolved to an empty range.
func (r Ref[A]) IsEmpty() bool {
	return r.Start == r.End
}
