package yatgentities

import (
	"iter"
	"math"
)

// Resolve translates annotations into byte ranges of text in a single
// forward pass.
//
// Annotations must be sorted by offset and must not overlap, as Telegram
// sends them for non-nested entities; the cursor is never rewound. Use
// Validate to check untrusted input and SortByOffset to order it, or
// ResolveNested for entities that may nest.
//
// Resolve never fails:
//
//   - a zero-length annotation resolves to an empty range,
//   - an annotation running past the end of text is truncated to len(text),
//   - once an annotation starts past the end of text, it and every later
//     annotation are dropped,
//   - negative offsets and lengths count as zero.
//
// Example usage:
//
//	text := "我 #上班 o"
//	refs := yatgentities.Resolve(text, []yatgtypes.MessageEntity{
//		{Type: yatgtypes.EntityTypeHashtag, Offset: 2, Length: 3},
//	})
//	fmt.Println(refs[0].Text()) // #上班
func Resolve[A Annotation](text string, annotations []A) []Ref[A] {
	refs := make([]Ref[A], 0, len(annotations))

	for ref := range Seq(text, annotations) {
		refs = append(refs, ref)
	}

	return refs
}

// Seq is the lazy form of Resolve. Stopping the iteration early stops the scan.
func Seq[A Annotation](text string, annotations []A) iter.Seq[Ref[A]] {
	return func(yield func(Ref[A]) bool) {
		c := cursor{text: text}

		for _, annotation := range annotations {
			offset, end := bounds(annotation)

			if !c.seek(offset) {
				return
			}

			start := c.pos.utf8

			c.seek(end)

			ref := Ref[A]{
				Entity: annotation,
				Start:  start,
				End:    c.pos.utf8,
				text:   text,
			}

			if !yield(ref) {
				return
			}
		}
	}
}

// ResolveOne resolves a single annotation. ok is false when the annotation
// starts past the end of text.
func ResolveOne[A Annotation](text string, annotation A) (Ref[A], bool) {
	for ref := range Seq(text, []A{annotation}) {
		return ref, true
	}

	return Ref[A]{text: text}, false
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}

	return a + b
}
