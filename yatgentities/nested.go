package yatgentities

import "slices"

// edge is a zero-length annotation at one annotation boundary.
type edge int

func (e edge) GetOffset() int { return int(e) }

func (edge) GetLength() int { return 0 }

// ResolveNested resolves annotations that may nest or overlap, a hashtag
// inside bold text for example, as Telegram sends them. All boundaries are
// sorted and resolved in one forward pass, so the input order is free.
//
// The result has one ref per annotation, in input order. Truncation and
// clamping follow Resolve, except that an annotation starting past the end
// of text resolves to an empty ref at len(text) instead of being dropped.
//
// Example usage:
//
//	refs := yatgentities.ResolveNested("bold #tag", []yatgtypes.MessageEntity{
//		{Type: yatgtypes.EntityTypeBold, Offset: 0, Length: 9},
//		{Type: yatgtypes.EntityTypeHashtag, Offset: 5, Length: 4},
//	})
//	fmt.Println(refs[1].Text()) // #tag
func ResolveNested[A Annotation](text string, annotations []A) []Ref[A] {
	edges := make([]edge, 0, 2*len(annotations))

	for _, annotation := range annotations {
		start, end := bounds(annotation)
		edges = append(edges, edge(start), edge(end))
	}

	slices.Sort(edges)
	edges = slices.Compact(edges)

	bytesAt := make(map[edge]int, len(edges))
	for ref := range Seq(text, edges) {
		bytesAt[ref.Entity] = ref.Start
	}

	byteOf := func(e edge) int {
		if pos, ok := bytesAt[e]; ok {
			return pos
		}

		return len(text)
	}

	refs := make([]Ref[A], 0, len(annotations))

	for _, annotation := range annotations {
		start, end := bounds(annotation)

		refs = append(refs, Ref[A]{
			Entity: annotation,
			Start:  byteOf(edge(start)),
			End:    byteOf(edge(end)),
			text:   text,
		})
	}

	return refs
}

// bounds is the clamped UTF-16 range of annotation.
func bounds[A Annotation](annotation A) (start, end int) {
	start = max(annotation.GetOffset(), 0)

	return start, saturatingAdd(start, max(annotation.GetLength(), 0))
}
