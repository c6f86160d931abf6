package yatgmessageencoding

import (
	"cmp"
	"slices"
	"strings"

	"github.com/YaCodeDev/GoYaTgBotAPI/yatgentities"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

// syntax is one markup language as seen by render.
type syntax interface {
	open(entity yatgtypes.MessageEntity) string
	close(entity yatgtypes.MessageEntity) string
	escape(text string, inCode bool) string
	// joint separates two markers written back to back.
	joint(prev, next string) string
}

// span is an entity resolved to a byte range of the text.
type span struct {
	entity yatgtypes.MessageEntity
	start  int
	end    int
	index  int
}

func (s span) isCode() bool {
	return s.entity.Type == yatgtypes.EntityTypeCode || s.entity.Type == yatgtypes.EntityTypePre
}

// resolveSpans maps every formatting entity onto bytes of text. Nested and
// overlapping entities share one scan through yatgentities.ResolveNested.
func resolveSpans(text string, entities []yatgtypes.MessageEntity) []span {
	refs := yatgentities.ResolveNested(text, entities)
	spans := make([]span, 0, len(entities))

	for i, ref := range refs {
		if !ref.Entity.Type.IsFormatting() || ref.IsEmpty() {
			continue
		}

		spans = append(spans, span{
			entity: ref.Entity,
			start:  ref.Start,
			end:    ref.End,
			index:  i,
		})
	}

	slices.SortStableFunc(spans, func(a, b span) int {
		return cmp.Or(
			cmp.Compare(a.start, b.start),
			cmp.Compare(b.end, a.end),
			cmp.Compare(a.index, b.index),
		)
	})

	return spans
}

// render emits text with the markup of every formatting entity. Entities
// are opened outermost first, and an entity that ends while a later one is
// still open forces that one to be closed and reopened around its end.
// Entities starting inside code or pre are dropped.
func render(sx syntax, text string, entities []yatgtypes.MessageEntity) string {
	spans := resolveSpans(text, entities)
	if len(spans) == 0 {
		return sx.escape(text, false)
	}

	stops := make([]int, 0, 2*len(spans)+1)
	for _, s := range spans {
		stops = append(stops, s.start, s.end)
	}

	stops = append(stops, len(text))

	slices.Sort(stops)
	stops = slices.Compact(stops)

	r := renderer{syntax: sx}

	var (
		cursor int
		next   int
	)

	for _, stop := range stops {
		r.text(text[cursor:stop])
		cursor = stop

		r.closeEndingAt(stop)

		for ; next < len(spans) && spans[next].start == stop; next++ {
			if r.inCode() {
				continue
			}

			r.push(spans[next])
		}
	}

	for len(r.stack) > 0 {
		r.pop()
	}

	return r.out.String()
}

type renderer struct {
	syntax syntax
	out    strings.Builder
	stack  []span
	last   string
}

func (r *renderer) inCode() bool {
	return slices.ContainsFunc(r.stack, span.isCode)
}

func (r *renderer) text(chunk string) {
	if chunk == "" {
		return
	}

	r.out.WriteString(r.syntax.escape(chunk, r.inCode()))
	r.last = ""
}

func (r *renderer) marker(m string) {
	if m == "" {
		return
	}

	if r.last != "" {
		r.out.WriteString(r.syntax.joint(r.last, m))
	}

	r.out.WriteString(m)
	r.last = m
}

func (r *renderer) push(s span) {
	r.marker(r.syntax.open(s.entity))
	r.stack = append(r.stack, s)
}

func (r *renderer) pop() span {
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]

	r.marker(r.syntax.close(top.entity))

	return top
}

// closeEndingAt closes every open span ending at pos, reopening the spans
// above it that continue past pos.
func (r *renderer) closeEndingAt(pos int) {
	for {
		i := slices.IndexFunc(r.stack, func(s span) bool { return s.end == pos })
		if i < 0 {
			return
		}

		var reopen []span

		for len(r.stack) > i+1 {
			top := r.pop()
			if top.end != pos {
				reopen = append(reopen, top)
			}
		}

		r.pop()

		for j := len(reopen) - 1; j >= 0; j-- {
			r.push(reopen[j])
		}
	}
}
