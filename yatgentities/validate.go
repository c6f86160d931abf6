package yatgentities

import (
	"cmp"
	"fmt"
	"net/http"
	"slices"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
)

// Validate reports the first annotation Resolve would not translate
// faithfully: one with a negative offset or length, one starting before the
// previous annotation ends, or one ending past the text.
//
// Telegram nests formatting entities (bold inside a link), which is valid
// input for a renderer but not for Resolve, so Validate is a separate pass.
//
// Example usage:
//
//	if err := yatgentities.Validate(text, entities); err != nil {
//		yatgentities.SortByOffset(entities)
//	}
func Validate[A Annotation](text string, annotations []A) yaerrors.Error {
	total := UTF16Len(text)
	previousEnd := 0

	for i, annotation := range annotations {
		offset, length := annotation.GetOffset(), annotation.GetLength()

		switch {
		case offset < 0 || length < 0:
			return invalid(ErrNegativeValue, i, offset, length)
		case offset < previousEnd:
			return invalid(ErrOverlapping, i, offset, length)
		case saturatingAdd(offset, length) > total:
			return invalid(ErrOutOfRange, i, offset, length)
		}

		previousEnd = offset + length
	}

	return nil
}

// SortByOffset orders annotations by offset, keeping the relative order of
// annotations that start at the same position.
func SortByOffset[A Annotation](annotations []A) {
	slices.SortStableFunc(annotations, func(a, b A) int {
		return cmp.Compare(a.GetOffset(), b.GetOffset())
	})
}

func invalid(cause error, index, offset, length int) yaerrors.Error {
	return yaerrors.FromError(
		http.StatusBadRequest,
		cause,
		fmt.Sprintf("[ENTITIES] entity #%d (offset %d, length %d)", index, offset, length),
	)
}
