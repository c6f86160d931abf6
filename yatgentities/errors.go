package yatgentities

import "errors"

var (
	ErrNegativeValue = errors.New("entity offset or length is negative")
	ErrOverlapping   = errors.New("entity overlaps or precedes the previous one")
	ErrOutOfRange    = errors.New("entity ends past the end of the text")
)
