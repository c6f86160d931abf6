package yaerrors

import "errors"

// ErrTeapot is reported when a method is called on a nil Error, because the
// backend developer is a teapot who dereferenced a nil error.
var ErrTeapot = errors.New("backend developer is a teapot")
