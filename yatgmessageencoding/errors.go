package yatgmessageencoding

import "errors"

var (
	ErrUnsupportedTag   = errors.New("[ENCODING] unsupported tag")
	ErrUnexpectedEndTag = errors.New("[ENCODING] unexpected end tag")
	ErrUnclosedTag      = errors.New("[ENCODING] unclosed tag")
	ErrMissingAttribute = errors.New("[ENCODING] missing required attribute")
	ErrInvalidUserID    = errors.New("[ENCODING] invalid user id in mention link")
	ErrInvalidMarkup    = errors.New("[ENCODING] invalid markup")
)
