package yatgclient

import "errors"

var (
	ErrEmptyToken          = errors.New("[CLIENT] bot token is empty")
	ErrInvalidToken        = errors.New("[CLIENT] bot token has no numeric bot id prefix")
	ErrAPIResponse         = errors.New("[BOTAPI] request was not successful")
	ErrTransport           = errors.New("[CLIENT] request did not reach the bot api")
	ErrDecodeResponse      = errors.New("[CLIENT] failed to decode bot api response")
	ErrFileNotDownloadable = errors.New("[CLIENT] file has no download path")
	ErrUnsupportedProxy    = errors.New("[CLIENT] unsupported proxy scheme")
)
