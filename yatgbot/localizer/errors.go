package localizer

import "errors"

var (
	ErrFailedToReadLocale   = errors.New("[LOCALIZER] failed to read locale file")
	ErrFailedToDecodeLocale = errors.New("[LOCALIZER] failed to decode locale file")
	ErrInvalidLanguage      = errors.New("[LOCALIZER] file name is not a language tag")
	ErrNoDefaultLocale      = errors.New("[LOCALIZER] default language has no locale file")
)
