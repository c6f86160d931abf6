package config

import "errors"

var (
	ErrConfigStructMustBeStruct = errors.New("config struct must be a struct")
	ErrValueIsRequired          = errors.New("value is required")
	ErrInvalidDotEnvFileFormat  = errors.New("invalid .env file format")
	ErrFailedToReadConfigFile   = errors.New("failed to read config file")
	ErrFailedToDecodeConfigFile = errors.New("failed to decode config file")
	ErrUnsupportedConfigFormat  = errors.New("unsupported config file format")
)
