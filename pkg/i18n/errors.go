package i18n

import "errors"

var (
	ErrFailedToParseYAML  = errors.New("i18n: failed to parse YAML content")
	ErrFailedToParseJSON  = errors.New("i18n: failed to parse JSON content")
	ErrFailedToReadFile   = errors.New("i18n: failed to read message file")
	ErrUnsupportedFormat  = errors.New("i18n: unsupported message file format")
	ErrInvalidStructure   = errors.New("i18n: invalid message catalog structure")
	ErrInvalidLanguageTag = errors.New("i18n: invalid language tag")
	ErrNoMessages         = errors.New("i18n: no messages loaded")
)
