package jsoninja

import "errors"

var (
	// ErrInvalidPattern is returned by NewWithPattern and
	// NewWithRegexp when the variable pattern does not
	// compile or does not contain exactly one capturing
	// group.
	ErrInvalidPattern = errors.New(
		"variable pattern must contain exactly one capturing group",
	)

	// ErrEmptyTemplate is returned by Replace when the
	// template is nil, an empty mapping, or an empty
	// sequence.
	ErrEmptyTemplate = errors.New(
		"a template has not been loaded",
	)

	// ErrUnknownVariable is returned when a placeholder
	// names a variable with no entry in the replacement
	// table and the engine does not keep missing
	// placeholders.
	ErrUnknownVariable = errors.New(
		"no replacement found for variable",
	)

	// ErrProducerFailed is returned when a producer
	// callback fails. The producer's own error is wrapped
	// alongside it.
	ErrProducerFailed = errors.New(
		"producer callback failed",
	)

	// ErrInvalidKeyType is returned when a mapping key
	// placeholder resolves to a value that is not a
	// string, integer, float, or boolean.
	ErrInvalidKeyType = errors.New(
		"key replacement must be a string, integer, float, or boolean",
	)

	// ErrInvalidValueType is returned when a replacement
	// spliced into surrounding text is not a string,
	// integer, float, or boolean.
	ErrInvalidValueType = errors.New(
		"replacement cannot be spliced into a string",
	)
)
