package dictionary

import "errors"

// Sentinel errors for dictionary operations.
var (
	// ErrVerified is returned when changing a verified row.
	ErrVerified = errors.New("row is verified")

	// ErrLastRow is returned when deleting the only row.
	ErrLastRow = errors.New("cannot delete the last row")

	// ErrIndex is returned for a row index outside the sequence.
	ErrIndex = errors.New("row index out of range")

	// ErrUnknownLang is returned for an unsupported language code.
	ErrUnknownLang = errors.New("unknown language")

	// ErrUnknownField is returned for an unknown column name.
	ErrUnknownField = errors.New("unknown field")
)
