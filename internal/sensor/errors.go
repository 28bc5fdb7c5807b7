package sensor

import "errors"

// The core reports every failure through one of these sentinels so that
// callers can tell a bad argument apart from a misuse of the data model.
var (
	// ErrInvalidArg flags a design or helper argument outside its
	// documented range, or a name that doesn't parse.
	ErrInvalidArg = errors.New("invalid argument")

	// ErrBounds flags a position outside a domain's current length.
	ErrBounds = errors.New("position out of range")

	// ErrImmutable flags a point mutation on a domain that forbids them.
	ErrImmutable = errors.New("domain is not mutable")

	// ErrUnknownDomain flags a reference to a domain name that a
	// construct doesn't have.
	ErrUnknownDomain = errors.New("no such domain")
)
