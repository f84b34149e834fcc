package xword

import "fmt"

// ErrorKind classifies a failure the core can surface to a caller.
type ErrorKind int

const (
	KindInvalidSize ErrorKind = iota
	KindInsufficientWords
	KindNotFound
	KindUnknownClue
	KindBadRequest
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidSize:
		return "InvalidSize"
	case KindInsufficientWords:
		return "InsufficientWords"
	case KindNotFound:
		return "NotFound"
	case KindUnknownClue:
		return "UnknownClue"
	case KindBadRequest:
		return "BadRequest"
	case KindInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is the typed error surfaced by the core. It wraps an optional
// cause so callers can still use errors.Is/errors.As against it.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// newErr builds an *Error, optionally wrapping a cause.
func newErr(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// Kind unwraps err looking for the first *Error in its chain and returns
// its Kind, defaulting to KindInternal for anything else (including nil
// being mishandled by a caller that should have checked err != nil first).
func Kind(err error) ErrorKind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return KindInternal
}
