// errors.go - error taxonomy for mlkem.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to the software, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package mlkem

import "fmt"

// Kind identifies the category of an *Error.
type Kind int

const (
	// ErrMismatchedSecurityLevels is returned when two values tagged with
	// different security levels (module ranks k) are combined.
	ErrMismatchedSecurityLevels Kind = iota + 1

	// ErrIncorrectBufferLength is returned when a caller-supplied byte
	// slice does not match the length a ParameterSet requires.
	ErrIncorrectBufferLength

	// ErrInvalidSeedLength is returned when a seed passed to a
	// from-seed constructor is not exactly the required length.
	ErrInvalidSeedLength

	// ErrInvalidK is returned when a module rank outside {2,3,4} is
	// requested.
	ErrInvalidK

	// ErrInvalidCiphertextLength is returned when a byte slice passed to
	// CiphertextFromBytes does not match the ParameterSet's
	// CipherTextSize.
	ErrInvalidCiphertextLength

	// ErrInternalError is returned when an invariant that internal
	// callers are expected to uphold is violated. It is never expected
	// to be observed by a well-behaved caller.
	ErrInternalError

	// ErrRngFailure is returned when the configured entropy source
	// fails to produce randomness.
	ErrRngFailure

	// ErrHashFailure is reserved for a failed hash write or sum. No
	// function in this package returns it: the SHA3 writes used here
	// cannot fail, and the call sites discard their error results.
	ErrHashFailure

	// ErrXofFailure is reserved for a failed extendable output function
	// read. No function in this package returns it: the SHAKE reads used
	// here cannot fail, and the call sites discard their error results.
	ErrXofFailure
)

// String returns a human readable name for a Kind.
func (k Kind) String() string {
	switch k {
	case ErrMismatchedSecurityLevels:
		return "mismatched security levels"
	case ErrIncorrectBufferLength:
		return "incorrect buffer length"
	case ErrInvalidSeedLength:
		return "invalid seed length"
	case ErrInvalidK:
		return "invalid k"
	case ErrInvalidCiphertextLength:
		return "invalid ciphertext length"
	case ErrInternalError:
		return "internal error"
	case ErrRngFailure:
		return "rng failure"
	case ErrHashFailure:
		return "hash failure"
	case ErrXofFailure:
		return "xof failure"
	default:
		return "unknown error"
	}
}

// Error is the single error type returned by this package. Callers should
// inspect Kind (or use errors.Is against the package-level sentinels below)
// rather than matching on the message text.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return "mlkem: " + e.Kind.String()
	}
	return "mlkem: " + e.msg
}

// Is reports whether target is an *Error with the same Kind and no
// message, so that errors.Is(err, mlkem.SentinelInvalidK) and the like
// work against the sentinels below. Two *Error values that both carry a
// message never match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.msg == ""
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Sentinels usable with errors.Is(err, mlkem.SentinelX). These carry no
// message, so Error.Is matches any *Error of the same Kind against them.
var (
	SentinelMismatchedSecurityLevels = &Error{Kind: ErrMismatchedSecurityLevels}
	SentinelIncorrectBufferLength    = &Error{Kind: ErrIncorrectBufferLength}
	SentinelInvalidSeedLength        = &Error{Kind: ErrInvalidSeedLength}
	SentinelInvalidK                 = &Error{Kind: ErrInvalidK}
	SentinelInvalidCiphertextLength  = &Error{Kind: ErrInvalidCiphertextLength}
	SentinelInternalError            = &Error{Kind: ErrInternalError}
	SentinelRngFailure                = &Error{Kind: ErrRngFailure}
	SentinelHashFailure               = &Error{Kind: ErrHashFailure}
	SentinelXofFailure                = &Error{Kind: ErrXofFailure}
)
