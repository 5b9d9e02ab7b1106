package pwsafe

import (
	"errors"
	"fmt"
)

// Kind enumerates the failure categories a caller must be able to
// distinguish, per the V3 engine's error taxonomy.
type Kind int

const (
	// Unspecified covers an unexpected OS or internal error.
	Unspecified Kind = iota
	// InvalidTag means the first four bytes were not "PWS3".
	InvalidTag
	// MalformedFile means premature EOF, a length underflow, an
	// inconsistent block count, or a missing header VERSION field.
	MalformedFile
	// InvalidPassword means the stored passphrase hash did not match
	// the recomputed one. Distinguishable from HmacMismatch: this
	// check runs before any ciphertext is touched.
	InvalidPassword
	// FileNotFound means the target could not be opened for read.
	FileNotFound
	// HmacMismatch means the integrity tag failed after a successful
	// decrypt — a legitimately-decrypted but tampered file.
	HmacMismatch
	// CannotWriteFile means the target directory is not writable or
	// the temporary file could not be created.
	CannotWriteFile
	// WriteError means an I/O failure occurred during write.
	WriteError
)

func (k Kind) String() string {
	switch k {
	case InvalidTag:
		return "invalid tag"
	case MalformedFile:
		return "malformed file"
	case InvalidPassword:
		return "invalid password"
	case FileNotFound:
		return "file not found"
	case HmacMismatch:
		return "hmac mismatch"
	case CannotWriteFile:
		return "cannot write file"
	case WriteError:
		return "write error"
	default:
		return "unspecified"
	}
}

// Error is the engine's single exported error type. Kind is what
// callers should switch on; Cause (if present) is the underlying
// error, captured at the failure site so no ambiguity is introduced
// when an error propagates across several I/O calls.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "pwsafe: error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("pwsafe: %s: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("pwsafe: %s", e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// newErr builds an *Error of the given kind, optionally wrapping cause.
func newErr(k Kind, cause error) *Error {
	return &Error{Kind: k, Cause: cause}
}

// Is reports whether err is a *Error of kind k.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// errFieldNotFound is the unexported sentinel FieldByType returns on a
// field holder lookup miss. Record/header convenience accessors
// translate it into a default empty value.
var errFieldNotFound = errors.New("field not found")
