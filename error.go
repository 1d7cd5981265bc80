package papermill

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Generic error codes.
const (
	EINTERNAL  = "internal"
	EINVALID   = "invalid"
	ENOTFOUND  = "not_found"
	ENOPAYLOAD = "no_payload"
)

// Fetch error codes.
const (
	EHTTPSTATUS  = "http_status"
	ETRANSPORT   = "transport"
	ECONTENTTYPE = "unexpected_content_type"
)

// Validation error codes.
const (
	EBADSIGNATURE = "bad_signature"
)

// Extraction error codes.
const (
	ENOCONTENT = "no_content"
	EDECODE    = "decode_failure"
)

// Training error codes.
const (
	ECORPUSEMPTY  = "corpus_empty"
	EMODELCORRUPT = "model_corrupt"
)

// I/O error codes.
const (
	EPERMISSION = "permission_denied"
	EDISKFULL   = "disk_full"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string

	// HTTP status code for EHTTPSTATUS errors.
	Status int
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("papermill error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return the underlying error text.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus returns the upstream status code carried by an EHTTPSTATUS
// error, or zero.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Code == EHTTPSTATUS {
		return e.Status
	}
	return 0
}

// IsFatal reports whether err means the run's accumulated output cannot be
// trusted: training and storage failures.
func IsFatal(err error) bool {
	switch ErrorCode(err) {
	case ECORPUSEMPTY, EMODELCORRUPT, EPERMISSION, EDISKFULL:
		return true
	}
	return false
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// StatusErrorf returns an EHTTPSTATUS error carrying the response status.
func StatusErrorf(status int, format string, args ...any) *Error {
	return &Error{
		Code:    EHTTPSTATUS,
		Message: fmt.Sprintf(format, args...),
		Status:  status,
	}
}

// IOError classifies a filesystem error raised while performing op.
// Permission and disk-full failures get their own codes; anything else is
// EINTERNAL. A nil err returns nil.
func IOError(op string, err error) error {
	if err == nil {
		return nil
	}
	code := EINTERNAL
	switch {
	case errors.Is(err, fs.ErrPermission):
		code = EPERMISSION
	case errors.Is(err, syscall.ENOSPC):
		code = EDISKFULL
	}
	return Errorf(code, "%s: %v", op, err)
}
