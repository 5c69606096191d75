package infermedica

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error represents an Infermedica API error.
//
// Remote failures carry the HTTP status and the error body returned by
// the server, in Body when it is JSON and always in RawBody. Local
// failures (for example an oversized [ParseRequest]) carry Status 422
// and a go-openapi validation error as Cause.
type Error struct {
	Code    string
	Message string
	Status  int

	// Body is the error body returned by the server, when it is valid JSON.
	Body json.RawMessage

	// RawBody holds the error body bytes as received, JSON or not,
	// truncated to 4 KiB.
	RawBody []byte

	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("infermedica: %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("infermedica: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Code.
// This lets callers match sentinels with errors.Is:
//
//	if errors.Is(err, infermedica.ErrNotFound) { ... }
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors.
var (
	ErrBadRequest   = &Error{Code: "BAD_REQUEST", Message: "invalid request", Status: 400}
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "invalid credentials", Status: 401}
	ErrForbidden    = &Error{Code: "FORBIDDEN", Message: "access denied", Status: 403}
	ErrNotFound     = &Error{Code: "NOT_FOUND", Message: "resource not found", Status: 404}
	ErrTimeout      = &Error{Code: "TIMEOUT", Message: "request timed out", Status: 408}
	ErrValidation   = &Error{Code: "VALIDATION", Message: "validation failed", Status: 422}
	ErrRateLimited  = &Error{Code: "RATE_LIMITED", Message: "too many requests", Status: 429}
	ErrInternal     = &Error{Code: "INTERNAL", Message: "internal server error", Status: 500}
)

func newError(code, message string, status int, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Status:  status,
		Cause:   cause,
	}
}

// codeForStatus maps an HTTP status to an error code.
func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest.Code
	case http.StatusUnauthorized:
		return ErrUnauthorized.Code
	case http.StatusForbidden:
		return ErrForbidden.Code
	case http.StatusNotFound:
		return ErrNotFound.Code
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ErrTimeout.Code
	case http.StatusUnprocessableEntity:
		return ErrValidation.Code
	case http.StatusTooManyRequests:
		return ErrRateLimited.Code
	}
	if status >= 500 {
		return ErrInternal.Code
	}
	return "API_ERROR"
}

// apiErrorBody is the subset of an error body we surface as Message.
// The server is not consistent about which key it uses.
type apiErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// newStatusError builds an *Error for a non-2xx response.
func newStatusError(status int, body []byte) *Error {
	e := &Error{
		Code:    codeForStatus(status),
		Message: http.StatusText(status),
		Status:  status,
	}
	if len(body) == 0 {
		return e
	}
	e.RawBody = body

	if json.Valid(body) {
		e.Body = json.RawMessage(body)
		var parsed apiErrorBody
		if err := json.Unmarshal(body, &parsed); err == nil {
			switch {
			case parsed.Message != "":
				e.Message = parsed.Message
			case parsed.Error != "":
				e.Message = parsed.Error
			}
		}
		return e
	}

	e.Message = string(body)
	return e
}
