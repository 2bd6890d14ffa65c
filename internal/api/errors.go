package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error is a non-2xx answer from the vendor service, with the error body
// parsed into something readable. Transient statuses never reach this type;
// the transport retrier consumes those.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api request failed (status %d): %s", e.StatusCode, e.Reason())
}

// Reason returns the parsed error text: "code: message" when the vendor
// supplied a code, otherwise the message alone.
func (e *Error) Reason() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// vendorError mirrors the two error body shapes the vendor is known to emit:
// a structured {"error":{"code","message"}} object or a flat {"message"}.
type vendorError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// newError builds an Error from a non-2xx response body.
//
// Parsing precedence: structured error.code/error.message, then a flat
// message field, then the raw body text verbatim.
func newError(statusCode int, body []byte) *Error {
	raw := strings.TrimSpace(string(body))

	var ve vendorError
	if err := json.Unmarshal(body, &ve); err == nil {
		if ve.Error != nil && ve.Error.Message != "" {
			return &Error{StatusCode: statusCode, Code: ve.Error.Code, Message: ve.Error.Message}
		}
		if ve.Message != "" {
			return &Error{StatusCode: statusCode, Message: ve.Message}
		}
	}
	return &Error{StatusCode: statusCode, Message: raw}
}
