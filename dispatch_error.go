package webcore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError defines a public type used by webcore APIs.
//
// APIError carries a non-success backend response: the HTTP status plus
// whatever error envelope the body held. Code and Message stay empty when the
// body was not decodable.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error describes the error operation and its observable behavior.
//
// Error may return an error when input validation, dependency calls, or security checks fail.
// Error does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *APIError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Message != "":
		return e.Message
	default:
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
}

type apiErrorEnvelope struct {
	Errors []struct {
		ErrorCode    string `json:"errorCode"`
		ErrorMessage string `json:"errorMessage"`
	} `json:"errors"`
	Message string `json:"message"`
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return apiErr
	}

	if len(envelope.Errors) > 0 {
		apiErr.Code = envelope.Errors[0].ErrorCode
		apiErr.Message = envelope.Errors[0].ErrorMessage
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(envelope.Message)
	return apiErr
}

// Message resolves a user-facing string for err: a coded backend error
// renders as "code: message", a plain backend message renders as-is, and
// everything else falls back to the supplied default.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code != "" && apiErr.Message != "" {
			return apiErr.Code + ": " + apiErr.Message
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return fallback
}
