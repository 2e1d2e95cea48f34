package client

import (
	"fmt"
	"net/http"
)

// Op names the API call that failed.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpGet    Op = "get"
	OpList   Op = "list"
	OpDelete Op = "delete"
)

// SubmitError is returned for any failed API call: transport errors,
// non-2xx statuses and undecodable bodies alike.
type SubmitError struct {
	Op         Op
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *SubmitError) Error() string {
	msg := fmt.Sprintf("%s resource", e.Op)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Notice is the single message shown to the user for this failure.
func (e *SubmitError) Notice() string {
	switch e.Op {
	case OpCreate:
		return "Failed to add resource. Please try again."
	case OpUpdate:
		return "Failed to update resource. Please try again."
	case OpDelete:
		return "Failed to delete resource. Please try again."
	default:
		return "Failed to load resources. Please try again."
	}
}

// NotFound reports whether the API answered 404.
func (e *SubmitError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
