package dto

import "github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/schema"

// ErrorResponse is the body of every non-2xx response. Kind is machine readable.
type ErrorResponse struct {
	Kind       string              `json:"kind"`
	Message    string              `json:"message"`
	Details    []string            `json:"details,omitempty"`
	Violations []schema.FieldError `json:"violations,omitempty"`
}
