package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/schema"
	"gorm.io/gorm"
)

// Error kinds surfaced to callers.
const (
	KindValidation     = "validation_error"
	KindAuthorization  = "authorization_error"
	KindNotFound       = "not_found"
	KindTextExtraction = "upstream_text_extraction_error"
	KindModelSchema    = "model_schema_error"
	KindModelCall      = "model_call_error"
	KindPersistence    = "persistence_error"
	KindReport         = "report_synthesis_error"
)

// Violation is one field-level problem.
type Violation = schema.FieldError

// ValidationError is a malformed request. Never retried.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("validation failed: %s %s", e.Violations[0].Field, e.Violations[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(e.Violations))
}

func (e *ValidationError) Kind() string { return KindValidation }

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Message: message}}}
}

// AuthorizationError means the caller does not own the resource. It is shown
// to clients exactly like a missing resource.
type AuthorizationError struct {
	Resource string
	ID       uint
	UserID   string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s %d is not owned by user %s", e.Resource, e.ID, e.UserID)
}

func (e *AuthorizationError) Kind() string { return KindAuthorization }

type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Kind() string { return KindNotFound }

// UpstreamTextExtractionError means no usable source text could be obtained.
type UpstreamTextExtractionError struct {
	ResumeID uint
	Message  string
	Cause    error
}

func (e *UpstreamTextExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("text extraction for resume %d failed: %s: %v", e.ResumeID, e.Message, e.Cause)
	}
	return fmt.Sprintf("text extraction for resume %d failed: %s", e.ResumeID, e.Message)
}

func (e *UpstreamTextExtractionError) Unwrap() error { return e.Cause }
func (e *UpstreamTextExtractionError) Kind() string  { return KindTextExtraction }

// ModelSchemaError means the model output did not match the expected shape.
type ModelSchemaError struct {
	Shape      schema.Shape
	Violations []Violation
	Cause      error
}

func (e *ModelSchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("model output does not match %s", e.Shape))
	if len(e.Violations) > 0 {
		sb.WriteString(fmt.Sprintf(" (%d violations)", len(e.Violations)))
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *ModelSchemaError) Unwrap() error { return e.Cause }
func (e *ModelSchemaError) Kind() string  { return KindModelSchema }

// ModelCallError is a failed call to the generative model.
type ModelCallError struct {
	Operation string
	Cause     error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("model call %s failed: %v", e.Operation, e.Cause)
}

func (e *ModelCallError) Unwrap() error { return e.Cause }
func (e *ModelCallError) Kind() string  { return KindModelCall }

// PersistenceError is a rejected document-store read or write.
type PersistenceError struct {
	Operation string
	Cause     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Operation, e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }
func (e *PersistenceError) Kind() string  { return KindPersistence }

// ReportSynthesisError is only ever logged.
type ReportSynthesisError struct {
	AttemptID uint
	Cause     error
}

func (e *ReportSynthesisError) Error() string {
	return fmt.Sprintf("report synthesis for attempt %d failed: %v", e.AttemptID, e.Cause)
}

func (e *ReportSynthesisError) Unwrap() error { return e.Cause }
func (e *ReportSynthesisError) Kind() string  { return KindReport }

// ErrorKind returns the machine readable kind of err, or "internal_error".
func ErrorKind(err error) string {
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return "internal_error"
}

// IsNotFoundLike reports errors that are rendered as "not found".
func IsNotFoundLike(err error) bool {
	var nf *NotFoundError
	var az *AuthorizationError
	return errors.As(err, &nf) || errors.As(err, &az)
}

// lookupError converts a repository read error.
func lookupError(resource string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return &PersistenceError{Operation: "load " + resource, Cause: err}
}

var validate = validator.New()

// validateStruct runs validator tags and converts failures to a ValidationError.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newValidationError("(root)", err.Error())
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Violations = append(out.Violations, Violation{
			Field:   jsonFieldPath(fe.Namespace()),
			Message: validationMessage(fe),
		})
	}
	return out
}

// jsonFieldPath turns "GenerateRequest.JobDescription" into "job_description".
func jsonFieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnake(p)
	}
	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z' {
				sb.WriteByte('_')
			}
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("validation failed for rule '%s'", fe.Tag())
	}
}
