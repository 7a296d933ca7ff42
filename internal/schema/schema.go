// Package schema validates model output against the closed assessment, score,
// multiple-choice check and report shapes.
package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed shapes/*.json
var shapeFiles embed.FS

// Shape names one of the embedded JSON Schemas.
type Shape string

const (
	ShapeAssessment Shape = "assessment"
	ShapeScore      Shape = "score"
	ShapeMCQCheck   Shape = "mcq_check"
	ShapeReport     Shape = "report"
)

// Default max scores applied when the model omits max_score.
const (
	DefaultMultipleChoiceMaxScore = 1.0
	DefaultCodingMaxScore         = 10.0
	DefaultScenarioMaxScore       = 5.0
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing a shape itself
type SchemaLoadError struct {
	Shape   Shape
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load shape %s: %s: %v", e.Shape, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load shape %s: %s", e.Shape, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var compiled = map[Shape]*gojsonschema.Schema{}

func init() {
	for _, shape := range []Shape{ShapeAssessment, ShapeScore, ShapeMCQCheck, ShapeReport} {
		s, err := load(shape)
		if err != nil {
			panic(err)
		}
		compiled[shape] = s
	}
}

func load(shape Shape) (*gojsonschema.Schema, error) {
	raw, err := shapeFiles.ReadFile("shapes/" + string(shape) + ".json")
	if err != nil {
		return nil, &SchemaLoadError{Shape: shape, Message: "shape file missing", Cause: err}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &SchemaLoadError{Shape: shape, Message: "invalid schema", Cause: err}
	}
	return s, nil
}

// Validate checks a JSON document against a shape and returns every violation.
func Validate(shape Shape, doc []byte) error {
	s, ok := compiled[shape]
	if !ok {
		return &SchemaLoadError{Shape: shape, Message: "unknown shape"}
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		// document was not parseable JSON
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		// if/then branches add a summary entry on top of the concrete failure
		if desc.Type() == "condition_then" || desc.Type() == "number_all_of" {
			continue
		}
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	if len(validationErr.Errors) == 0 {
		validationErr.Errors = append(validationErr.Errors, FieldError{Field: "(root)", Message: "does not match " + string(shape)})
	}
	return validationErr
}

func decode(shape Shape, doc []byte, out any) error {
	if err := Validate(shape, doc); err != nil {
		return err
	}
	if err := json.Unmarshal(doc, out); err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	return nil
}
