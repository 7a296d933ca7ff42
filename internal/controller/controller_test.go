package controller

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		kind    string
		message string
	}{
		{"validation", &service.ValidationError{Violations: []service.Violation{{Field: "job_description", Message: "is required"}}}, http.StatusBadRequest, service.KindValidation, "Invalid request"},
		{"foreign assessment", &service.AuthorizationError{Resource: "assessment", ID: 1, UserID: "u"}, http.StatusNotFound, service.KindNotFound, "assessment not found"},
		{"missing assessment", &service.NotFoundError{Resource: "assessment", ID: 1}, http.StatusNotFound, service.KindNotFound, "assessment not found"},
		{"wrapped missing attempt", fmt.Errorf("load: %w", &service.NotFoundError{Resource: "attempt", ID: 2}), http.StatusNotFound, service.KindNotFound, "attempt not found"},
		{"extraction", &service.UpstreamTextExtractionError{ResumeID: 3, Message: "empty"}, http.StatusUnprocessableEntity, service.KindTextExtraction, "No usable resume text"},
		{"model schema", &service.ModelSchemaError{Shape: "assessment"}, http.StatusBadGateway, service.KindModelSchema, "Model output was not usable"},
		{"model call", &service.ModelCallError{Operation: "generate assessment", Cause: errors.New("quota")}, http.StatusBadGateway, service.KindModelCall, "Model call failed"},
		{"persistence", &service.PersistenceError{Operation: "save attempt", Cause: errors.New("down")}, http.StatusInternalServerError, service.KindPersistence, "Storage failure"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error", "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := errorResponse(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, body.Kind)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestErrorResponse_CarriesViolations(t *testing.T) {
	_, body := errorResponse(&service.ValidationError{Violations: []service.Violation{
		{Field: "answers.0.answer", Message: "must be a string"},
		{Field: "answers.1.question_id", Message: "is not part of this assessment"},
	}})
	assert.Len(t, body.Violations, 2)
	assert.Equal(t, "answers.0.answer", body.Violations[0].Field)
}
