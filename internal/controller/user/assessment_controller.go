package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/controller"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/dto"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/service"
	"github.com/rs/zerolog/log"
)

type AssessmentController struct {
	generatorService service.GeneratorService
	attemptService   service.AttemptService
	gradingService   service.GradingService
}

func NewAssessmentController(gs service.GeneratorService, as service.AttemptService, grs service.GradingService) *AssessmentController {
	return &AssessmentController{
		generatorService: gs,
		attemptService:   as,
		gradingService:   grs,
	}
}

// RegisterRoutes mounts the candidate routes on an authenticated group.
func (c *AssessmentController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/assessments", c.Generate)
	group.GET("/assessments/:assessment_id", c.GetAssessment)
	group.POST("/assessments/:assessment_id/attempts", c.StartAttempt)
	group.POST("/assessments/:assessment_id/grade", c.Grade)
	group.GET("/attempts/:attempt_id", c.GetAttempt)
}

// Generate godoc
// @Summary Generate an assessment
// @Description Builds a role-specific assessment from a job description, an optional stored resume and optional skill hints.
// @Tags Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateRequest true "Job description, optional resume and skill hints"
// @Success 201 {object} dto.GenerateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Resume not found"
// @Failure 422 {object} dto.ErrorResponse "No usable resume text"
// @Failure 502 {object} dto.ErrorResponse "Model output was not usable"
// @Router /assessments [post]
func (c *AssessmentController) Generate(ctx *gin.Context) {
	userID, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	var req dto.GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Generate: Failed to bind JSON")
		controller.BindError(ctx, err)
		return
	}

	resp, err := c.generatorService.Generate(ctx.Request.Context(), userID, req)
	if err != nil {
		controller.RespondError(ctx, "generate", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetAssessment godoc
// @Summary Get the candidate view of an assessment
// @Description Questions are returned without answer keys or rubrics.
// @Tags Assessments
// @Produce json
// @Security BearerAuth
// @Param assessment_id path int true "Assessment ID"
// @Success 200 {object} dto.AssessmentView
// @Failure 400 {object} dto.ErrorResponse "Invalid Assessment ID format"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Router /assessments/{assessment_id} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	userID, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	assessmentID, ok := controller.ParseIDParam(ctx, "assessment_id")
	if !ok {
		return
	}

	view, err := c.attemptService.GetAssessmentView(ctx.Request.Context(), userID, assessmentID)
	if err != nil {
		controller.RespondError(ctx, "get assessment", err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// StartAttempt godoc
// @Summary Start an attempt
// @Description Creates an in-progress attempt and returns the assessment with its time limit.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param assessment_id path int true "Assessment ID"
// @Success 201 {object} dto.StartAttemptResponse
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Router /assessments/{assessment_id}/attempts [post]
func (c *AssessmentController) StartAttempt(ctx *gin.Context) {
	userID, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	assessmentID, ok := controller.ParseIDParam(ctx, "assessment_id")
	if !ok {
		return
	}

	resp, err := c.attemptService.StartAttempt(ctx.Request.Context(), userID, assessmentID)
	if err != nil {
		controller.RespondError(ctx, "start attempt", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Grade godoc
// @Summary Grade a submission
// @Description Scores every question, stores the graded attempt and attaches a narrative report when one could be produced.
// @Tags Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assessment_id path int true "Assessment ID"
// @Param request body dto.GradeRequest true "Answers"
// @Success 200 {object} dto.GradeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid answers"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Failure 500 {object} dto.ErrorResponse "Storage failure"
// @Router /assessments/{assessment_id}/grade [post]
func (c *AssessmentController) Grade(ctx *gin.Context) {
	userID, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	assessmentID, ok := controller.ParseIDParam(ctx, "assessment_id")
	if !ok {
		return
	}
	var req dto.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Grade: Failed to bind JSON")
		controller.BindError(ctx, err)
		return
	}
	req.AssessmentID = assessmentID

	log.Info().Uint("assessmentID", assessmentID).Str("userID", userID).Int("answerCount", len(req.Answers)).Msg("Received grading request")
	resp, err := c.gradingService.Grade(ctx.Request.Context(), userID, req)
	if err != nil {
		controller.RespondError(ctx, "grade", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAttempt godoc
// @Summary Get a graded attempt
// @Description Returns scores, per-question feedback and the report of one attempt.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetail
// @Failure 400 {object} dto.ErrorResponse "Invalid Attempt ID format"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
func (c *AssessmentController) GetAttempt(ctx *gin.Context) {
	userID, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	attemptID, ok := controller.ParseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}

	detail, err := c.attemptService.GetAttempt(ctx.Request.Context(), userID, attemptID)
	if err != nil {
		controller.RespondError(ctx, "get attempt", err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}
