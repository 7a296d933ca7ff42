package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/controller"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/dto"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/service"
	"github.com/rs/zerolog/log"
)

type ResumeController struct {
	resumeAdminService service.ResumeAdminService
}

func NewResumeController(resumeAdminService service.ResumeAdminService) *ResumeController {
	return &ResumeController{resumeAdminService: resumeAdminService}
}

func (c *ResumeController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/resumes", c.CreateResume)
	group.POST("/resumes/:resume_id/extract", c.Reextract)
}

// CreateResume godoc
// @Summary (Admin) Register a resume document
// @Description Stores a resume from a file URL, inline text, or both. user_id defaults to the caller; only admin tokens may name another user.
// @Tags Admin - Resumes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resume body dto.ResumeCreateDTO true "Resume source"
// @Success 201 {object} dto.ResumeResponseDTO "Resume created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 404 {object} dto.ErrorResponse "Caller may not act for that user"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/resumes [post]
func (c *ResumeController) CreateResume(ctx *gin.Context) {
	caller, ok := controller.RequireCaller(ctx)
	if !ok {
		return
	}
	var req dto.ResumeCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateResume: Failed to bind JSON")
		controller.BindError(ctx, err)
		return
	}

	resp, err := c.resumeAdminService.CreateResume(ctx.Request.Context(), caller, req)
	if err != nil {
		controller.RespondError(ctx, "create resume", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Reextract godoc
// @Summary (Admin) Re-extract resume text
// @Description Fetches the resume file again and replaces the cached text. Owners and admin tokens only.
// @Tags Admin - Resumes
// @Produce json
// @Security BearerAuth
// @Param resume_id path int true "Resume ID"
// @Success 200 {object} dto.ResumeResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Resume not found"
// @Failure 422 {object} dto.ErrorResponse "No usable resume text"
// @Router /admin/resumes/{resume_id}/extract [post]
func (c *ResumeController) Reextract(ctx *gin.Context) {
	caller, ok := controller.RequireCaller(ctx)
	if !ok {
		return
	}
	resumeID, ok := controller.ParseIDParam(ctx, "resume_id")
	if !ok {
		return
	}

	resp, err := c.resumeAdminService.Reextract(ctx.Request.Context(), caller, resumeID)
	if err != nil {
		controller.RespondError(ctx, "reextract resume", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
