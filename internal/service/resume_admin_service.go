package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jinzhu/copier"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/dto"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/repository"
	"github.com/rs/zerolog/log"
)

// Caller is the authenticated identity behind a resume operation.
type Caller struct {
	UserID string
	Admin  bool
}

func (c Caller) canActFor(userID string) bool {
	return c.Admin || c.UserID == userID
}

// ResumeAdminService registers stored resumes and forces re-extraction.
// Callers act on their own resumes; admins on any.
type ResumeAdminService interface {
	CreateResume(ctx context.Context, caller Caller, req dto.ResumeCreateDTO) (*dto.ResumeResponseDTO, error)
	Reextract(ctx context.Context, caller Caller, resumeID uint) (*dto.ResumeResponseDTO, error)
}

type resumeAdminService struct {
	resumeRepo  repository.ResumeRepository
	textService TextService
}

func NewResumeAdminService(resumeRepo repository.ResumeRepository, textService TextService) ResumeAdminService {
	return &resumeAdminService{resumeRepo: resumeRepo, textService: textService}
}

func (s *resumeAdminService) CreateResume(ctx context.Context, caller Caller, req dto.ResumeCreateDTO) (*dto.ResumeResponseDTO, error) {
	if req.UserID == "" {
		req.UserID = caller.UserID
	}
	if req.UserID == "" {
		return nil, newValidationError("user_id", "is required")
	}
	if !caller.canActFor(req.UserID) {
		log.Warn().Str("caller", caller.UserID).Str("userID", req.UserID).Msg("CreateResume: caller may not register resumes for another user")
		return nil, &AuthorizationError{Resource: "resume", UserID: caller.UserID}
	}

	hasURL := req.FileURL != nil && strings.TrimSpace(*req.FileURL) != ""
	hasContent := req.Content != nil && strings.TrimSpace(*req.Content) != ""
	if !hasURL && !hasContent {
		return nil, newValidationError("file_url", "either file_url or content is required")
	}

	var resume model.Resume
	if err := copier.Copy(&resume, &req); err != nil {
		log.Error().Err(err).Str("userID", req.UserID).Msg("CreateResume: failed to map request")
		return nil, fmt.Errorf("map resume request: %w", err)
	}
	if !hasContent {
		resume.Content = nil
	}
	if err := s.resumeRepo.Create(ctx, &resume); err != nil {
		log.Error().Err(err).Str("userID", req.UserID).Msg("CreateResume: failed to create resume")
		return nil, &PersistenceError{Operation: "create resume", Cause: err}
	}
	log.Info().Uint("resumeID", resume.ID).Str("userID", resume.UserID).Msg("Resume registered")
	return toResumeResponse(&resume), nil
}

func (s *resumeAdminService) Reextract(ctx context.Context, caller Caller, resumeID uint) (*dto.ResumeResponseDTO, error) {
	resume, err := s.resumeRepo.FindByID(ctx, resumeID)
	if err != nil {
		return nil, lookupError("resume", resumeID, err)
	}
	if !caller.canActFor(resume.UserID) {
		return nil, &AuthorizationError{Resource: "resume", ID: resumeID, UserID: caller.UserID}
	}

	text, err := s.textService.Refresh(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	// the write-back inside Refresh is best-effort
	resume.Content = &text
	return toResumeResponse(resume), nil
}

func toResumeResponse(r *model.Resume) *dto.ResumeResponseDTO {
	resp := &dto.ResumeResponseDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		FileURL:   r.FileURL,
		CreatedAt: r.CreatedAt,
	}
	if r.Content != nil {
		resp.ContentLength = utf8.RuneCountInString(*r.Content)
	}
	return resp
}
