package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/extract"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/repository"
	"github.com/rs/zerolog/log"
)

// MinCachedTextLength is the shortest cached or extracted text accepted as usable.
const MinCachedTextLength = 50

// TextService resolves the resume text used as generation source material.
type TextService interface {
	ResolveText(ctx context.Context, userID string, resumeID uint) (string, error)
	// Refresh ignores the cached text and extracts again.
	Refresh(ctx context.Context, resumeID uint) (string, error)
}

type textService struct {
	resumeRepo repository.ResumeRepository
	extractor  extract.Extractor
}

func NewTextService(resumeRepo repository.ResumeRepository, extractor extract.Extractor) TextService {
	return &textService{resumeRepo: resumeRepo, extractor: extractor}
}

func (s *textService) ResolveText(ctx context.Context, userID string, resumeID uint) (string, error) {
	resume, err := s.resumeRepo.FindByID(ctx, resumeID)
	if err != nil {
		return "", lookupError("resume", resumeID, err)
	}
	if resume.UserID != userID {
		return "", &AuthorizationError{Resource: "resume", ID: resumeID, UserID: userID}
	}

	if resume.Content != nil && utf8.RuneCountInString(strings.TrimSpace(*resume.Content)) >= MinCachedTextLength {
		log.Debug().Uint("resumeID", resumeID).Msg("ResolveText: using cached resume text")
		return *resume.Content, nil
	}
	return s.extractAndCache(ctx, resume)
}

func (s *textService) Refresh(ctx context.Context, resumeID uint) (string, error) {
	resume, err := s.resumeRepo.FindByID(ctx, resumeID)
	if err != nil {
		return "", lookupError("resume", resumeID, err)
	}
	return s.extractAndCache(ctx, resume)
}

func (s *textService) extractAndCache(ctx context.Context, resume *model.Resume) (string, error) {
	if resume.FileURL == nil || strings.TrimSpace(*resume.FileURL) == "" {
		return "", &UpstreamTextExtractionError{ResumeID: resume.ID, Message: "no cached text and no document URL"}
	}

	text, err := s.extractor.ExtractText(ctx, *resume.FileURL)
	if err != nil {
		log.Error().Err(err).Uint("resumeID", resume.ID).Msg("ResolveText: extractor failed")
		return "", &UpstreamTextExtractionError{ResumeID: resume.ID, Message: "extractor failed", Cause: err}
	}
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinCachedTextLength {
		return "", &UpstreamTextExtractionError{ResumeID: resume.ID, Message: "extracted text is empty or too short"}
	}

	// best-effort write-back
	if err := s.resumeRepo.UpdateContent(ctx, resume.ID, text); err != nil {
		log.Warn().Err(err).Uint("resumeID", resume.ID).Msg("ResolveText: failed to cache extracted text, continuing")
	}
	return text, nil
}
