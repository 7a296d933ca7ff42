package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var longResumeText = strings.Repeat("Built distributed systems in Go. ", 4)

func TestResolveText_UsesCachedContent(t *testing.T) {
	repo := &MockResumeRepository{}
	extractor := &MockExtractor{}
	repo.On("FindByID", mock.Anything, uint(1)).Return(&model.Resume{ID: 1, UserID: "u", Content: strPtr(longResumeText), FileURL: strPtr("http://files/cv.html")}, nil)

	text, err := NewTextService(repo, extractor).ResolveText(t.Context(), "u", 1)
	require.NoError(t, err)
	assert.Equal(t, longResumeText, text)
	extractor.AssertNotCalled(t, "ExtractText", mock.Anything, mock.Anything)
}

func TestResolveText_ExtractsAndCachesShortContent(t *testing.T) {
	repo := &MockResumeRepository{}
	extractor := &MockExtractor{}
	repo.On("FindByID", mock.Anything, uint(1)).Return(&model.Resume{ID: 1, UserID: "u", Content: strPtr("too short"), FileURL: strPtr("http://files/cv.html")}, nil)
	extractor.On("ExtractText", mock.Anything, "http://files/cv.html").Return("  "+longResumeText+"\n", nil)
	repo.On("UpdateContent", mock.Anything, uint(1), strings.TrimSpace(longResumeText)).Return(nil)

	text, err := NewTextService(repo, extractor).ResolveText(t.Context(), "u", 1)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(longResumeText), text)
	repo.AssertExpectations(t)
	extractor.AssertExpectations(t)
}

func TestResolveText_WriteBackFailureIsIgnored(t *testing.T) {
	repo := &MockResumeRepository{}
	extractor := &MockExtractor{}
	repo.On("FindByID", mock.Anything, uint(1)).Return(&model.Resume{ID: 1, UserID: "u", FileURL: strPtr("http://files/cv.html")}, nil)
	extractor.On("ExtractText", mock.Anything, mock.Anything).Return(longResumeText, nil)
	repo.On("UpdateContent", mock.Anything, uint(1), mock.Anything).Return(errors.New("db is read-only"))

	text, err := NewTextService(repo, extractor).ResolveText(t.Context(), "u", 1)
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestResolveText_Failures(t *testing.T) {
	tests := []struct {
		name    string
		resume  *model.Resume
		extract func(*MockExtractor)
	}{
		{
			name:   "no url and no content",
			resume: &model.Resume{ID: 1, UserID: "u"},
		},
		{
			name:   "extractor fails",
			resume: &model.Resume{ID: 1, UserID: "u", FileURL: strPtr("http://files/cv.pdf")},
			extract: func(m *MockExtractor) {
				m.On("ExtractText", mock.Anything, mock.Anything).Return("", errors.New("unsupported content type"))
			},
		},
		{
			name:   "extracted text too short",
			resume: &model.Resume{ID: 1, UserID: "u", FileURL: strPtr("http://files/cv.html")},
			extract: func(m *MockExtractor) {
				m.On("ExtractText", mock.Anything, mock.Anything).Return("John Doe", nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockResumeRepository{}
			extractor := &MockExtractor{}
			repo.On("FindByID", mock.Anything, uint(1)).Return(tt.resume, nil)
			if tt.extract != nil {
				tt.extract(extractor)
			}

			_, err := NewTextService(repo, extractor).ResolveText(t.Context(), "u", 1)
			var ue *UpstreamTextExtractionError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, KindTextExtraction, ErrorKind(err))
			repo.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestResolveText_OwnershipAndMissing(t *testing.T) {
	repo := &MockResumeRepository{}
	repo.On("FindByID", mock.Anything, uint(1)).Return(&model.Resume{ID: 1, UserID: "owner", Content: strPtr(longResumeText)}, nil)
	repo.On("FindByID", mock.Anything, uint(2)).Return(nil, errNotFound())

	svc := NewTextService(repo, &MockExtractor{})
	_, err := svc.ResolveText(t.Context(), "other", 1)
	var az *AuthorizationError
	require.ErrorAs(t, err, &az)

	_, err = svc.ResolveText(t.Context(), "owner", 2)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestRefresh_IgnoresCache(t *testing.T) {
	repo := &MockResumeRepository{}
	extractor := &MockExtractor{}
	repo.On("FindByID", mock.Anything, uint(1)).Return(&model.Resume{ID: 1, UserID: "u", Content: strPtr(longResumeText), FileURL: strPtr("http://files/cv.html")}, nil)
	extractor.On("ExtractText", mock.Anything, "http://files/cv.html").Return(longResumeText+" Updated.", nil)
	repo.On("UpdateContent", mock.Anything, uint(1), mock.Anything).Return(nil)

	text, err := NewTextService(repo, extractor).Refresh(t.Context(), 1)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(text, "Updated."))
	extractor.AssertExpectations(t)
}
