// Package extract fetches a stored document by URL and returns its plain text.
package extract

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout = 30 * time.Second
	// MaxBodyBytes bounds how much of a document is read.
	MaxBodyBytes = 10 << 20
	userAgent    = "assessment-engine/1.0"
)

// Extractor returns the plain text behind a retrievable document URL.
type Extractor interface {
	ExtractText(ctx context.Context, url string) (string, error)
}

// Error represents a failure to retrieve or read a document.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

type httpExtractor struct {
	client *http.Client
}

// NewHTTPExtractor fetches documents over HTTP. HTML is reduced to its visible
// text; text/plain, markdown and JSON bodies are returned as-is.
func NewHTTPExtractor(timeout time.Duration) Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &httpExtractor{client: &http.Client{Timeout: timeout}}
}

func (e *httpExtractor) ExtractText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &Error{URL: url, Message: "invalid URL", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", &Error{URL: url, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: url, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return "", &Error{URL: url, Message: "failed to read response body", Cause: err}
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch {
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		text, err := HTMLToText(string(body))
		if err != nil {
			return "", &Error{URL: url, Message: "failed to parse HTML", Cause: err}
		}
		return text, nil
	case strings.HasPrefix(mediaType, "text/"), mediaType == "application/json", mediaType == "":
		return CleanWhitespace(string(body)), nil
	default:
		log.Warn().Str("url", url).Str("contentType", mediaType).Msg("Unsupported document type for text extraction")
		return "", &Error{URL: url, Message: "unsupported content type " + mediaType}
	}
}

// HTMLToText parses HTML and returns the visible body text.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript, nav, footer").Remove()

	var parts []string
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	if len(parts) == 0 {
		parts = append(parts, doc.Text())
	}
	return CleanWhitespace(strings.Join(parts, "\n")), nil
}

var (
	spaceRun = regexp.MustCompile(`[ \t\r\f\v]+`)
	blankRun = regexp.MustCompile(`\n\s*\n+`)
)

// CleanWhitespace collapses runs of spaces and blank lines.
func CleanWhitespace(text string) string {
	text = spaceRun.ReplaceAllString(text, " ")
	text = blankRun.ReplaceAllString(text, "\n\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
