// Package llm wraps the generative model behind a prompt + target shape call.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ErrUnavailable is returned when no API key was configured.
var ErrUnavailable = errors.New("generative model client not initialized")

// Schema describes the object the model is asked to produce.
type Schema struct {
	Type        string // "object", "array", "string", "number", "integer", "boolean"
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
	Enum        []string
	Nullable    bool
}

// Request is one call to the model.
type Request struct {
	// Name identifies the target shape; it is used as the function name when
	// the provider supports structured function calling.
	Name        string
	System      string
	Prompt      string
	Schema      *Schema
	Temperature float32
}

// Response carries whichever form the provider returned: a natively structured
// object or raw text that still needs parsing.
type Response struct {
	Object map[string]any
	Text   string
}

// Client is an abstraction over LLM providers
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Close() error
}

// Config configures the Gemini client.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

const DefaultModel = "gemini-1.5-flash"

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient creates a new Gemini client. Without an API key the client is
// still returned but every call fails with ErrUnavailable.
func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	if cfg.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Generative model calls will fail.")
		return &GeminiClient{model: model, timeout: cfg.Timeout}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model, timeout: cfg.Timeout}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	if c.client == nil {
		return nil, ErrUnavailable
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(req.Temperature)
	if req.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
	}
	if req.Schema != nil {
		name := req.Name
		if name == "" {
			name = "submit_result"
		}
		model.Tools = []*genai.Tool{{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:        name,
				Description: "Return the result in the required structure.",
				Parameters:  toGenaiSchema(req.Schema),
			}},
		}}
		model.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode:                 genai.FunctionCallingAny,
				AllowedFunctionNames: []string{name},
			},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	return responseFromGenai(resp)
}

func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func responseFromGenai(resp *genai.GenerateContentResponse) (*Response, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("no content in response")
	}

	out := &Response{}
	var text []string
	for _, part := range candidate.Content.Parts {
		switch p := part.(type) {
		case genai.FunctionCall:
			if out.Object == nil {
				out.Object = p.Args
			}
		case genai.Text:
			text = append(text, string(p))
		}
	}
	out.Text = strings.Join(text, "")
	return out, nil
}

func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
		Nullable:    s.Nullable,
		Items:       toGenaiSchema(s.Items),
	}
	if len(s.Enum) > 0 {
		out.Format = "enum"
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = toGenaiSchema(v)
		}
	}
	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
