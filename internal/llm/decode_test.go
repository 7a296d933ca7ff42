package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"generic fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"language fence", "```javascript\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestDecodeModelResponse_PrefersObject(t *testing.T) {
	doc, err := DecodeModelResponse(&Response{
		Object: map[string]any{"score": 3.0},
		Text:   "ignored",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":3}`, string(doc))
}

func TestDecodeModelResponse_ParsesText(t *testing.T) {
	doc, err := DecodeModelResponse(&Response{Text: "```json\n{\"score\": 4, \"feedback\": \"ok\"}\n```"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":4,"feedback":"ok"}`, string(doc))
}

func TestDecodeModelResponse_TextWithProse(t *testing.T) {
	doc, err := DecodeModelResponse(&Response{Text: "Here you go: {\"is_correct\": true} hope it helps"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_correct":true}`, string(doc))
}

func TestDecodeModelResponse_Failures(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
	}{
		{"nil", nil},
		{"empty", &Response{}},
		{"no object", &Response{Text: "I cannot answer that."}},
		{"broken json", &Response{Text: "{\"score\": }"}},
		{"array", &Response{Text: "[1, 2, 3]"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeModelResponse(tt.resp)
			require.Error(t, err)
			var de *DecodeError
			assert.ErrorAs(t, err, &de)
		})
	}
}

func TestToGenaiSchema(t *testing.T) {
	s := toGenaiSchema(&Schema{
		Type:     "object",
		Required: []string{"kind"},
		Properties: map[string]*Schema{
			"kind":  {Type: "string", Enum: []string{"a", "b"}},
			"items": {Type: "array", Items: &Schema{Type: "integer"}},
		},
	})
	require.NotNil(t, s)
	assert.Equal(t, []string{"kind"}, s.Required)
	assert.Equal(t, "enum", s.Properties["kind"].Format)
	require.NotNil(t, s.Properties["items"].Items)
	assert.Equal(t, genaiType("integer"), s.Properties["items"].Items.Type)
}

func TestGeminiClient_WithoutKey(t *testing.T) {
	c, err := NewGeminiClient(t.Context(), Config{})
	require.NoError(t, err)
	_, err = c.Generate(t.Context(), Request{Prompt: "hi"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NoError(t, c.Close())
}
