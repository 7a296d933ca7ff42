package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeError is returned when neither a structured object nor parseable JSON
// text was found in a model response.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode model response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode model response: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// DecodeModelResponse turns either response form into one JSON object document.
// Callers validate the document against their shape; nothing SDK specific
// leaves this package.
func DecodeModelResponse(resp *Response) ([]byte, error) {
	if resp == nil {
		return nil, &DecodeError{Message: "empty response"}
	}
	if resp.Object != nil {
		doc, err := json.Marshal(resp.Object)
		if err != nil {
			return nil, &DecodeError{Message: "structured object is not serializable", Cause: err}
		}
		return doc, nil
	}

	text := CleanJSONBlock(resp.Text)
	if text == "" {
		return nil, &DecodeError{Message: "response has neither an object nor text"}
	}
	if !strings.HasPrefix(text, "{") {
		// tolerate prose around the object
		start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return nil, &DecodeError{Message: "no JSON object in text response"}
		}
		text = text[start : end+1]
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, &DecodeError{Message: "text response is not a JSON object", Cause: err}
	}
	return []byte(text), nil
}

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
