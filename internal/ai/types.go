package ai

import (
	"encoding/json"
	"fmt"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Content is one block of a structured message body. Only text blocks are
// produced today; the shape leaves room for future non-text blocks.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

func NewTextContent(text string) Content {
	return Content{Type: "text", Text: text}
}

// Message carries one chat message in either of the two wire encodings:
// a block array for providers in the structured family (e.g. openai/*
// models) or a flat string for everything else (e.g. DeepSeek).
type Message struct {
	Role string `json:"role"`
	// for structured-content model families
	Content []Content `json:"-"`
	// for flat-content models
	Text string `json:"-"`
}

func (m Message) MarshalJSON() ([]byte, error) {
	type Alias Message
	aux := &struct {
		*Alias
		Content any `json:"content"`
	}{
		Alias: (*Alias)(&m),
	}

	if len(m.Content) > 0 {
		aux.Content = m.Content
	} else {
		aux.Content = m.Text
	}

	return json.Marshal(aux)
}

func (m *Message) UnmarshalJSON(data []byte) error {
	type Alias Message
	aux := &struct {
		*Alias
		Content any `json:"content"`
	}{
		Alias: (*Alias)(m),
	}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	switch content := aux.Content.(type) {
	case string:
		m.Text = content
	case []any:
		raw, _ := json.Marshal(content)
		var contents []Content
		if err := json.Unmarshal(raw, &contents); err != nil {
			return err
		}
		m.Content = contents
	case nil:
	default:
		return fmt.Errorf("unexpected content type: %T", content)
	}

	return nil
}

type CompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type CompletionResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *ProviderError `json:"error,omitzero"`
}

type ProviderError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Type    string `json:"type"`
}

// UnmarshalJSON tolerates both string and numeric error codes; providers
// disagree on the type of the code field.
func (e *ProviderError) UnmarshalJSON(data []byte) error {
	var raw struct {
		Message string          `json:"message"`
		Code    json.RawMessage `json:"code"`
		Type    string          `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Message = raw.Message
	e.Type = raw.Type

	if len(raw.Code) > 0 && string(raw.Code) != "null" {
		var code string
		if err := json.Unmarshal(raw.Code, &code); err == nil {
			e.Code = code
		} else {
			e.Code = string(raw.Code)
		}
	}

	return nil
}

// AIError is the single error type the adapter surfaces. It is built for
// direct display in chat: status code and provider message are folded into
// Error() so the relay can forward it as-is.
type AIError struct {
	OriginalErr    error  `json:"-"`
	ModelName      string `json:"model_name"`
	HTTPStatusCode int    `json:"http_status_code"`
	ErrorCode      string `json:"error_code"`
	Message        string `json:"message"`
}

func (e *AIError) Error() string {
	msg := e.Message
	if msg == "" && e.OriginalErr != nil {
		msg = e.OriginalErr.Error()
	}
	if e.ErrorCode != "" {
		msg = fmt.Sprintf("%s (code: %s)", msg, e.ErrorCode)
	}
	if e.HTTPStatusCode != 0 {
		msg = fmt.Sprintf("%d %s", e.HTTPStatusCode, msg)
	}
	return msg
}

func (e *AIError) Unwrap() error {
	return e.OriginalErr
}
