package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/logger"
)

// Completer is the boundary the bot core calls through; it exists so tests
// can substitute a canned remote.
type Completer interface {
	Complete(ctx context.Context, modelID, system string, user Message) (string, error)
}

// Client performs a single chat-completion request against an
// OpenAI-compatible endpoint. No retries: every failure is terminal for the
// request and mapped to an *AIError the relay can show in chat.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(baseURL, apiKey string, httpClient *http.Client, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     log,
	}
}

func (c *Client) Complete(ctx context.Context, modelID, system string, user Message) (string, error) {
	// The system message mirrors the user message's content shape so both
	// messages of the exchange use the same encoding.
	systemMsg := Message{Role: RoleSystem, Text: system}
	if len(user.Content) > 0 {
		systemMsg = Message{Role: RoleSystem, Content: []Content{NewTextContent(system)}}
	}

	request := CompletionRequest{
		Model:    modelID,
		Messages: []Message{systemMsg, user},
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return "", &AIError{
			OriginalErr: err,
			ModelName:   modelID,
			Message:     "marshal request failed",
		}
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewBuffer(requestBody),
	)
	if err != nil {
		return "", &AIError{
			OriginalErr: err,
			ModelName:   modelID,
			Message:     "create request failed",
		}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.WithFields(logger.Fields{
		"model": modelID,
		"url":   req.URL.String(),
	}).Debug("AI request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportError(err, modelID)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AIError{
			OriginalErr: err,
			ModelName:   modelID,
			Message:     "failed to read response body",
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", statusError(resp.StatusCode, body, modelID)
	}

	var result CompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.WithError(err).WithField("body", string(body)).Error("AI response decode failed")
		return "", &AIError{
			OriginalErr: err,
			ModelName:   modelID,
			Message:     "unexpected or empty response",
		}
	}

	// Some providers report errors inside a 200 body.
	if result.Error != nil {
		return "", &AIError{
			ModelName: modelID,
			ErrorCode: result.Error.Code,
			Message:   result.Error.Message,
		}
	}

	if len(result.Choices) == 0 {
		c.logger.WithField("body", string(body)).Error("AI response has no choices")
		return "", &AIError{
			ModelName: modelID,
			Message:   "unexpected or empty response",
		}
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

func statusError(statusCode int, body []byte, modelID string) *AIError {
	aiErr := &AIError{
		ModelName:      modelID,
		HTTPStatusCode: statusCode,
		Message:        fmt.Sprintf("HTTP request failed with status code: %d", statusCode),
	}

	if len(body) > 0 {
		var providerError struct {
			Error ProviderError `json:"error"`
		}
		// Best-effort parse: an undecodable error body keeps the plain
		// status-code message.
		_ = json.Unmarshal(body, &providerError)
		if providerError.Error.Message != "" {
			aiErr.Message = providerError.Error.Message
			aiErr.ErrorCode = providerError.Error.Code
		}
	}

	return aiErr
}

func transportError(err error, modelID string) *AIError {
	message := "network request failed"

	var netErr net.Error
	if (errors.As(err, &netErr) && netErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		message = "request timed out"
	}

	return &AIError{
		OriginalErr: err,
		ModelName:   modelID,
		Message:     message,
	}
}
