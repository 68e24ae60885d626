// Package llm talks to the generative-language model that backs the
// conductor assistant. Callers depend on [Model]; [Gemini] is the
// production implementation.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Role of a message in a chat history, in the model's vocabulary.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one prior turn replayed into a chat session.
type Message struct {
	Role Role
	Text string
}

// Model is a text completion backend.
type Model interface {
	// Generate sends a single prompt and returns the text answer.
	Generate(ctx context.Context, prompt string) (string, error)

	// Chat replays history as a session and sends message as the live
	// turn. The history is not modified.
	Chat(ctx context.Context, history []Message, message string) (string, error)
}

// ProviderError is returned when the model API responds with a non-200
// status.
type ProviderError struct {
	StatusCode int

	// Status is the provider's symbolic code (e.g. "INVALID_ARGUMENT").
	Status string

	Message string
}

func (err *ProviderError) Error() string {
	if err.Status != "" {
		return fmt.Sprintf("llm: HTTP %d: %s: %s", err.StatusCode, err.Status, err.Message)
	}
	return fmt.Sprintf("llm: HTTP %d: %s", err.StatusCode, err.Message)
}

// IsRateLimited returns true for HTTP 429.
func (err *ProviderError) IsRateLimited() bool {
	return err.StatusCode == http.StatusTooManyRequests
}

// doJSON POSTs wireRequest to endpoint and decodes a 200 response into
// wireResponse. Any other status becomes a *ProviderError.
func doJSON(ctx context.Context, httpClient *http.Client, endpoint string, headers map[string]string, wireRequest, wireResponse any) error {
	body, err := json.Marshal(wireRequest)
	if err != nil {
		return fmt.Errorf("llm: marshaling request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("llm: creating request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		httpRequest.Header.Set(key, value)
	}

	httpResponse, err := httpClient.Do(httpRequest)
	if err != nil {
		return fmt.Errorf("llm: sending request: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return readProviderError(httpResponse)
	}

	if err := json.NewDecoder(httpResponse.Body).Decode(wireResponse); err != nil {
		return fmt.Errorf("llm: decoding response: %w", err)
	}
	return nil
}

// readProviderError parses the Google API error envelope:
// {"error":{"code":400,"message":"...","status":"INVALID_ARGUMENT"}}.
func readProviderError(httpResponse *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(httpResponse.Body, 4096))

	var wireError struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Error.Message != "" {
		return &ProviderError{
			StatusCode: httpResponse.StatusCode,
			Status:     wireError.Error.Status,
			Message:    wireError.Error.Message,
		}
	}

	return &ProviderError{
		StatusCode: httpResponse.StatusCode,
		Message:    string(body),
	}
}
