package llm

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.5-flash"
)

// Gemini implements [Model] against the Generative Language REST API
// (models/{model}:generateContent). Chat sessions are stateless on our
// side: the whole history is sent with every call.
type Gemini struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

type GeminiOption func(*Gemini)

// WithHTTPClient replaces the default client (60s timeout).
func WithHTTPClient(client *http.Client) GeminiOption {
	return func(g *Gemini) { g.httpClient = client }
}

// WithBaseURL points the client at a different API host, e.g. a test server.
func WithBaseURL(baseURL string) GeminiOption {
	return func(g *Gemini) { g.baseURL = strings.TrimRight(baseURL, "/") }
}

func NewGemini(apiKey, model string, opts ...GeminiOption) *Gemini {
	if model == "" {
		model = DefaultGeminiModel
	}
	g := &Gemini{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    DefaultGeminiBaseURL,
		model:      model,
		apiKey:     apiKey,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, []geminiContent{userContent(prompt)})
}

func (g *Gemini) Chat(ctx context.Context, history []Message, message string) (string, error) {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, m := range history {
		role := m.Role
		if role != RoleModel {
			role = RoleUser
		}
		contents = append(contents, geminiContent{Role: string(role), Parts: []geminiPart{{Text: m.Text}}})
	}
	contents = append(contents, userContent(message))
	return g.generate(ctx, contents)
}

func (g *Gemini) generate(ctx context.Context, contents []geminiContent) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("llm/gemini: missing API key")
	}

	var wireResponse geminiResponse
	err := doJSON(ctx, g.httpClient, g.endpoint(),
		map[string]string{"x-goog-api-key": g.apiKey},
		geminiRequest{Contents: contents}, &wireResponse)
	if err != nil {
		return "", err
	}
	return wireResponse.text()
}

func (g *Gemini) endpoint() string {
	return g.baseURL + "/v1beta/models/" + url.PathEscape(g.model) + ":generateContent"
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// text joins the parts of the first candidate.
func (r geminiResponse) text() (string, error) {
	if len(r.Candidates) == 0 {
		if r.PromptFeedback != nil && r.PromptFeedback.BlockReason != "" {
			return "", errors.New("llm/gemini: prompt blocked: " + r.PromptFeedback.BlockReason)
		}
		return "", errors.New("llm/gemini: response has no candidates")
	}
	var out strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		out.WriteString(part.Text)
	}
	return out.String(), nil
}

func userContent(text string) geminiContent {
	return geminiContent{Role: string(RoleUser), Parts: []geminiPart{{Text: text}}}
}
