package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/amishk599/replydraft/internal/model"
)

// DefaultOllamaModel is the model identifier sent when none is configured.
const DefaultOllamaModel = "llama3"

// OllamaProvider calls a local Ollama /api/generate endpoint in non-streaming mode.
type OllamaProvider struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOllamaProvider creates a provider targeting baseURL (e.g. http://localhost:11434).
func NewOllamaProvider(baseURL, model string, httpClient *http.Client) *OllamaProvider {
	if model == "" {
		model = DefaultOllamaModel
	}
	return &OllamaProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: httpClient,
	}
}

// generateRequest mirrors the Ollama /api/generate request body.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse mirrors the relevant fields of the Ollama response.
// Response is a pointer so a body without the field is rejected.
type generateResponse struct {
	Response *string `json:"response"`
}

// Complete posts prompt upstream and returns the untrimmed generated text.
// Every failure wraps model.ErrUpstream.
func (p *OllamaProvider) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal generate request: %w", model.ErrUpstream, err)
	}

	url := p.baseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create generate request: %w", model.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: generate request: %w", model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read generate response: %w", model.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &model.HTTPError{StatusCode: resp.StatusCode, Err: errors.New(truncate(string(respBytes), 200))}
		return "", fmt.Errorf("%w: %w", model.ErrUpstream, httpErr)
	}

	var gen generateResponse
	if err := json.Unmarshal(respBytes, &gen); err != nil {
		return "", fmt.Errorf("%w: parse generate response: %w", model.ErrUpstream, err)
	}
	if gen.Response == nil {
		return "", fmt.Errorf("%w: generate response has no \"response\" field", model.ErrUpstream)
	}

	return *gen.Response, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Ping checks that the Ollama server answers at all. It does not load a model.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("%w: create ping request: %w", model.ErrUpstream, err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ping: %w", model.ErrUpstream, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %w", model.ErrUpstream, &model.HTTPError{StatusCode: resp.StatusCode})
	}
	return nil
}
