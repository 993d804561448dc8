package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/config"
)

// OllamaAdvisoryClient talks to a local Ollama install over its generate API
type OllamaAdvisoryClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

// Ollama API request structure
type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

// NewOllamaAdvisoryClient creates an Ollama-backed advisory client
func NewOllamaAdvisoryClient(cfg *config.AdvisoryConfig) *OllamaAdvisoryClient {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	slog.Debug("initializing Ollama advisory client", "base_url", baseURL, "model", cfg.Model)
	return &OllamaAdvisoryClient{
		// The per-call deadline comes from the context; this is a hard upper
		// bound against a hung connection.
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		baseURL:    baseURL,
		model:      cfg.Model,
	}
}

// Invoke implements domain.AdvisoryClient
func (o *OllamaAdvisoryClient) Invoke(ctx context.Context, prompt string) (string, error) {
	generateURL := o.baseURL + "/api/generate"

	payload := ollamaGenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", domain.NewAdvisoryError("failed to marshal request to Ollama", err)
	}

	// Use NewRequestWithContext to respect context cancellation/timeout
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, generateURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", domain.NewAdvisoryError("failed to create request to Ollama", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		slog.Error("Ollama API call failed", "error", err)
		return "", domain.NewAdvisoryError("Ollama API call failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewAdvisoryError("failed to read response body from Ollama", err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			var errResp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(respBody, &errResp); err == nil &&
				strings.Contains(errResp.Error, "model") && strings.Contains(errResp.Error, "not found") {
				slog.Warn("Ollama model not found", "model", o.model)
				return "", domain.NewAdvisoryError(
					fmt.Sprintf("model '%s' not found, run: ollama pull %s", o.model, o.model), nil)
			}
		}
		slog.Error("Ollama returned an error", "status_code", resp.StatusCode, "response", string(respBody))
		return "", domain.NewAdvisoryError(
			fmt.Sprintf("Ollama failed with status %d", resp.StatusCode), nil)
	}

	var ollamaResp ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &ollamaResp); err != nil {
		slog.Error("failed to parse JSON response from Ollama", "error", err)
		return "", domain.NewAdvisoryError("failed to parse Ollama response", err)
	}

	slog.Debug("received response from Ollama", "model", ollamaResp.Model)
	return ollamaResp.Response, nil
}
