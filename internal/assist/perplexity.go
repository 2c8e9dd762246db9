package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"bookscout/internal/logging"
)

const perplexityURL = "https://api.perplexity.ai/chat/completions"

// PerplexityProvider implements the Provider interface for Perplexity's
// search-grounded models. Requests are rate limited to stay under the
// API's per-minute quota even when the engine fans out concurrent prompts.
type PerplexityProvider struct {
	apiKey  string
	model   string
	client  *http.Client
	limiter *rate.Limiter
}

// NewPerplexityProvider creates a new Perplexity provider
func NewPerplexityProvider(apiKey, model string, timeout time.Duration) *PerplexityProvider {
	if model == "" {
		model = "sonar"
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &PerplexityProvider{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
		// 50 requests/minute with a burst allowance for the engine's
		// three parallel discovery prompts.
		limiter: rate.NewLimiter(rate.Every(1200*time.Millisecond), 5),
	}
}

func (p *PerplexityProvider) Name() string {
	return "perplexity"
}

func (p *PerplexityProvider) Available() bool {
	return p.apiKey != ""
}

func (p *PerplexityProvider) Generate(ctx context.Context, req Request) (Response, error) {
	if !p.Available() {
		return Response{}, fmt.Errorf("perplexity provider not configured")
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return Response{}, fmt.Errorf("rate limit wait: %w", err)
	}

	logging.Debug("Perplexity API request starting", "model", p.model)

	messages := []map[string]string{}
	if req.SystemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.SystemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.UserPrompt})

	body := map[string]interface{}{
		"model":    p.model,
		"messages": messages,
	}
	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", perplexityURL, bytes.NewReader(jsonBody))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logging.Error("Perplexity API error", "status", resp.StatusCode, "body", string(respBody))
		return Response{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Model string `json:"model"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Response{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(result.Choices) == 0 {
		return Response{}, fmt.Errorf("no choices in response")
	}

	return Response{
		Content: result.Choices[0].Message.Content,
		Model:   result.Model,
	}, nil
}
