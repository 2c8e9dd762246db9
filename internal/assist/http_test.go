package assist

import (
	"context"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
)

func TestPerplexityGenerate(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", perplexityURL,
		httpmock.NewStringResponder(200, `{
			"model": "sonar",
			"choices": [{"message": {"content": "[{\"title\": \"Dune\"}]"}}]
		}`))

	p := NewPerplexityProvider("pplx-test", "sonar", 5*time.Second)
	resp, err := p.Generate(context.Background(), Request{UserPrompt: "books about sand"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Content != `[{"title": "Dune"}]` {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Model != "sonar" {
		t.Errorf("Model = %q", resp.Model)
	}
}

func TestPerplexityAPIError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", perplexityURL,
		httpmock.NewStringResponder(429, `{"error": "rate limited"}`))

	p := NewPerplexityProvider("pplx-test", "", 5*time.Second)
	if _, err := p.Generate(context.Background(), Request{UserPrompt: "x"}); err == nil {
		t.Error("expected error on 429")
	}
}

func TestClaudeGenerate(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", claudeURL,
		httpmock.NewStringResponder(200, `{
			"model": "claude-3-5-sonnet-20241022",
			"stop_reason": "end_turn",
			"content": [
				{"type": "text", "text": "part one"},
				{"type": "text", "text": "part two"}
			]
		}`))

	c := NewClaudeProvider("sk-ant-test", "", 5*time.Second)
	resp, err := c.Generate(context.Background(), Request{SystemPrompt: "sys", UserPrompt: "hi"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Content != "part one\n\npart two" {
		t.Errorf("Content = %q", resp.Content)
	}
}

func TestOpenAIGenerate(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", openAIURL,
		httpmock.NewStringResponder(200, `{
			"model": "gpt-4o-mini",
			"choices": [{"message": {"content": "0.2"}}]
		}`))

	o := NewOpenAIProvider("sk-test", "", 5*time.Second)
	resp, err := o.Generate(context.Background(), Request{UserPrompt: "score this"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Content != "0.2" {
		t.Errorf("Content = %q", resp.Content)
	}
}

func TestUnconfiguredProvidersRefuse(t *testing.T) {
	ctx := context.Background()
	req := Request{UserPrompt: "x"}

	if _, err := NewPerplexityProvider("", "", 0).Generate(ctx, req); err == nil {
		t.Error("perplexity without key should refuse")
	}
	if _, err := NewClaudeProvider("", "", 0).Generate(ctx, req); err == nil {
		t.Error("claude without key should refuse")
	}
	if _, err := NewOpenAIProvider("", "", 0).Generate(ctx, req); err == nil {
		t.Error("openai without key should refuse")
	}
}
