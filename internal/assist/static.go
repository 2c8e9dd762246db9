package assist

import (
	"context"
	"strings"
)

// StaticProvider returns canned responses keyed by a substring of the user
// prompt. It backs tests and offline runs where no API keys are present.
type StaticProvider struct {
	name     string
	fallback string
	replies  map[string]string
}

var _ Provider = (*StaticProvider)(nil)

// NewStaticProvider creates a provider that answers every prompt with
// fallback unless a registered substring matches.
func NewStaticProvider(name, fallback string) *StaticProvider {
	return &StaticProvider{
		name:     name,
		fallback: fallback,
		replies:  make(map[string]string),
	}
}

// Reply registers a canned reply for prompts containing substr.
func (s *StaticProvider) Reply(substr, content string) *StaticProvider {
	s.replies[substr] = content
	return s
}

func (s *StaticProvider) Name() string {
	return s.name
}

func (s *StaticProvider) Available() bool {
	return true
}

func (s *StaticProvider) Generate(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	for substr, content := range s.replies {
		if strings.Contains(req.UserPrompt, substr) {
			return Response{Content: content, Model: s.name + "-static"}, nil
		}
	}
	return Response{Content: s.fallback, Model: s.name + "-static"}, nil
}
