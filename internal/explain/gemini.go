// internal/explain/gemini.go
//
// Gemini Generator over the Google Gen AI SDK.
// No API key means no client and no network traffic.

package explain

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Gemini is a Generator backed by the Google Gen AI SDK.
type Gemini struct {
	client *genai.Client
}

// NewGemini creates a Gemini client. An empty apiKey returns (nil, nil) so
// callers can pass the result straight to New and get the no-key fallback.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: c}, nil
}

// Generate implements Generator.
func (g *Gemini) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// NewProvider wires a Gemini generator into an AI provider. Client
// construction errors degrade to the no-key behavior.
func NewProvider(ctx context.Context, apiKey, model string, timeout time.Duration) (*AI, error) {
	gen, err := NewGemini(ctx, apiKey)
	if err != nil || gen == nil {
		return New(nil, model, timeout), err
	}
	return New(gen, model, timeout), nil
}
