package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// Gemini and Groq implement it; the itinerary generator depends only on this.
type LLMProvider interface {
	// GenerateItinerary returns the model's markdown itinerary for prompt.
	GenerateItinerary(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider in logs.
	Name() string
}
