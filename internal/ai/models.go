package ai

import (
	"errors"
	"strings"
)

const (
	GeminiModel = "gemini-2.0-flash"
	GroqModel   = "llama-3.1-8b-instant"
	GroqBaseURL = "https://api.groq.com/openai/v1"
)

// ErrEmptyResponse is returned when the model produced no usable text.
var ErrEmptyResponse = errors.New("ai: empty response")

// systemInstruction frames every itinerary request. It folds the research,
// planning and budget passes into a single call.
const systemInstruction = `You are an expert travel planner. You research the destination (attractions, local culture,
cuisine, transportation, safety), then write a realistic day-by-day itinerary with specific times, meals and
transport between stops, and finally review it for cost: estimate costs per activity and suggest budget-friendly
alternatives and money-saving tips so the trip fits the stated budget.
Answer in English using markdown headings, one section per day, separated by blank lines.`

// cleanOutput strips a surrounding markdown code fence some models add.
func cleanOutput(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```markdown")
		s = strings.TrimPrefix(s, "```md")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
