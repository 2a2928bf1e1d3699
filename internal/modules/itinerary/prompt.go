package itinerary

import (
	"fmt"
	"sort"
	"strings"
)

const dateLayout = "2006-01-02"

func formatBudget(b *float64) string {
	if b == nil {
		return "Not specified"
	}
	return fmt.Sprintf("%.2f USD", *b)
}

func formatPreferences(p map[string]any) string {
	if len(p) == 0 {
		return "None specified"
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, p[k]))
	}
	return strings.Join(parts, "; ")
}

// BuildPrompt renders the user prompt sent to the model.
func BuildPrompt(r Request) string {
	travelType := r.TravelType
	if travelType == "" {
		travelType = "General"
	}
	return fmt.Sprintf(`Plan a %d-day trip.

Trip details:
- From: %s
- Destination: %s
- Dates: %s to %s
- Budget: %s
- Travel type: %s
- Preferences: %s

Research top attractions, local culture, cuisine, transportation and safety for %s.
Then create a day-by-day schedule with specific times, meals and transport between stops.
Finish with cost estimates per activity and money-saving tips that keep the trip within budget.`,
		r.Days(), r.Source, r.Destination,
		r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout),
		formatBudget(r.Budget), travelType, formatPreferences(r.Preferences), r.Destination)
}
