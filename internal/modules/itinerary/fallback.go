package itinerary

import (
	"fmt"
	"strings"
)

type dayTheme struct {
	title      string
	activities []string
}

var themes = []dayTheme{
	{"Arrival and Orientation", []string{
		"Arrive in %s",
		"Check into accommodation",
		"Take a walking tour of the city center",
		"Visit local landmarks",
		"Enjoy dinner at a local restaurant",
	}},
	{"Cultural Exploration", []string{
		"Visit museums and cultural sites in %s",
		"Explore local markets",
		"Try traditional cuisine",
		"Evening entertainment (theater, music, etc.)",
	}},
	{"Nature and Adventure", []string{
		"Outdoor activities or nature walks around %s",
		"Visit parks or natural attractions",
		"Shopping for souvenirs",
		"Farewell dinner",
	}},
}

// Fallback renders the deterministic itinerary used when no model answer is available.
// Paragraphs are separated by blank lines.
func Fallback(r Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Travel Itinerary for %s\n\n", r.Destination)
	b.WriteString("**Trip Details:**\n")
	fmt.Fprintf(&b, "- Destination: %s\n", r.Destination)
	if r.Source != "" {
		fmt.Fprintf(&b, "- Departing from: %s\n", r.Source)
	}
	fmt.Fprintf(&b, "- Start Date: %s\n", r.StartDate.Format(dateLayout))
	fmt.Fprintf(&b, "- End Date: %s\n", r.EndDate.Format(dateLayout))
	fmt.Fprintf(&b, "- Budget: %s", formatBudget(r.Budget))

	for day := 1; day <= min(r.Days(), MaxDays); day++ {
		th := themes[(day-1)%len(themes)]
		fmt.Fprintf(&b, "\n\n**Day %d - %s:**", day, th.title)
		for _, a := range th.activities {
			if strings.Contains(a, "%s") {
				a = fmt.Sprintf(a, r.Destination)
			}
			b.WriteString("\n- " + a)
		}
	}

	b.WriteString("\n\n**Tips:**\n")
	b.WriteString("- Research local customs and etiquette\n")
	b.WriteString("- Learn basic phrases in the local language\n")
	b.WriteString("- Keep emergency contacts handy\n")
	b.WriteString("- Stay hydrated and well-rested")
	b.WriteString("\n\n*Note: This is a basic itinerary. Configure an AI provider for a personalized plan.*")
	return b.String()
}
