// README: Prompt builder; renders preferences into the model instruction text.
package itinerary

import (
	"fmt"
	"strings"
)

const (
	notSpecified  = "Not specified"
	noneSpecified = "None specified"

	// maxExactDays bounds the trip length a single reply is asked to cover day by day.
	maxExactDays = 60
)

const promptPreamble = `You are an expert travel planner AI. Create a personalized travel itinerary based on the following user preferences.
Provide the output strictly as a JSON object with the following structure:
{
  "title": "A descriptive title for the trip (e.g., 'Your Awesome 5-Day Adventure in Paris')",
  "destination": "The primary destination mentioned",
  "overallSummary": "A brief 2-3 sentence summary of the trip.",
  "days": [
    {
      "day": 1,
      "title": "A catchy title for the day (e.g., 'Arrival and Eiffel Tower Magic')",
      "activities": ["Detailed activity 1", "Detailed activity 2", "Suggestion for meal"],
      "notes": "Optional short notes or tips for the day"
    }
  ],
  "travelTips": ["General tip 1", "General tip 2"],
  "packingSuggestions": ["Item 1", "Item 2"]
}
Field types: "title", "destination", "overallSummary" and "notes" are strings; "day" is a positive integer;
"days" is an array of day objects in itinerary order; "activities", "travelTips" and "packingSuggestions" are arrays of strings.
`

const promptClosing = `Be creative and suggest interesting and relevant activities.
Ensure the output is a valid JSON object ONLY. Do not include any text before or after the JSON object.
`

// BuildPrompt renders p into the model instruction. Equal inputs always produce byte-identical output.
func BuildPrompt(p TripPreferences) string {
	return BuildPromptWithLocation(p, nil)
}

// BuildPromptWithLocation is BuildPrompt plus an optional geocoded location hint.
func BuildPromptWithLocation(p TripPreferences, loc *Location) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\nUser Preferences:\n")

	line(&b, "Destination(s)", orDefault(p.Destination, notSpecified))
	fmt.Fprintf(&b, "Travel Dates: From %s to %s\n",
		orDefault(p.Dates.From, notSpecified), orDefault(p.Dates.To, notSpecified))
	days, hasSpan := p.TripDays()
	if hasSpan {
		line(&b, "Trip Length", fmt.Sprintf("%d days", days))
	}
	travelers := notSpecified
	if p.NumTravelers > 0 {
		travelers = fmt.Sprintf("%d", p.NumTravelers)
	}
	line(&b, "Number of Travelers", travelers)
	line(&b, "Traveler Type", orDefault(string(p.TravelerType), notSpecified))
	line(&b, "Budget Level", orDefault(string(p.Budget), notSpecified))
	line(&b, "Interests", orDefault(joinInterests(p.SelectedInterests), notSpecified))
	line(&b, "Travel Pace", orDefault(string(p.TravelPace), notSpecified))
	line(&b, "Preferred Accommodation", orDefault(string(p.Accommodation), notSpecified))
	line(&b, "Must-have Activities/Places", orDefault(p.MustHaves, noneSpecified))
	line(&b, "Additional Notes/Preferences", orDefault(p.AdditionalNotes, noneSpecified))
	if loc != nil && loc.FormattedAddress != "" {
		line(&b, "Resolved Location", fmt.Sprintf("%s (lat %.4f, lng %.4f)", loc.FormattedAddress, loc.Lat, loc.Lng))
	}

	b.WriteString("\n")
	if hasSpan && days <= maxExactDays {
		fmt.Fprintf(&b, "Generate a suitable itinerary. The travel dates are provided, so the itinerary must contain exactly %d days, one per calendar day of the trip.\n", days)
	} else {
		b.WriteString("Generate a suitable itinerary. If dates are provided, try to make the number of days in the itinerary match the duration. If not, suggest a reasonable duration based on the destination and interests (e.g., 3-7 days).\n")
	}
	b.WriteString(promptClosing)
	return b.String()
}

func line(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func joinInterests(in []Interest) string {
	parts := make([]string, 0, len(in))
	for _, i := range in {
		parts = append(parts, string(i))
	}
	return strings.Join(parts, ", ")
}
