// README: Validated itinerary aggregate returned to renderers.
package itinerary

type Itinerary struct {
	Title              string    `json:"title"`
	Destination        string    `json:"destination"`
	OverallSummary     string    `json:"overallSummary"`
	Days               []DayPlan `json:"days"`
	TravelTips         []string  `json:"travelTips"`
	PackingSuggestions []string  `json:"packingSuggestions"`
}

type DayPlan struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
	Notes      string   `json:"notes,omitempty"`
}

// Location is an optional geocoded hint about the destination.
type Location struct {
	FormattedAddress string
	Lat              float64
	Lng              float64
}
