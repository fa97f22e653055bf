// README: Trip preferences record (form wire shape) and its normalization rules.
package itinerary

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout    = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

type TravelerType string

const (
	TravelerSolo     TravelerType = "solo"
	TravelerCouple   TravelerType = "couple"
	TravelerFamily   TravelerType = "family"
	TravelerFriends  TravelerType = "friends"
	TravelerBusiness TravelerType = "business"
)

type Budget string

const (
	BudgetEconomy  Budget = "economy"
	BudgetMidRange Budget = "mid-range"
	BudgetLuxury   Budget = "luxury"
)

type Pace string

const (
	PaceRelaxed  Pace = "relaxed"
	PaceModerate Pace = "moderate"
	PaceFast     Pace = "fast-paced"
)

type Accommodation string

const (
	AccommodationAny         Accommodation = "any"
	AccommodationHostel      Accommodation = "hostel"
	AccommodationHotelBudget Accommodation = "hotel-budget"
	AccommodationHotelMid    Accommodation = "hotel-3-4"
	AccommodationHotelLuxury Accommodation = "hotel-luxury"
	AccommodationAirbnb      Accommodation = "airbnb"
	AccommodationBoutique    Accommodation = "boutique"
)

type Interest string

// Interests lists every interest tag in canonical order.
var Interests = []Interest{
	"adventure", "relaxation", "culture", "foodie",
	"history", "nature", "nightlife", "shopping",
}

var (
	travelerTypes  = []TravelerType{TravelerSolo, TravelerCouple, TravelerFamily, TravelerFriends, TravelerBusiness}
	budgets        = []Budget{BudgetEconomy, BudgetMidRange, BudgetLuxury}
	paces          = []Pace{PaceRelaxed, PaceModerate, PaceFast}
	accommodations = []Accommodation{
		AccommodationAny, AccommodationHostel, AccommodationHotelBudget, AccommodationHotelMid,
		AccommodationHotelLuxury, AccommodationAirbnb, AccommodationBoutique,
	}
)

// TravelerCount decodes from either a JSON number or a numeric string ("2"), which is what the
// web form submits.
type TravelerCount int

func (n *TravelerCount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = 0
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("numTravelers: %q is not a whole number", s)
	}
	*n = TravelerCount(v)
	return nil
}

type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type TripPreferences struct {
	Destination       string        `json:"destination"`
	Dates             DateRange     `json:"dates"`
	NumTravelers      TravelerCount `json:"numTravelers"`
	TravelerType      TravelerType  `json:"travelerType,omitempty"`
	Budget            Budget        `json:"budget,omitempty"`
	SelectedInterests []Interest    `json:"selectedInterests,omitempty"`
	TravelPace        Pace          `json:"travelPace,omitempty"`
	Accommodation     Accommodation `json:"accommodation,omitempty"`
	MustHaves         string        `json:"mustHaves,omitempty"`
	AdditionalNotes   string        `json:"additionalNotes,omitempty"`
}

// DecodePreferences parses a request body. An empty body or a JSON null means no preferences
// were supplied at all. Destination and numTravelers must have the right JSON type; any other
// field with the wrong type is treated as unspecified.
func DecodePreferences(body []byte) (TripPreferences, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return TripPreferences{}, &Error{class: ErrMissingInput}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		return TripPreferences{}, &Error{class: ErrInvalidInput, Err: err}
	}

	var p TripPreferences
	if raw, ok := fields["destination"]; ok {
		if err := json.Unmarshal(raw, &p.Destination); err != nil {
			return TripPreferences{}, &Error{class: ErrInvalidInput, Field: "destination", Err: err}
		}
	}
	if raw, ok := fields["numTravelers"]; ok {
		if err := json.Unmarshal(raw, &p.NumTravelers); err != nil {
			return TripPreferences{}, &Error{class: ErrInvalidInput, Field: "numTravelers", Err: err}
		}
	}

	p.TravelerType = TravelerType(lenientString(fields["travelerType"]))
	p.Budget = Budget(lenientString(fields["budget"]))
	p.TravelPace = Pace(lenientString(fields["travelPace"]))
	p.Accommodation = Accommodation(lenientString(fields["accommodation"]))
	p.MustHaves = lenientString(fields["mustHaves"])
	p.AdditionalNotes = lenientString(fields["additionalNotes"])
	p.SelectedInterests = lenientInterests(fields["selectedInterests"])
	p.Dates = lenientDates(fields["dates"])
	return p, nil
}

// lenientString returns raw as a string, or "" when it is absent or not a JSON string.
func lenientString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// lenientInterests keeps the string entries of a JSON array and drops everything else.
func lenientInterests(raw json.RawMessage) []Interest {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var out []Interest
	for _, item := range items {
		if s := lenientString(item); s != "" {
			out = append(out, Interest(s))
		}
	}
	return out
}

func lenientDates(raw json.RawMessage) DateRange {
	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil {
		return DateRange{}
	}
	return DateRange{From: lenientString(fields["from"]), To: lenientString(fields["to"])}
}

// Normalize enforces the collector contract: destination and traveler count are required, every
// other field degrades to unspecified instead of failing.
func (p TripPreferences) Normalize() (TripPreferences, error) {
	out := TripPreferences{
		Destination:     strings.TrimSpace(p.Destination),
		NumTravelers:    p.NumTravelers,
		MustHaves:       strings.TrimSpace(p.MustHaves),
		AdditionalNotes: strings.TrimSpace(p.AdditionalNotes),
	}
	if out.Destination == "" {
		return TripPreferences{}, NewInvalidInput("destination", "destination is required")
	}
	if out.NumTravelers < 1 {
		return TripPreferences{}, NewInvalidInput("numTravelers", "at least one traveler is required")
	}

	out.TravelerType = oneOf(TravelerType(strings.TrimSpace(string(p.TravelerType))), travelerTypes)
	out.Budget = oneOf(Budget(strings.TrimSpace(string(p.Budget))), budgets)
	out.TravelPace = oneOf(Pace(strings.TrimSpace(string(p.TravelPace))), paces)
	out.Accommodation = oneOf(Accommodation(strings.TrimSpace(string(p.Accommodation))), accommodations)
	out.SelectedInterests = canonicalInterests(p.SelectedInterests)
	out.Dates = normalizeDates(p.Dates)
	return out, nil
}

// TripDays reports the inclusive length of the date range when both bounds are present.
func (p TripPreferences) TripDays() (int, bool) {
	if p.Dates.From == "" || p.Dates.To == "" {
		return 0, false
	}
	from, err1 := time.Parse(dateLayout, p.Dates.From)
	to, err2 := time.Parse(dateLayout, p.Dates.To)
	if err1 != nil || err2 != nil || to.Before(from) {
		return 0, false
	}
	// Unix seconds, not Duration: a Duration saturates after about 292 years.
	return int((to.Unix()-from.Unix())/secondsPerDay) + 1, true
}

func oneOf[T ~string](v T, allowed []T) T {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return ""
}

func canonicalInterests(in []Interest) []Interest {
	if len(in) == 0 {
		return nil
	}
	picked := make(map[Interest]bool, len(in))
	for _, i := range in {
		picked[Interest(strings.TrimSpace(string(i)))] = true
	}
	var out []Interest
	for _, i := range Interests {
		if picked[i] {
			out = append(out, i)
		}
	}
	return out
}

func normalizeDates(d DateRange) DateRange {
	from, fromOK := parseDate(d.From)
	to, toOK := parseDate(d.To)
	if fromOK && toOK && to.Before(from) {
		return DateRange{}
	}
	var out DateRange
	if fromOK {
		out.From = from.Format(dateLayout)
	}
	if toOK {
		out.To = to.Format(dateLayout)
	}
	return out
}

// parseDate accepts a plain calendar date or a full RFC 3339 timestamp, keeping only the date.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
