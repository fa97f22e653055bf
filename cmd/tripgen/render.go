package main

import (
	"bufio"
	"fmt"
	"io"

	"wanderplan/internal/itinerary"
)

const (
	fallbackTitle   = "Your Personalized Trip"
	noActivities    = "No specific activities listed for this day."
	noDaysAvailable = "Itinerary details are not available."
)

// RenderText writes a plain-text view of the itinerary.
func RenderText(w io.Writer, it *itinerary.Itinerary) error {
	bw := bufio.NewWriter(w)
	if it == nil {
		fmt.Fprintln(bw, noDaysAvailable)
		return bw.Flush()
	}

	title := it.Title
	if title == "" {
		title = fallbackTitle
	}
	fmt.Fprintln(bw, title)
	if it.Destination != "" {
		fmt.Fprintf(bw, "To: %s\n", it.Destination)
	}

	if it.OverallSummary != "" {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "Trip Overview")
		fmt.Fprintln(bw, it.OverallSummary)
	}

	fmt.Fprintln(bw)
	if len(it.Days) == 0 {
		fmt.Fprintln(bw, noDaysAvailable)
	}
	for _, d := range it.Days {
		fmt.Fprintf(bw, "Day %d: %s\n", d.Day, d.Title)
		if len(d.Activities) == 0 {
			fmt.Fprintf(bw, "  %s\n", noActivities)
		}
		for _, a := range d.Activities {
			fmt.Fprintf(bw, "  - %s\n", a)
		}
		if d.Notes != "" {
			fmt.Fprintf(bw, "  Notes: %s\n", d.Notes)
		}
		fmt.Fprintln(bw)
	}

	renderList(bw, "Travel Tips", it.TravelTips)
	renderList(bw, "Packing Suggestions", it.PackingSuggestions)
	return bw.Flush()
}

func renderList(w io.Writer, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, heading)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
	fmt.Fprintln(w)
}
