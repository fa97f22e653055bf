package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"wanderplan/internal/itinerary"
)

var rootCmd = &cobra.Command{
	Use:   "tripgen",
	Short: "tripgen generates AI travel itineraries from trip preferences",
	Long: `tripgen talks to a wanderplan server (or runs the pipeline locally) and prints the
resulting itinerary. It also previews prompts and checks model replies offline.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// preferenceFlags mirrors the planning form, including its defaults.
type preferenceFlags struct {
	destination   string
	from, to      string
	travelers     int
	travelerType  string
	budget        string
	interests     []string
	pace          string
	accommodation string
	mustHaves     string
	notes         string
}

func (f *preferenceFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.destination, "destination", "d", "", "Destination(s), e.g. \"Paris, France\"")
	fs.StringVar(&f.from, "from", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "End date (YYYY-MM-DD)")
	fs.IntVarP(&f.travelers, "travelers", "n", 1, "Number of travelers")
	fs.StringVar(&f.travelerType, "traveler-type", string(itinerary.TravelerSolo), "solo|couple|family|friends|business")
	fs.StringVar(&f.budget, "budget", string(itinerary.BudgetMidRange), "economy|mid-range|luxury")
	fs.StringSliceVar(&f.interests, "interests", nil, "adventure,relaxation,culture,foodie,history,nature,nightlife,shopping")
	fs.StringVar(&f.pace, "pace", string(itinerary.PaceModerate), "relaxed|moderate|fast-paced")
	fs.StringVar(&f.accommodation, "accommodation", string(itinerary.AccommodationHotelMid), "any|hostel|hotel-budget|hotel-3-4|hotel-luxury|airbnb|boutique")
	fs.StringVar(&f.mustHaves, "must-haves", "", "Must-have activities or places")
	fs.StringVar(&f.notes, "notes", "", "Other preferences or notes")
}

func (f *preferenceFlags) preferences() itinerary.TripPreferences {
	interests := make([]itinerary.Interest, 0, len(f.interests))
	for _, i := range f.interests {
		interests = append(interests, itinerary.Interest(i))
	}
	return itinerary.TripPreferences{
		Destination:       f.destination,
		Dates:             itinerary.DateRange{From: f.from, To: f.to},
		NumTravelers:      itinerary.TravelerCount(f.travelers),
		TravelerType:      itinerary.TravelerType(f.travelerType),
		Budget:            itinerary.Budget(f.budget),
		SelectedInterests: interests,
		TravelPace:        itinerary.Pace(f.pace),
		Accommodation:     itinerary.Accommodation(f.accommodation),
		MustHaves:         f.mustHaves,
		AdditionalNotes:   f.notes,
	}
}
