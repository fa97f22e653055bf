package main

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderplan/internal/itinerary"
)

func TestPreferenceFlagDefaults(t *testing.T) {
	var f preferenceFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse([]string{"-d", "Kyoto, Japan", "--interests", "culture,foodie"}))

	p := f.preferences()
	assert.Equal(t, "Kyoto, Japan", p.Destination)
	assert.Equal(t, itinerary.TravelerCount(1), p.NumTravelers)
	assert.Equal(t, itinerary.TravelerSolo, p.TravelerType)
	assert.Equal(t, itinerary.BudgetMidRange, p.Budget)
	assert.Equal(t, itinerary.PaceModerate, p.TravelPace)
	assert.Equal(t, itinerary.AccommodationHotelMid, p.Accommodation)
	assert.Equal(t, []itinerary.Interest{"culture", "foodie"}, p.SelectedInterests)
}

func TestPreferenceFlagsBuildPrompt(t *testing.T) {
	var f preferenceFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse([]string{"-d", "Lisbon", "--from", "2025-06-01", "--to", "2025-06-03", "-n", "4"}))

	prefs, err := f.preferences().Normalize()
	require.NoError(t, err)
	prompt := itinerary.BuildPrompt(prefs)
	assert.Contains(t, prompt, "Lisbon")
	assert.Contains(t, prompt, "Trip Length: 3 days")
}
