package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wanderplan/internal/ai"
	"wanderplan/internal/client"
	"wanderplan/internal/config"
	"wanderplan/internal/itinerary"
	"wanderplan/internal/lifecycle"
	"wanderplan/internal/logging"
	"wanderplan/internal/service"
)

var (
	genPrefs  preferenceFlags
	genAPI    string
	genLocal  bool
	genAsJSON bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an itinerary",
	Long: `Submits the preferences once and waits for the result. Without --destination nothing is
sent and the missing-input state is reported. With --local the pipeline runs in-process using the
server configuration (GEMINI_API_KEY or OPENAI_API_KEY).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		gen, cleanup, err := newGenerator(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		ctrl := lifecycle.NewController(gen, lifecycle.WithOnChange(func(s lifecycle.State) {
			if s.Status == lifecycle.StatusLoading {
				fmt.Fprintln(os.Stderr, "Generating your personalized itinerary...")
			}
		}))

		var sub *lifecycle.Submission
		if genPrefs.destination != "" {
			sub = lifecycle.NewSubmission(genPrefs.preferences())
		}
		ctrl.Enter(ctx, sub)

		st, err := ctrl.Wait(ctx)
		if err != nil {
			return err
		}
		if st.Status == lifecycle.StatusError {
			return fmt.Errorf("generation failed (%s): %s", st.ErrKind, st.ErrMessage)
		}

		if genAsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st.Itinerary)
		}
		return RenderText(cmd.OutOrStdout(), st.Itinerary)
	},
}

// plannerGenerator adapts the in-process pipeline to the controller.
type plannerGenerator struct {
	planner *service.TripPlanner
}

func (g plannerGenerator) Generate(ctx context.Context, prefs itinerary.TripPreferences) (*itinerary.Itinerary, error) {
	return g.planner.Plan(ctx, prefs)
}

func newGenerator(ctx context.Context) (lifecycle.Generator, func(), error) {
	if !genLocal {
		return client.New(genAPI, nil), func() {}, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	var model ai.Model
	cleanup := func() {}
	switch cfg.AI.Provider {
	case config.ProviderOpenAI:
		model, err = ai.NewOpenAIProvider(cfg.AI.OpenAIKey, cfg.AI.OpenAIModel)
	default:
		var g *ai.GeminiProvider
		g, err = ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiModel)
		if g != nil {
			model, cleanup = g, g.Close
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("init ai provider: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	return plannerGenerator{planner: service.NewTripPlanner(model, service.WithLogger(logger))}, cleanup, nil
}

func init() {
	genPrefs.register(generateCmd.Flags())
	generateCmd.Flags().StringVar(&genAPI, "api", "http://localhost:3001", "Base URL of the wanderplan server")
	generateCmd.Flags().BoolVar(&genLocal, "local", false, "Run the pipeline in-process instead of calling the server")
	generateCmd.Flags().BoolVar(&genAsJSON, "json", false, "Print the itinerary as JSON")
	rootCmd.AddCommand(generateCmd)
}
