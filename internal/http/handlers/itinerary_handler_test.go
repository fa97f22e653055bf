// README: Itinerary handler tests (status codes and error bodies per failure kind).
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/http/handlers"
	"wanderplan/internal/itinerary"
	"wanderplan/internal/modules/usage"
)

// stubPlanner is a test double for handlers.Planner.
type stubPlanner struct {
	it    *itinerary.Itinerary
	err   error
	calls int
	got   itinerary.TripPreferences
	ctx   context.Context
}

func (s *stubPlanner) Plan(ctx context.Context, prefs itinerary.TripPreferences) (*itinerary.Itinerary, error) {
	s.calls++
	s.got = prefs
	s.ctx = ctx
	return s.it, s.err
}

type errorBody struct {
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
	Kind    string          `json:"kind"`
}

func buildTestRouter(p handlers.Planner, timeout time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewItineraryHandler(p, timeout)
	r.POST("/api/generate-itinerary", h.Generate)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

const parisBody = `{"destination":"Paris, France","numTravelers":"2","selectedInterests":["foodie","culture"]}`

func TestGenerateSuccess(t *testing.T) {
	planner := &stubPlanner{it: &itinerary.Itinerary{
		Title: "Paris", Destination: "Paris, France",
		Days:       []itinerary.DayPlan{{Day: 1, Title: "Arrival", Activities: []string{}}},
		TravelTips: []string{}, PackingSuggestions: []string{},
	}}
	rec := doRequest(buildTestRouter(planner, 0), http.MethodPost, "/api/generate-itinerary", parisBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got itinerary.Itinerary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "Paris" || len(got.Days) != 1 {
		t.Fatalf("unexpected itinerary %+v", got)
	}
	if planner.got.NumTravelers != 2 {
		t.Fatalf("numTravelers string not decoded: %+v", planner.got)
	}
	if _, ok := planner.ctx.Deadline(); ok {
		t.Fatal("no deadline expected when timeout is zero")
	}
}

func TestGenerateMissingBody(t *testing.T) {
	for _, body := range []string{"", "null"} {
		planner := &stubPlanner{}
		rec := doRequest(buildTestRouter(planner, 0), http.MethodPost, "/api/generate-itinerary", body)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		got := decodeError(t, rec)
		if got.Message != "No form data provided." || got.Kind != itinerary.KindMissingInput {
			t.Fatalf("unexpected body %+v", got)
		}
		if planner.calls != 0 {
			t.Fatal("planner must not be called without a body")
		}
	}
}

func TestGenerateInvalidJSON(t *testing.T) {
	planner := &stubPlanner{}
	rec := doRequest(buildTestRouter(planner, 0), http.MethodPost, "/api/generate-itinerary", `{"destination":`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got.Kind != itinerary.KindInvalidInput {
		t.Fatalf("expected invalid-input, got %+v", got)
	}
	if planner.calls != 0 {
		t.Fatal("planner must not be called for unparsable input")
	}
}

func TestGenerateErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
		kind    string
	}{
		{
			name:    "invalid input",
			err:     itinerary.NewInvalidInput("destination", "destination is required"),
			status:  http.StatusBadRequest,
			message: "Invalid trip preferences.",
			kind:    itinerary.KindInvalidInput,
		},
		{
			name:    "content blocked",
			err:     itinerary.NewContentBlocked(map[string]string{"blockReason": "SAFETY"}, errors.New("blocked")),
			status:  http.StatusBadRequest,
			message: "Content generation blocked due to safety settings. Please revise your input.",
			kind:    itinerary.KindContentBlocked,
		},
		{
			name:    "provider error",
			err:     itinerary.NewProviderError(errors.New("quota exceeded")),
			status:  http.StatusInternalServerError,
			message: "Failed to generate itinerary from AI.",
			kind:    itinerary.KindProvider,
		},
		{
			name:    "unclassified error",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "Failed to generate itinerary from AI.",
			kind:    itinerary.KindProvider,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(buildTestRouter(&stubPlanner{err: tc.err}, 0), http.MethodPost, "/api/generate-itinerary", parisBody)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			got := decodeError(t, rec)
			if got.Message != tc.message || got.Kind != tc.kind {
				t.Fatalf("unexpected body %+v", got)
			}
		})
	}
}

func TestGenerateContentBlockedDetails(t *testing.T) {
	err := itinerary.NewContentBlocked(map[string]string{"blockReason": "SAFETY"}, errors.New("blocked"))
	rec := doRequest(buildTestRouter(&stubPlanner{err: err}, 0), http.MethodPost, "/api/generate-itinerary", parisBody)

	got := decodeError(t, rec)
	var details map[string]string
	if err := json.Unmarshal(got.Details, &details); err != nil {
		t.Fatalf("details: %v", err)
	}
	if details["blockReason"] != "SAFETY" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestGenerateSchemaMismatchDetails(t *testing.T) {
	_, err := itinerary.Validate(`{"title":"X"}`)
	rec := doRequest(buildTestRouter(&stubPlanner{err: err}, 0), http.MethodPost, "/api/generate-itinerary", parisBody)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	got := decodeError(t, rec)
	var details string
	if err := json.Unmarshal(got.Details, &details); err != nil {
		t.Fatalf("details: %v", err)
	}
	if got.Kind != itinerary.KindSchemaMismatch || details != "days: missing required field" {
		t.Fatalf("unexpected body %+v (%s)", got, details)
	}
}

func TestGenerateTimeout(t *testing.T) {
	planner := &stubPlanner{it: &itinerary.Itinerary{}}
	doRequest(buildTestRouter(planner, 30*time.Second), http.MethodPost, "/api/generate-itinerary", parisBody)

	deadline, ok := planner.ctx.Deadline()
	if !ok || time.Until(deadline) > 30*time.Second {
		t.Fatalf("expected a 30s deadline, got %v %v", deadline, ok)
	}
}

// stubUsage is a test double for handlers.UsageReader.
type stubUsage struct {
	counts *usage.DailyCounts
	err    error
	day    string
}

func (s *stubUsage) Daily(_ context.Context, day string) (*usage.DailyCounts, error) {
	s.day = day
	return s.counts, s.err
}

func TestUsageDaily(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		reader handlers.UsageReader
		status int
	}{
		{"ok", &stubUsage{counts: &usage.DailyCounts{Day: "2025-06-01", Outcomes: map[string]int64{"success": 3}, Requests: 3}}, http.StatusOK},
		{"disabled", &stubUsage{err: usage.ErrDisabled}, http.StatusServiceUnavailable},
		{"bad day", &stubUsage{err: usage.ErrInvalidDay}, http.StatusBadRequest},
		{"backend down", &stubUsage{err: errors.New("redis down")}, http.StatusInternalServerError},
		{"no reader", nil, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/api/usage", handlers.NewUsageHandler(tc.reader).Daily)
			rec := doRequest(r, http.MethodGet, "/api/usage?day=2025-06-01", "")
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
		})
	}
}
