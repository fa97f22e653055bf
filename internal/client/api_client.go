// README: HTTP transport for the lifecycle controller; posts preferences and re-validates the reply.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"wanderplan/internal/itinerary"
)

const generatePath = "/api/generate-itinerary"

// Client-only error kinds.
const (
	KindHTTP    = "http-error"
	KindNetwork = "network-error"
)

// APIError is a failed round trip. Message is what the view shows.
type APIError struct {
	Status  int
	ErrKind string
	Message string
	Details json.RawMessage
	Err     error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) Kind() string { return e.ErrKind }

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API at baseURL. A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Generate posts prefs and returns the validated itinerary. A 2xx body that fails validation is
// reported with the validator's error.
func (c *Client) Generate(ctx context.Context, prefs itinerary.TripPreferences) (*itinerary.Itinerary, error) {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("encode preferences: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{ErrKind: KindNetwork, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, ErrKind: KindNetwork, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, body)
	}
	return itinerary.Validate(string(body))
}

func decodeAPIError(status int, body []byte) *APIError {
	var eb struct {
		Message string          `json:"message"`
		Kind    string          `json:"kind"`
		Details json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(body, &eb); err != nil || eb.Message == "" {
		return &APIError{Status: status, ErrKind: KindHTTP, Message: fmt.Sprintf("HTTP error! status: %d", status)}
	}
	kind := eb.Kind
	if kind == "" {
		kind = KindHTTP
	}
	return &APIError{Status: status, ErrKind: kind, Message: eb.Message, Details: eb.Details}
}
