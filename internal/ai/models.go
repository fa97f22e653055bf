package ai

// Fixed decoding configuration. These are not configurable at runtime.
const (
	Temperature      float32 = 0.7
	TopP             float32 = 0.95
	TopK             int32   = 64
	MaxOutputTokens  int32   = 8192
	ResponseMIMEType         = "application/json"
)

// Reply is the raw model output for one prompt.
type Reply struct {
	// Text is the concatenated text of the first candidate, before sanitizing.
	Text string

	// Usage is zero when the provider did not report token counts.
	Usage Usage
}

type Usage struct {
	PromptTokens   int
	ResponseTokens int
	TotalTokens    int
}

// SafetyFeedback is the provider feedback attached to a content-blocked error.
type SafetyFeedback struct {
	BlockReason  string         `json:"blockReason,omitempty"`
	FinishReason string         `json:"finishReason,omitempty"`
	Ratings      []SafetyRating `json:"safetyRatings,omitempty"`
}

type SafetyRating struct {
	Category    string `json:"category"`
	Probability string `json:"probability"`
	Blocked     bool   `json:"blocked,omitempty"`
}
