// README: Response sanitizer; undoes the markdown code-fence wrapping models add around JSON.
package itinerary

import "strings"

const (
	fenceOpener = "```json"
	fenceCloser = "```"
)

// Sanitize trims the text and strips a leading ```json opener and a trailing ``` closer.
// The steps repeat until nothing changes, so Sanitize(Sanitize(s)) == Sanitize(s).
// It never touches anything between the fences.
func Sanitize(raw string) string {
	s := raw
	for {
		next := strings.TrimSpace(s)
		next = strings.TrimPrefix(next, fenceOpener)
		next = strings.TrimSuffix(next, fenceCloser)
		next = strings.TrimSpace(next)
		if next == s {
			return s
		}
		s = next
	}
}
