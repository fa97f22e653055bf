// README: Itinerary validator; parses sanitized model text and enforces the itinerary schema.
package itinerary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Validate parses text as JSON and checks it against the itinerary schema. It returns either a
// fully populated Itinerary or an *Error classified as ErrMalformedJSON or ErrSchemaMismatch;
// nothing in between.
func Validate(text string) (*Itinerary, error) {
	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, newMalformedJSON(err)
	}

	root, err := asObject([]byte(text), "$")
	if err != nil {
		return nil, err
	}

	out := &Itinerary{}

	rawDays, ok := present(root, "days")
	if !ok {
		return nil, newSchemaMismatch("days", "missing required field")
	}
	if out.Days, err = dayPlans(rawDays); err != nil {
		return nil, err
	}
	if out.Title, err = requiredString(root, "title", "title"); err != nil {
		return nil, err
	}
	if out.Destination, err = requiredString(root, "destination", "destination"); err != nil {
		return nil, err
	}
	if out.OverallSummary, err = optionalString(root, "overallSummary", "overallSummary"); err != nil {
		return nil, err
	}
	if out.TravelTips, err = stringList(root, "travelTips", "travelTips"); err != nil {
		return nil, err
	}
	if out.PackingSuggestions, err = stringList(root, "packingSuggestions", "packingSuggestions"); err != nil {
		return nil, err
	}
	return out, nil
}

func dayPlans(raw json.RawMessage) ([]DayPlan, error) {
	if kindOf(raw) != '[' {
		return nil, newSchemaMismatch("days", "expected an array of day objects")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, newSchemaMismatch("days", "%v", err)
	}

	days := make([]DayPlan, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("days[%d]", i)
		obj, err := asObject(item, path)
		if err != nil {
			return nil, err
		}
		var d DayPlan
		if d.Day, err = positiveInt(obj, "day", path+".day"); err != nil {
			return nil, err
		}
		if d.Title, err = requiredString(obj, "title", path+".title"); err != nil {
			return nil, err
		}
		if d.Activities, err = stringList(obj, "activities", path+".activities"); err != nil {
			return nil, err
		}
		if d.Notes, err = optionalString(obj, "notes", path+".notes"); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

func asObject(raw []byte, path string) (map[string]json.RawMessage, error) {
	if kindOf(raw) != '{' {
		return nil, newSchemaMismatch(path, "expected a JSON object")
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, newSchemaMismatch(path, "%v", err)
	}
	return obj, nil
}

// present reports whether key exists with a non-null value.
func present(obj map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := obj[key]
	if !ok || kindOf(raw) == 'n' {
		return nil, false
	}
	return raw, true
}

func requiredString(obj map[string]json.RawMessage, key, path string) (string, error) {
	raw, ok := present(obj, key)
	if !ok {
		return "", newSchemaMismatch(path, "missing required field")
	}
	return decodeString(raw, path)
}

func optionalString(obj map[string]json.RawMessage, key, path string) (string, error) {
	raw, ok := present(obj, key)
	if !ok {
		return "", nil
	}
	return decodeString(raw, path)
}

func decodeString(raw json.RawMessage, path string) (string, error) {
	if kindOf(raw) != '"' {
		return "", newSchemaMismatch(path, "expected a string")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", newSchemaMismatch(path, "%v", err)
	}
	return s, nil
}

// stringList decodes an optional array of strings; absent or null yields an empty, non-nil slice.
func stringList(obj map[string]json.RawMessage, key, path string) ([]string, error) {
	raw, ok := present(obj, key)
	if !ok {
		return []string{}, nil
	}
	if kindOf(raw) != '[' {
		return nil, newSchemaMismatch(path, "expected an array of strings")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, newSchemaMismatch(path, "%v", err)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, err := decodeString(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func positiveInt(obj map[string]json.RawMessage, key, path string) (int, error) {
	raw, ok := present(obj, key)
	if !ok {
		return 0, newSchemaMismatch(path, "missing required field")
	}
	if kindOf(raw) != '0' {
		return 0, newSchemaMismatch(path, "expected a positive integer")
	}
	n, err := strconv.ParseInt(string(bytes.TrimSpace(raw)), 10, 32)
	if err != nil || n < 1 {
		return 0, newSchemaMismatch(path, "expected a positive integer, got %s", bytes.TrimSpace(raw))
	}
	return int(n), nil
}

// kindOf classifies a JSON value by its first byte: '{', '[', '"', 'n' (null), 'b' (bool),
// '0' (number) or 0 when empty.
func kindOf(raw []byte) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	switch c := raw[0]; c {
	case '{', '[', '"', 'n':
		return c
	case 't', 'f':
		return 'b'
	default:
		return '0'
	}
}
