// Package normalize extracts typed fields from loosely-shaped upstream JSON.
// The payment processor spells the same logical field several ways across
// endpoints and API revisions, so every getter takes an ordered list of
// candidate paths and returns the first present, non-empty value.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Payload wraps one decoded upstream JSON object.
type Payload map[string]any

// Decode parses raw JSON bytes into a Payload. Non-object payloads decode
// to an empty Payload rather than an error; absence is handled per-field.
func Decode(raw []byte) Payload {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Payload{}
	}
	return Payload(doc)
}

// lookup walks one dotted path, e.g. "data.invoice.request".
func (p Payload) lookup(path string) (any, bool) {
	var current any = map[string]any(p)
	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// String returns the first non-empty string found at the candidate paths.
func (p Payload) String(paths ...string) (string, bool) {
	for _, path := range paths {
		value, ok := p.lookup(path)
		if !ok {
			continue
		}
		if s, ok := value.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// Bool returns the first boolean found at the candidate paths.
func (p Payload) Bool(paths ...string) (bool, bool) {
	for _, path := range paths {
		value, ok := p.lookup(path)
		if !ok {
			continue
		}
		if b, ok := value.(bool); ok {
			return b, true
		}
	}
	return false, false
}

// Int64 returns the first integer found at the candidate paths. Upstream
// amounts arrive as JSON numbers or as numeric strings depending on the
// endpoint; both are accepted.
func (p Payload) Int64(paths ...string) (int64, bool) {
	for _, path := range paths {
		value, ok := p.lookup(path)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case float64:
			return int64(v), true
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return n, true
			}
		case string:
			if v == "" {
				continue
			}
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// Time returns the first parseable timestamp found at the candidate paths.
// RFC3339 strings and unix-second numbers are accepted.
func (p Payload) Time(paths ...string) (time.Time, bool) {
	for _, path := range paths {
		value, ok := p.lookup(path)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			if v == "" {
				continue
			}
			if ts, err := time.Parse(time.RFC3339, v); err == nil {
				return ts, true
			}
		case float64:
			return time.Unix(int64(v), 0).UTC(), true
		}
	}
	return time.Time{}, false
}

// Object returns the first sub-object found at the candidate paths.
func (p Payload) Object(paths ...string) (Payload, bool) {
	for _, path := range paths {
		value, ok := p.lookup(path)
		if !ok {
			continue
		}
		if obj, ok := value.(map[string]any); ok {
			return Payload(obj), true
		}
	}
	return nil, false
}

// Slice returns the first array of objects found at the candidate paths.
func (p Payload) Slice(paths ...string) ([]Payload, bool) {
	for _, path := range paths {
		value, ok := p.lookup(path)
		if !ok {
			continue
		}
		items, ok := value.([]any)
		if !ok {
			continue
		}
		payloads := make([]Payload, 0, len(items))
		for _, item := range items {
			if obj, ok := item.(map[string]any); ok {
				payloads = append(payloads, Payload(obj))
			}
		}
		return payloads, true
	}
	return nil, false
}
