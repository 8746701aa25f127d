package models

import (
	"encoding/json"
	"time"
)

// Timestamp is the canonical wire representation of a stored instant:
// whole seconds since the Unix epoch plus the nanosecond remainder.
// Every message-returning endpoint emits this shape, regardless of how
// the backing store happened to persist the value.
type Timestamp struct {
	Seconds     int64 `json:"_seconds"`
	Nanoseconds int64 `json:"_nanoseconds"`
}

// NewTimestamp builds a Timestamp from a time.Time.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{
		Seconds:     t.Unix(),
		Nanoseconds: int64(t.Nanosecond()),
	}
}

// Time converts the Timestamp back to a time.Time in UTC.
func (t *Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, t.Nanoseconds).UTC()
}

// NormalizeTimestamp converts any of the representations the store may hand
// back into the canonical Timestamp shape. Accepted inputs:
//
//   - a map already carrying "_seconds"/"_nanoseconds"
//   - a map carrying "seconds"/"nanoseconds"
//   - a native time.Time, or an RFC 3339 string (the form JSON-encoded
//     documents use for server-assigned write times)
//
// Anything else, including a missing value, normalizes to nil so callers
// emit an explicit null rather than dropping the field.
func NormalizeTimestamp(v any) *Timestamp {
	switch ts := v.(type) {
	case nil:
		return nil
	case time.Time:
		return NewTimestamp(ts)
	case string:
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil
		}
		return NewTimestamp(t)
	case map[string]any:
		if sec, ok := asInt64(ts["_seconds"]); ok {
			nsec, _ := asInt64(ts["_nanoseconds"])
			return &Timestamp{Seconds: sec, Nanoseconds: nsec}
		}
		if sec, ok := asInt64(ts["seconds"]); ok {
			nsec, _ := asInt64(ts["nanoseconds"])
			return &Timestamp{Seconds: sec, Nanoseconds: nsec}
		}
		return nil
	case *Timestamp:
		return ts
	case Timestamp:
		return &ts
	default:
		return nil
	}
}

// asInt64 coerces the numeric types a JSON decoder can produce.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
