package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNormalizeTimestamp_CanonicalMap(t *testing.T) {
	got := NormalizeTimestamp(map[string]any{
		"_seconds":     float64(1700000000),
		"_nanoseconds": float64(123456789),
	})
	if got == nil {
		t.Fatal("normalized to nil")
	}
	if got.Seconds != 1700000000 || got.Nanoseconds != 123456789 {
		t.Errorf("got {%d, %d}, want {1700000000, 123456789}", got.Seconds, got.Nanoseconds)
	}
}

func TestNormalizeTimestamp_AlternateFieldNames(t *testing.T) {
	got := NormalizeTimestamp(map[string]any{
		"seconds":     int64(1700000000),
		"nanoseconds": int64(42),
	})
	if got == nil {
		t.Fatal("normalized to nil")
	}
	if got.Seconds != 1700000000 || got.Nanoseconds != 42 {
		t.Errorf("got {%d, %d}, want {1700000000, 42}", got.Seconds, got.Nanoseconds)
	}
}

func TestNormalizeTimestamp_NativeTime(t *testing.T) {
	instant := time.Date(2024, 3, 1, 12, 30, 0, 500, time.UTC)

	got := NormalizeTimestamp(instant)
	if got == nil {
		t.Fatal("normalized to nil")
	}
	if got.Seconds != instant.Unix() || got.Nanoseconds != 500 {
		t.Errorf("got {%d, %d}, want {%d, 500}", got.Seconds, got.Nanoseconds, instant.Unix())
	}
}

func TestNormalizeTimestamp_RFC3339String(t *testing.T) {
	instant := time.Date(2024, 3, 1, 12, 30, 0, 500, time.UTC)

	got := NormalizeTimestamp(instant.Format(time.RFC3339Nano))
	if got == nil {
		t.Fatal("normalized to nil")
	}
	if got.Seconds != instant.Unix() || got.Nanoseconds != 500 {
		t.Errorf("got {%d, %d}, want {%d, 500}", got.Seconds, got.Nanoseconds, instant.Unix())
	}
}

func TestNormalizeTimestamp_AllShapesAgree(t *testing.T) {
	instant := time.Date(2024, 3, 1, 12, 30, 0, 987654321, time.UTC)
	want := NewTimestamp(instant)

	shapes := map[string]any{
		"canonical map": map[string]any{
			"_seconds":     float64(instant.Unix()),
			"_nanoseconds": float64(instant.Nanosecond()),
		},
		"alternate map": map[string]any{
			"seconds":     float64(instant.Unix()),
			"nanoseconds": float64(instant.Nanosecond()),
		},
		"native time": instant,
		"string":      instant.Format(time.RFC3339Nano),
	}

	for name, shape := range shapes {
		got := NormalizeTimestamp(shape)
		if got == nil {
			t.Fatalf("%s: normalized to nil", name)
		}
		if *got != *want {
			t.Errorf("%s: got %+v, want %+v", name, got, want)
		}
	}
}

func TestNormalizeTimestamp_MissingOrBogus(t *testing.T) {
	for name, v := range map[string]any{
		"nil":           nil,
		"bad string":    "yesterday",
		"empty map":     map[string]any{},
		"wrong type":    42,
		"partial field": map[string]any{"_nanoseconds": float64(5)},
	} {
		if got := NormalizeTimestamp(v); got != nil {
			t.Errorf("%s: got %+v, want nil", name, got)
		}
	}
}

func TestTimestamp_MarshalShape(t *testing.T) {
	data, err := json.Marshal(&Timestamp{Seconds: 10, Nanoseconds: 20})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"_seconds":10,"_nanoseconds":20}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

func TestMessage_NilTimestampMarshalsAsNull(t *testing.T) {
	data, err := json.Marshal(Message{ID: "m1", SenderID: "a", Content: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	v, present := decoded["timestamp"]
	if !present {
		t.Fatal("timestamp field omitted, want explicit null")
	}
	if v != nil {
		t.Errorf("timestamp = %v, want null", v)
	}
}
