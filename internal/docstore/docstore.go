// Package docstore provides the document store interface and implementations.
//
// A Store holds JSON documents in path-like collections ("projects",
// "projects/<id>/messages"). Each operation is an independent call with its
// own failure mode; there is no cross-document transaction support.
package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"
)

// Document is one stored record. Documents returned by Get and OrderedScan
// carry their own id under the reserved "id" key; the key is stripped again
// on write so it is never persisted twice.
type Document map[string]any

var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrIndexRequired is returned by backends that need a composite index
	// to serve an ordered scan. The local Badger backend never returns it,
	// but callers must be prepared for it from remote stores.
	ErrIndexRequired = errors.New("index required for ordered scan")
)

// ServerTimestamp marks a field to be resolved to the store's current time
// at write time, inside the same transaction as the write itself.
type ServerTimestamp struct{}

// ArrayUnion marks a field update that merges the given values into an
// existing array, skipping values already present and preserving order.
// Applied atomically with the rest of the update.
type ArrayUnion []string

// Store is the capability set the rest of the service is written against.
// All implementations guarantee per-document atomicity for Update.
type Store interface {
	// Get returns the document with the given id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Set overwrites the document with the given id, creating it if absent.
	Set(ctx context.Context, collection, id string, doc Document) error
	// Update merges fields into an existing document, or returns ErrNotFound.
	Update(ctx context.Context, collection, id string, fields Document) error
	// Add inserts a document under a generated id and returns that id.
	Add(ctx context.Context, collection string, doc Document) (string, error)
	// Delete removes a document. Deleting an absent document is not an error.
	Delete(ctx context.Context, collection, id string) error
	// OrderedScan returns all documents in a collection sorted ascending by
	// the named field.
	OrderedScan(ctx context.Context, collection, field string) ([]Document, error)
}

// resolveFields applies write sentinels against the current document state.
// existing may be nil for fresh inserts.
func resolveFields(fields Document, existing Document, now time.Time) Document {
	out := make(Document, len(fields))
	for k, v := range fields {
		switch sv := v.(type) {
		case ServerTimestamp:
			out[k] = now
		case ArrayUnion:
			var current []string
			if existing != nil {
				current = toStringSlice(existing[k])
			}
			out[k] = lo.Union(current, []string(sv))
		default:
			out[k] = v
		}
	}
	return out
}

// toStringSlice converts a stored array value, which a JSON decoder hands
// back as []any, into a string slice. Non-string elements are dropped.
func toStringSlice(v any) []string {
	switch arr := v.(type) {
	case []string:
		return arr
	case []any:
		out := make([]string, 0, len(arr))
		for _, e := range arr {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// compareFieldValues orders two field values for OrderedScan. Numbers sort
// numerically, strings lexically (RFC 3339 timestamps sort correctly this
// way), time values chronologically. Mixed or unknown types compare equal
// so the scan's stable sort preserves insertion order for them.
func compareFieldValues(a, b any) int {
	if at, aok := asTime(a); aok {
		if bt, bok := asTime(b); bok {
			return at.Compare(bt)
		}
	}
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			switch {
			case as < bs:
				return -1
			case as > bs:
				return 1
			default:
				return 0
			}
		}
	}
	return 0
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
