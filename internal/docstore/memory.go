package docstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store implementation. It backs tests and
// local development runs where a persistent database is unwanted.
type MemoryStore struct {
	mu    sync.RWMutex
	colls map[string]map[string]Document
	order map[string][]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		colls: make(map[string]map[string]Document),
		order: make(map[string][]string),
	}
}

func (s *MemoryStore) put(collection, id string, doc Document) {
	coll, ok := s.colls[collection]
	if !ok {
		coll = make(map[string]Document)
		s.colls[collection] = coll
	}
	if _, exists := coll[id]; !exists {
		s.order[collection] = append(s.order[collection], id)
	}
	coll[id] = doc
}

// Get returns a copy of the document with the given id, or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.colls[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneDoc(doc)
	out["id"] = id
	return out, nil
}

// Set overwrites the document with the given id, creating it if absent.
func (s *MemoryStore) Set(ctx context.Context, collection, id string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(collection, id, resolveFields(doc, nil, time.Now().UTC()))
	return nil
}

// Update merges fields into an existing document, or returns ErrNotFound.
func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.colls[collection][id]
	if !ok {
		return ErrNotFound
	}
	merged := cloneDoc(existing)
	for k, v := range resolveFields(fields, existing, time.Now().UTC()) {
		merged[k] = v
	}
	s.colls[collection][id] = merged
	return nil
}

// Add inserts a document under a generated id and returns that id.
func (s *MemoryStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.put(collection, id, resolveFields(doc, nil, time.Now().UTC()))
	return id, nil
}

// Delete removes a document. Deleting an absent document is not an error.
func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.colls[collection][id]; !ok {
		return nil
	}
	delete(s.colls[collection], id)
	ids := s.order[collection]
	for i, existing := range ids {
		if existing == id {
			s.order[collection] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// OrderedScan returns all documents in a collection sorted ascending by the
// named field, stable over insertion order.
func (s *MemoryStore) OrderedScan(ctx context.Context, collection, field string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []Document
	for _, id := range s.order[collection] {
		doc := cloneDoc(s.colls[collection][id])
		doc["id"] = id
		docs = append(docs, doc)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return compareFieldValues(docs[i][field], docs[j][field]) < 0
	})
	return docs, nil
}

func cloneDoc(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
