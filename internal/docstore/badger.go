package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/good-yellow-bee/chatter/internal/metrics"
)

// BadgerStore implements Store on top of BadgerDB. Each document is one
// JSON value keyed by "<collection>#<id>"; the "#" separator keeps the
// prefix scan for a collection from matching its sub-collections.
type BadgerStore struct {
	path          string
	encryptionKey []byte
	db            *badger.DB
}

// NewBadgerStore creates a Badger-backed store. An empty path opens an
// in-memory database. encryptionKey may be nil for an unencrypted store,
// otherwise it must be 16, 24, or 32 bytes.
func NewBadgerStore(path string, encryptionKey []byte) *BadgerStore {
	return &BadgerStore{
		path:          path,
		encryptionKey: encryptionKey,
	}
}

// Open initializes the database.
func (s *BadgerStore) Open() error {
	opts := badger.DefaultOptions(s.path).WithLogger(nil)
	if s.path == "" {
		opts = opts.WithInMemory(true)
	}
	if len(s.encryptionKey) > 0 {
		opts = opts.WithEncryptionKey(s.encryptionKey).WithIndexCacheSize(16 << 20)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("open badger: %w", err)
	}
	s.db = db
	return nil
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Check reports whether the database is usable. Used by the health endpoint.
func (s *BadgerStore) Check(ctx context.Context) error {
	if s.db == nil || s.db.IsClosed() {
		return errors.New("database is closed")
	}
	return nil
}

func docKey(collection, id string) []byte {
	return []byte(collection + "#" + id)
}

// Get returns the document with the given id, or ErrNotFound.
func (s *BadgerStore) Get(ctx context.Context, collection, id string) (Document, error) {
	defer observe("get", time.Now())

	var doc Document
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(collection, id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		metrics.StoreErrors.WithLabelValues("get", "badger").Inc()
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}

	doc["id"] = id
	return doc, nil
}

// Set overwrites the document with the given id, creating it if absent.
func (s *BadgerStore) Set(ctx context.Context, collection, id string, doc Document) error {
	defer observe("set", time.Now())

	data, err := marshalDoc(resolveFields(doc, nil, time.Now().UTC()))
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(docKey(collection, id), data)
	})
	if err != nil {
		metrics.StoreErrors.WithLabelValues("set", "badger").Inc()
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update merges fields into an existing document inside one transaction,
// resolving ServerTimestamp and ArrayUnion sentinels against the current
// document state. Returns ErrNotFound if the document does not exist.
func (s *BadgerStore) Update(ctx context.Context, collection, id string, fields Document) error {
	defer observe("update", time.Now())

	key := docKey(collection, id)
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		var existing Document
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &existing)
		}); err != nil {
			return err
		}

		for k, v := range resolveFields(fields, existing, time.Now().UTC()) {
			existing[k] = v
		}

		data, err := marshalDoc(existing)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		metrics.StoreErrors.WithLabelValues("update", "badger").Inc()
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

// Add inserts a document under a generated id and returns that id.
func (s *BadgerStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	defer observe("add", time.Now())

	id := uuid.NewString()
	data, err := marshalDoc(resolveFields(doc, nil, time.Now().UTC()))
	if err != nil {
		return "", err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(docKey(collection, id), data)
	})
	if err != nil {
		metrics.StoreErrors.WithLabelValues("add", "badger").Inc()
		return "", fmt.Errorf("add %s: %w", collection, err)
	}
	return id, nil
}

// Delete removes a document. Deleting an absent document is not an error.
func (s *BadgerStore) Delete(ctx context.Context, collection, id string) error {
	defer observe("delete", time.Now())

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(docKey(collection, id))
	})
	if err != nil {
		metrics.StoreErrors.WithLabelValues("delete", "badger").Inc()
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// OrderedScan returns all documents in a collection sorted ascending by the
// named field. The sort is stable, so documents with equal or incomparable
// field values keep their key order.
func (s *BadgerStore) OrderedScan(ctx context.Context, collection, field string) ([]Document, error) {
	defer observe("scan", time.Now())

	prefix := []byte(collection + "#")
	var docs []Document

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := string(item.Key()[len(prefix):])
			var doc Document
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			}); err != nil {
				return err
			}
			doc["id"] = id
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		metrics.StoreErrors.WithLabelValues("scan", "badger").Inc()
		return nil, fmt.Errorf("scan %s: %w", collection, err)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return compareFieldValues(docs[i][field], docs[j][field]) < 0
	})
	return docs, nil
}

// marshalDoc encodes a document for storage, dropping the reserved "id" key
// injected on reads.
func marshalDoc(doc Document) ([]byte, error) {
	if _, ok := doc["id"]; ok {
		clone := make(Document, len(doc))
		for k, v := range doc {
			if k != "id" {
				clone[k] = v
			}
		}
		doc = clone
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

func observe(op string, start time.Time) {
	metrics.StoreQueryDuration.WithLabelValues(op, "badger").Observe(time.Since(start).Seconds())
}
