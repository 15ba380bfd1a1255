package store

import (
	"fmt"
	"sort"
	"strconv"

	"catalog-service/models"
)

// toDocuments converts a decoded JSON array into documents. Elements that
// are not objects (including null) are dropped.
func toDocuments(items []any) []models.Document {
	docs := make([]models.Document, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			docs = append(docs, models.Document(obj))
		}
	}
	return docs
}

// keyedToDocuments converts the legacy {"1": {...}, "2": {...}} product
// layout into a sequence ordered by numeric key. An element without an
// integer id takes its key as id.
func keyedToDocuments(keyed map[string]any) []models.Document {
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, errI := strconv.ParseInt(keys[i], 10, 64)
		nj, errJ := strconv.ParseInt(keys[j], 10, 64)
		switch {
		case errI == nil && errJ == nil:
			return ni < nj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})

	docs := make([]models.Document, 0, len(keys))
	for _, k := range keys {
		obj, ok := keyed[k].(map[string]any)
		if !ok {
			continue
		}
		doc := models.Document(obj)
		if _, hasID := doc.ID(); !hasID {
			if n, err := strconv.ParseInt(k, 10, 64); err == nil {
				doc = doc.WithID(n)
			}
		}
		docs = append(docs, doc)
	}
	return docs
}

// decodeCollection accepts either a JSON array or, when allowKeyed is set,
// the legacy keyed object. nil means an absent collection.
func decodeCollection(raw any, allowKeyed bool) ([]models.Document, error) {
	var docs []models.Document
	switch v := raw.(type) {
	case nil:
		docs = []models.Document{}
	case []any:
		docs = toDocuments(v)
	case map[string]any:
		if !allowKeyed {
			return nil, fmt.Errorf("%w: expected an array, got an object", ErrCorrupt)
		}
		docs = keyedToDocuments(v)
	default:
		return nil, fmt.Errorf("%w: expected an array, got %T", ErrCorrupt, raw)
	}
	assignMissingIDs(docs)
	return docs, nil
}

// assignMissingIDs gives every document lacking an integer id the next free
// one, in sequence order.
func assignMissingIDs(docs []models.Document) {
	next := nextID(docs)
	for i, doc := range docs {
		if _, ok := doc.ID(); !ok {
			docs[i] = doc.WithID(next)
			next++
		}
	}
}

// nextID is one past the largest id in docs, or 1 for an empty collection.
func nextID(docs []models.Document) int64 {
	var max int64
	for _, doc := range docs {
		if id, ok := doc.ID(); ok && id > max {
			max = id
		}
	}
	return max + 1
}

func indexOf(docs []models.Document, id int64) int {
	for i, doc := range docs {
		if docID, ok := doc.ID(); ok && docID == id {
			return i
		}
	}
	return -1
}
