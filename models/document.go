package models

import (
	"encoding/json"
	"math"
)

// Document is a client-supplied JSON object stored as a product or an order.
// The only field the service owns is "id".
type Document map[string]any

const IDField = "id"

// ID returns the integer id of the document. Any numeric representation the
// decoders produce is accepted as long as the value is integral.
func (d Document) ID() (int64, bool) {
	switch v := d[IDField].(type) {
	case json.Number:
		if id, err := v.Int64(); err == nil {
			return id, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatID(f)
	case float64:
		return floatID(v)
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	default:
		return 0, false
	}
}

func floatID(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

// WithID returns a shallow copy of d with its id set.
func (d Document) WithID(id int64) Document {
	out := make(Document, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	out[IDField] = id
	return out
}
