package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDocumentID(t *testing.T) {
	tests := []struct {
		name   string
		doc    Document
		wantID int64
		wantOK bool
	}{
		{name: "json number", doc: Document{"id": json.Number("7")}, wantID: 7, wantOK: true},
		{name: "integral float number", doc: Document{"id": json.Number("3.0")}, wantID: 3, wantOK: true},
		{name: "fractional number", doc: Document{"id": json.Number("3.5")}, wantOK: false},
		{name: "float64", doc: Document{"id": float64(12)}, wantID: 12, wantOK: true},
		{name: "int64", doc: Document{"id": int64(4)}, wantID: 4, wantOK: true},
		{name: "string", doc: Document{"id": "4"}, wantOK: false},
		{name: "missing", doc: Document{"name": "x"}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := tt.doc.ID()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestDocumentWithIDDoesNotMutateOriginal(t *testing.T) {
	original := Document{"name": "lamp", "id": "client-supplied"}

	withID := original.WithID(9)

	assert.Equal(t, "client-supplied", original["id"])
	assert.Equal(t, int64(9), withID["id"])
	assert.Equal(t, "lamp", withID["name"])
}

func TestNewEvent(t *testing.T) {
	event := NewEvent(EventOrderCreated, 3, Document{"item": "book"})

	_, err := uuid.Parse(event.ID)
	assert.NoError(t, err)
	assert.Equal(t, EventOrderCreated, event.Type)
	assert.Equal(t, int64(3), event.ResourceID)
	assert.False(t, event.OccurredAt.IsZero())
	assert.Equal(t, "book", event.Data["item"])
}
