package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventProductCreated      = "product.created"
	EventProductPriceUpdated = "product.price_updated"
	EventProductDeleted      = "product.deleted"
	EventOrderCreated        = "order.created"
	EventOrderDeleted        = "order.deleted"
)

// Event describes a committed change to one of the stores.
type Event struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"type"`
	ResourceID int64     `json:"resource_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       Document  `json:"data,omitempty"`
}

func NewEvent(eventType string, resourceID int64, data Document) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		ResourceID: resourceID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}
