package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"catalog-service/models"
)

const ordersStoreName = "orders"

// OrderStore keeps orders in a JSON file holding a single array.
type OrderStore struct {
	file *jsonFile
}

func NewOrderStore(path string, logger *zap.Logger) *OrderStore {
	return &OrderStore{file: newJSONFile(ordersStoreName, path, logger)}
}

func (s *OrderStore) load() ([]models.Document, error) {
	var raw any
	found, err := s.file.read(&raw)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.Document{}, nil
	}

	orders, err := decodeCollection(raw, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.file.path, err)
	}
	return orders, nil
}

func (s *OrderStore) List(ctx context.Context) ([]models.Document, error) {
	var orders []models.Document
	err := s.file.withLock(ctx, "list", func(ctx context.Context) error {
		var err error
		orders, err = s.load()
		return err
	})
	return orders, err
}

func (s *OrderStore) Create(ctx context.Context, order models.Document) (models.Document, error) {
	var created models.Document
	err := s.file.withLock(ctx, "create", func(ctx context.Context) error {
		orders, err := s.load()
		if err != nil {
			return err
		}

		created = order.WithID(nextID(orders))
		return s.file.write(append(orders, created))
	})
	return created, err
}

// Delete removes the first order with the given id. The file is left
// untouched when no order matches.
func (s *OrderStore) Delete(ctx context.Context, id int64) (models.Document, error) {
	var deleted models.Document
	err := s.file.withLock(ctx, "delete", func(ctx context.Context) error {
		orders, err := s.load()
		if err != nil {
			return err
		}

		i := indexOf(orders, id)
		if i < 0 {
			return fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
		}
		deleted = orders[i]
		return s.file.write(append(orders[:i], orders[i+1:]...))
	})
	return deleted, err
}
