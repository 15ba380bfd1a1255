package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"catalog-service/models"
)

const (
	productsStoreName = "products"
	productsKey       = "products"
	priceField        = "price"
)

// ProductStore keeps the catalog in a JSON file shaped
// {"products": [{"id": 1, ...}, ...]}. Other top-level fields survive writes.
type ProductStore struct {
	file *jsonFile
}

func NewProductStore(path string, logger *zap.Logger) *ProductStore {
	return &ProductStore{file: newJSONFile(productsStoreName, path, logger)}
}

// productData is one locked snapshot of the file.
type productData struct {
	top      map[string]any
	products []models.Document
}

func (s *ProductStore) load() (*productData, error) {
	var raw any
	found, err := s.file.read(&raw)
	if err != nil {
		return nil, err
	}
	if !found {
		return &productData{top: map[string]any{}, products: []models.Document{}}, nil
	}

	top, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected an object, got %T", ErrCorrupt, s.file.path, raw)
	}
	products, err := decodeCollection(top[productsKey], true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.file.path, err)
	}
	return &productData{top: top, products: products}, nil
}

func (s *ProductStore) save(data *productData) error {
	data.top[productsKey] = data.products
	return s.file.write(data.top)
}

// List returns every product in stored order. A missing file is an empty
// catalog.
func (s *ProductStore) List(ctx context.Context) ([]models.Document, error) {
	var products []models.Document
	err := s.file.withLock(ctx, "list", func(ctx context.Context) error {
		data, err := s.load()
		if err != nil {
			return err
		}
		products = data.products
		return nil
	})
	return products, err
}

// Create stores product under the next free id and returns the stored copy.
func (s *ProductStore) Create(ctx context.Context, product models.Document) (models.Document, error) {
	var created models.Document
	err := s.file.withLock(ctx, "create", func(ctx context.Context) error {
		data, err := s.load()
		if err != nil {
			return err
		}

		created = product.WithID(nextID(data.products))
		data.products = append(data.products, created)
		return s.save(data)
	})
	return created, err
}

// UpdatePrice sets the price of product id. When hasPrice is false the
// price field is removed.
func (s *ProductStore) UpdatePrice(ctx context.Context, id int64, price any, hasPrice bool) (models.Document, error) {
	var updated models.Document
	err := s.file.withLock(ctx, "update_price", func(ctx context.Context) error {
		data, err := s.load()
		if err != nil {
			return err
		}

		i := indexOf(data.products, id)
		if i < 0 {
			return fmt.Errorf("product %d: %w", id, ErrProductNotFound)
		}
		if hasPrice {
			data.products[i][priceField] = price
		} else {
			delete(data.products[i], priceField)
		}
		updated = data.products[i]
		return s.save(data)
	})
	return updated, err
}

// Delete removes product id. The remaining products keep their ids.
func (s *ProductStore) Delete(ctx context.Context, id int64) (models.Document, error) {
	var deleted models.Document
	err := s.file.withLock(ctx, "delete", func(ctx context.Context) error {
		data, err := s.load()
		if err != nil {
			return err
		}

		i := indexOf(data.products, id)
		if i < 0 {
			return fmt.Errorf("product %d: %w", id, ErrProductNotFound)
		}
		deleted = data.products[i]
		data.products = append(data.products[:i], data.products[i+1:]...)
		return s.save(data)
	})
	return deleted, err
}
