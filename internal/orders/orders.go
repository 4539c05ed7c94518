// Package orders keeps the records written at checkout in a small diskv
// key/value store, separate from the item database.
package orders

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"shopsmart/internal/shopping"
)

const ordersKey = "orders"

type Store struct {
	d *diskv.Diskv
}

// Open returns a Store rooted at basePath. The directory is created lazily on
// the first write.
func Open(basePath string) (*Store, error) {
	if basePath == "" {
		return nil, errors.New("orders path is empty")
	}
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      filepath.Join(basePath, ".tmp"),
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 64 * 1024,
	})}, nil
}

// SaveOrders overwrites the stored orders. An empty slice is written as an
// explicit empty list.
func (s *Store) SaveOrders(_ context.Context, records []shopping.OrderRecord) error {
	if records == nil {
		records = []shopping.OrderRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.d.Write(ordersKey, data)
}

func (s *Store) LoadOrders(_ context.Context) ([]shopping.OrderRecord, error) {
	if !s.d.Has(ordersKey) {
		return []shopping.OrderRecord{}, nil
	}
	data, err := s.d.Read(ordersKey)
	if err != nil {
		return nil, err
	}
	var records []shopping.OrderRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []shopping.OrderRecord{}
	}
	return records, nil
}
