package dao

import (
	"context"
	"sync"
)

type MemoryRecordDAO struct {
	mu      sync.RWMutex
	records map[string]string
}

func NewMemoryRecordDAO() *MemoryRecordDAO {
	return &MemoryRecordDAO{
		records: make(map[string]string),
	}
}

func (d *MemoryRecordDAO) Get(_ context.Context, key string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	value, ok := d.records[key]
	if !ok {
		return "", ErrRecordNotFound
	}

	return value, nil
}

func (d *MemoryRecordDAO) Set(_ context.Context, key, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.records[key] = value

	return nil
}

func (d *MemoryRecordDAO) Remove(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.records, key)

	return nil
}

// Keys returns the stored keys, in no particular order.
func (d *MemoryRecordDAO) Keys() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	keys := make([]string, 0, len(d.records))
	for k := range d.records {
		keys = append(keys, k)
	}

	return keys
}
