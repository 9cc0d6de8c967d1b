package sales

import (
	"errors"
	"sync"
)

// ErrMalformedDate is returned when a date is not a valid YYYY-MM-DD calendar date.
var ErrMalformedDate = errors.New("malformed date")

// ErrDuplicateID is returned when trying to store a sale whose ID is already taken.
var ErrDuplicateID = errors.New("duplicate sale ID")

// ErrInvalidID is returned when trying to store a sale without a positive ID.
var ErrInvalidID = errors.New("invalid sale ID")

// Storage supplies the record collection the ledger is queried over.
type Storage interface {
	// All returns a copy of every stored record in insertion order.
	All() ([]SaleRecord, error)
	Add(record SaleRecord) error
	// Version changes whenever the collection changes.
	Version() uint64
	NextID() int
}

// LocalStorage provides an in-memory implementation for storing sales.
type LocalStorage struct {
	mu      sync.RWMutex
	records []SaleRecord
	ids     map[int]struct{}
	version uint64
}

// NewLocalStorage instantiates a LocalStorage seeded with records.
func NewLocalStorage(records ...SaleRecord) (*LocalStorage, error) {
	l := &LocalStorage{
		ids: map[int]struct{}{},
	}
	for _, r := range records {
		if err := l.Add(r); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add appends a record. Returns ErrInvalidID or ErrDuplicateID for bad IDs.
func (l *LocalStorage) Add(record SaleRecord) error {
	if record.ID <= 0 {
		return ErrInvalidID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.ids[record.ID]; ok {
		return ErrDuplicateID
	}
	l.ids[record.ID] = struct{}{}
	l.records = append(l.records, record)
	l.version++
	return nil
}

// All returns a snapshot of the stored records.
func (l *LocalStorage) All() ([]SaleRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]SaleRecord, len(l.records))
	copy(out, l.records)
	return out, nil
}

func (l *LocalStorage) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// NextID returns one past the highest stored ID.
func (l *LocalStorage) NextID() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	next := 1
	for id := range l.ids {
		if id >= next {
			next = id + 1
		}
	}
	return next
}
