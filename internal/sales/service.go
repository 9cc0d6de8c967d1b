package sales

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"sales_ledger/internal/metrics"
)

// DefaultCacheSize bounds the number of memoized views a Service keeps.
const DefaultCacheSize = 128

// Service answers ledger queries over a Storage backend.
type Service struct {
	storage Storage
	logger  *zap.Logger

	group     singleflight.Group
	mu        sync.Mutex
	cache     map[string]View
	cacheSize int

	writeMu sync.Mutex
}

// NewService creates a new Service. A cacheSize <= 0 disables memoization.
func NewService(storage Storage, logger *zap.Logger, cacheSize int) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		storage:   storage,
		logger:    logger,
		cache:     make(map[string]View),
		cacheSize: cacheSize,
	}
}

// Query computes the view for req. Results are memoized on the storage
// version plus the request, so repeated identical requests are not
// recomputed until the collection changes.
func (s *Service) Query(req QueryRequest) (View, error) {
	version := s.storage.Version()
	key := cacheKey(version, req)

	if v, ok := s.lookup(key); ok {
		metrics.QueryTotal.WithLabelValues("hit").Inc()
		return cloneView(v), nil
	}

	res, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.compute(req)
	})
	if err != nil {
		return View{}, err
	}
	if shared {
		metrics.QueryTotal.WithLabelValues("shared").Inc()
	} else {
		metrics.QueryTotal.WithLabelValues("miss").Inc()
	}

	v := res.(View)
	if s.storage.Version() == version {
		s.store(key, v)
	}
	return cloneView(v), nil
}

func (s *Service) compute(req QueryRequest) (View, error) {
	start := time.Now()

	records, err := s.storage.All()
	if err != nil {
		s.logger.Error("failed to get sales from storage", zap.Error(err))
		return View{}, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	if bad := MalformedDates(records); len(bad) > 0 {
		metrics.MalformedRecords.Add(float64(len(bad)))
		for _, r := range bad {
			s.logger.Warn("sale record has malformed date",
				zap.Int("sale_id", r.ID),
				zap.String("date", string(r.Date)),
			)
		}
	}

	view := Query(records, req)

	metrics.QueryDuration.Observe(time.Since(start).Seconds())
	metrics.RowsShown.Observe(float64(view.FilteredCount))
	s.logger.Debug("sales query completed",
		zap.String("start", string(req.Window.Start)),
		zap.String("end", string(req.Window.End)),
		zap.String("sort_key", string(req.Sort.Key)),
		zap.String("sort_dir", string(req.Sort.Direction)),
		zap.Int("filtered", view.FilteredCount),
		zap.Int("total", view.TotalCount),
	)
	return view, nil
}

// AddSale records a new sale with the next free ID. The total is derived
// from quantity and unit price.
func (s *Service) AddSale(date, product string, quantity int, unitPrice decimal.Decimal) (SaleRecord, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	record, err := NewSaleRecord(s.storage.NextID(), date, product, quantity, unitPrice)
	if err != nil {
		return SaleRecord{}, err
	}
	if err := s.storage.Add(record); err != nil {
		s.logger.Error("failed to save sale", zap.Int("sale_id", record.ID), zap.Error(err))
		return SaleRecord{}, fmt.Errorf("failed to save sale: %w", err)
	}

	metrics.SalesAdded.Inc()
	s.logger.Info("sale added", zap.Int("sale_id", record.ID), zap.Any("sale", record))
	return record, nil
}

func (s *Service) lookup(key string) (View, bool) {
	if s.cacheSize <= 0 {
		return View{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache[key]
	return v, ok
}

func (s *Service) store(key string, v View) {
	if s.cacheSize <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cache) >= s.cacheSize {
		// Entries from older storage versions are never hit again; drop everything.
		clear(s.cache)
	}
	s.cache[key] = v
}

func cacheKey(version uint64, req QueryRequest) string {
	return fmt.Sprintf("%d|%s|%s|%s|%s", version, req.Window.Start, req.Window.End, req.Sort.Key, req.Sort.Direction)
}

func cloneView(v View) View {
	records := make([]SaleRecord, len(v.Records))
	copy(records, v.Records)
	v.Records = records
	return v
}
