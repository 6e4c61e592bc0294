// Package memory holds process-local decision logs. Records are kept in
// insertion order of completed appends and lost on restart. Each log retains
// at most its retention limit of records; indexes keep counting past evicted
// entries.
package memory

import (
	"context"
	"sync"

	"github.com/watermelon/decision-engine/internal/domain/model"
)

// DefaultRetention is the number of records each log keeps unless
// overridden with WithRetention.
const DefaultRetention = 10_000

type options struct {
	retention int
}

// Option configures a memory log.
type Option func(*options)

// WithRetention caps the records kept per log. Zero or less keeps everything.
func WithRetention(n int) Option {
	return func(o *options) {
		o.retention = n
	}
}

func newOptions(opts []Option) options {
	o := options{retention: DefaultRetention}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type appendLog[T any] struct {
	mu        sync.RWMutex
	entries   []T
	next      int
	retention int
}

func (l *appendLog[T]) append(v func(index int) T) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	index := l.next
	l.next++
	l.entries = append(l.entries, v(index))
	if l.retention > 0 && len(l.entries) > l.retention {
		var zero T
		l.entries[0] = zero
		l.entries = l.entries[1:]
	}
	return index
}

// tail returns a copy of the last limit entries, oldest first.
func (l *appendLog[T]) tail(limit int) []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	start := 0
	if limit > 0 && len(l.entries) > limit {
		start = len(l.entries) - limit
	}
	out := make([]T, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}

// SupplierLog implements port.SupplierLog in memory.
type SupplierLog struct {
	log appendLog[*model.SupplierRecord]
}

// NewSupplierLog creates an empty SupplierLog.
func NewSupplierLog(opts ...Option) *SupplierLog {
	o := newOptions(opts)
	return &SupplierLog{log: appendLog[*model.SupplierRecord]{retention: o.retention}}
}

// Append stores record at the next index and returns that index.
func (s *SupplierLog) Append(_ context.Context, record *model.SupplierRecord) (int, error) {
	return s.log.append(func(index int) *model.SupplierRecord {
		return record.WithIndex(index)
	}), nil
}

// List returns the last limit records, oldest first.
func (s *SupplierLog) List(_ context.Context, limit int) ([]*model.SupplierRecord, error) {
	return s.log.tail(limit), nil
}

// BuyerLog implements port.BuyerLog in memory.
type BuyerLog struct {
	log appendLog[*model.BuyerRecord]
}

// NewBuyerLog creates an empty BuyerLog.
func NewBuyerLog(opts ...Option) *BuyerLog {
	o := newOptions(opts)
	return &BuyerLog{log: appendLog[*model.BuyerRecord]{retention: o.retention}}
}

func (b *BuyerLog) Append(_ context.Context, record *model.BuyerRecord) (int, error) {
	return b.log.append(func(int) *model.BuyerRecord { return record }), nil
}

func (b *BuyerLog) List(_ context.Context, limit int) ([]*model.BuyerRecord, error) {
	return b.log.tail(limit), nil
}

// ForecastLog implements port.ForecastLog in memory.
type ForecastLog struct {
	log appendLog[*model.ProductForecast]
}

// NewForecastLog creates an empty ForecastLog.
func NewForecastLog(opts ...Option) *ForecastLog {
	o := newOptions(opts)
	return &ForecastLog{log: appendLog[*model.ProductForecast]{retention: o.retention}}
}

func (f *ForecastLog) Append(_ context.Context, forecast *model.ProductForecast) (int, error) {
	return f.log.append(func(int) *model.ProductForecast { return forecast }), nil
}

func (f *ForecastLog) List(_ context.Context, limit int) ([]*model.ProductForecast, error) {
	return f.log.tail(limit), nil
}
