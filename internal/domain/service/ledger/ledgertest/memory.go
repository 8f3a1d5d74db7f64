// Package ledgertest provides an in-memory SaleRepository for tests that do
// not need a live database.
package ledgertest

import (
	"context"
	"sync"

	"mercado/internal/domain/entity"
)

// MemoryRepository keeps sales in a map guarded by a mutex. Set FailWith to
// make every operation return that error, simulating a persistence outage.
type MemoryRepository struct {
	mu       sync.Mutex
	sales    map[string]entity.Sale
	FailWith error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sales: make(map[string]entity.Sale),
	}
}

func (r *MemoryRepository) Create(_ context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	r.sales[sale.SaleUID] = *sale

	return nil
}

func (r *MemoryRepository) GetBySaleUID(_ context.Context, saleUID string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return nil, r.FailWith
	}

	sale, ok := r.sales[saleUID]
	if !ok {
		return nil, nil
	}

	return &sale, nil
}

func (r *MemoryRepository) GetAll(_ context.Context) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return nil, r.FailWith
	}

	result := make([]entity.Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		result = append(result, sale)
	}

	return result, nil
}

func (r *MemoryRepository) GetByItemUIDs(_ context.Context, itemUIDs []string) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return nil, r.FailWith
	}

	wanted := make(map[string]struct{}, len(itemUIDs))
	for _, uid := range itemUIDs {
		wanted[uid] = struct{}{}
	}

	var result []entity.Sale
	for _, sale := range r.sales {
		if _, ok := wanted[sale.ItemUID]; ok {
			result = append(result, sale)
		}
	}

	return result, nil
}

func (r *MemoryRepository) RemoveBySaleUID(_ context.Context, saleUID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return 0, r.FailWith
	}

	if _, ok := r.sales[saleUID]; !ok {
		return 0, nil
	}

	delete(r.sales, saleUID)

	return 1, nil
}

func (r *MemoryRepository) RemoveStale(_ context.Context, before int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return 0, r.FailWith
	}

	var removed int64
	for uid, sale := range r.sales {
		if sale.ToTimestamp < before {
			delete(r.sales, uid)
			removed++
		}
	}

	return removed, nil
}

// Len reports the number of stored sales.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sales)
}
