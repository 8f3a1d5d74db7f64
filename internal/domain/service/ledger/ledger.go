package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mercado/internal/domain/entity"
)

// SaleRepository is the durable store behind the ledger. Single-record
// inserts and deletes are atomic; nothing stronger is assumed. Lookup misses
// are empty results, not errors.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetBySaleUID(ctx context.Context, saleUID string) (*entity.Sale, error)
	GetAll(ctx context.Context) ([]entity.Sale, error)
	GetByItemUIDs(ctx context.Context, itemUIDs []string) ([]entity.Sale, error)
	RemoveBySaleUID(ctx context.Context, saleUID string) (int64, error)
	RemoveStale(ctx context.Context, before int64) (int64, error)
}

// Ledger owns the collection of active sales: it is the only component with
// mutation rights over sale records. Quantity and price positivity is the
// caller's responsibility, the ledger does not re-validate.
type Ledger struct {
	repo SaleRepository
	now  func() time.Time
}

func New(repo SaleRepository) *Ledger {
	return &Ledger{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// CreateSale persists a new 7-day offer for the given item and returns it.
func (l *Ledger) CreateSale(
	ctx context.Context,
	item entity.Item,
	quantity, price int64,
	seller string,
	sellerExternalID int64,
) (*entity.Sale, error) {
	now := l.now()

	sale := &entity.Sale{
		SaleUID:          uuid.NewString(),
		ItemUID:          item.UID,
		Quantity:         quantity,
		Price:            price,
		Seller:           seller,
		SellerExternalID: sellerExternalID,
		FromTimestamp:    now.Unix(),
		ToTimestamp:      now.Add(entity.SaleDuration).Unix(),
	}

	if err := l.repo.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	return sale, nil
}

// GetBySaleUID returns the matching sale, or nil on a miss.
func (l *Ledger) GetBySaleUID(ctx context.Context, saleUID string) (*entity.Sale, error) {
	return l.repo.GetBySaleUID(ctx, saleUID)
}

func (l *Ledger) GetAll(ctx context.Context) ([]entity.Sale, error) {
	return l.repo.GetAll(ctx)
}

func (l *Ledger) GetByItemUID(ctx context.Context, itemUID string) ([]entity.Sale, error) {
	return l.repo.GetByItemUIDs(ctx, []string{itemUID})
}

func (l *Ledger) GetByItemUIDs(ctx context.Context, itemUIDs []string) ([]entity.Sale, error) {
	if len(itemUIDs) == 0 {
		return nil, nil
	}

	return l.repo.GetByItemUIDs(ctx, itemUIDs)
}

// RemoveBySaleUID deletes the matching sale and returns the removed count.
// Idempotent: a miss yields 0, never an error.
func (l *Ledger) RemoveBySaleUID(ctx context.Context, saleUID string) (int64, error) {
	return l.repo.RemoveBySaleUID(ctx, saleUID)
}

// RemoveStale deletes every sale whose offer window ended before now and
// returns the removed count. Safe to run concurrently with CreateSale: a sale
// created after now can never satisfy the staleness predicate.
func (l *Ledger) RemoveStale(ctx context.Context, now time.Time) (int64, error) {
	return l.repo.RemoveStale(ctx, now.Unix())
}
