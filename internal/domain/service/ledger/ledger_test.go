package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mercado/internal/domain/entity"
	"mercado/internal/domain/service/ledger"
	"mercado/internal/domain/service/ledger/ledgertest"
)

func TestCreateSaleWindow(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	led := ledger.New(ledgertest.NewMemoryRepository()).
		WithClock(func() time.Time { return now })

	item := entity.NewItem("Daga de Plata", 500)

	sale, err := led.CreateSale(ctx, item, 3, 250, "ana", 42)
	rq.NoError(err)
	rq.NotEmpty(sale.SaleUID)
	rq.Equal(item.UID, sale.ItemUID)
	rq.Equal(int64(3), sale.Quantity)
	rq.Equal(int64(250), sale.Price)
	rq.Equal("ana", sale.Seller)
	rq.Equal(int64(42), sale.SellerExternalID)
	rq.Equal(now.Unix(), sale.FromTimestamp)
	rq.Equal(now.Add(entity.SaleDuration).Unix(), sale.ToTimestamp)

	stored, err := led.GetBySaleUID(ctx, sale.SaleUID)
	rq.NoError(err)
	rq.NotNil(stored)
	rq.Equal(*sale, *stored)
}

func TestGetBySaleUIDMissIsNil(t *testing.T) {
	rq := require.New(t)

	led := ledger.New(ledgertest.NewMemoryRepository())

	sale, err := led.GetBySaleUID(context.Background(), "no-such-sale")
	rq.NoError(err)
	rq.Nil(sale)
}

func TestRemoveBySaleUIDIsIdempotent(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	led := ledger.New(ledgertest.NewMemoryRepository())

	sale, err := led.CreateSale(ctx, entity.NewItem("Escudo", 100), 1, 50, "ana", 42)
	rq.NoError(err)

	removed, err := led.RemoveBySaleUID(ctx, sale.SaleUID)
	rq.NoError(err)
	rq.Equal(int64(1), removed)

	removed, err = led.RemoveBySaleUID(ctx, sale.SaleUID)
	rq.NoError(err)
	rq.Zero(removed)
}

func TestGetByItemUIDs(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	led := ledger.New(ledgertest.NewMemoryRepository())

	daga := entity.NewItem("Daga", 100)
	escudo := entity.NewItem("Escudo", 100)
	pocion := entity.NewItem("Poción Roja", 100)

	_, err := led.CreateSale(ctx, daga, 1, 10, "ana", 1)
	rq.NoError(err)
	_, err = led.CreateSale(ctx, daga, 2, 20, "bruno", 2)
	rq.NoError(err)
	_, err = led.CreateSale(ctx, pocion, 5, 30, "carla", 3)
	rq.NoError(err)

	sales, err := led.GetByItemUIDs(ctx, []string{daga.UID, escudo.UID})
	rq.NoError(err)
	rq.Len(sales, 2)
	for _, sale := range sales {
		rq.Equal(daga.UID, sale.ItemUID)
	}

	// Empty filter asks about nothing, so nothing comes back.
	sales, err = led.GetByItemUIDs(ctx, nil)
	rq.NoError(err)
	rq.Empty(sales)

	single, err := led.GetByItemUID(ctx, pocion.UID)
	rq.NoError(err)
	rq.Len(single, 1)
	rq.Equal("carla", single[0].Seller)
}

func TestRemoveStale(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := ledgertest.NewMemoryRepository()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	led := ledger.New(repo).WithClock(func() time.Time { return created })

	_, err := led.CreateSale(ctx, entity.NewItem("Daga", 100), 1, 10, "ana", 1)
	rq.NoError(err)

	// Still inside the window: the offer ends exactly at created + duration.
	removed, err := led.RemoveStale(ctx, created.Add(entity.SaleDuration))
	rq.NoError(err)
	rq.Zero(removed)

	removed, err = led.RemoveStale(ctx, created.Add(entity.SaleDuration+time.Second))
	rq.NoError(err)
	rq.Equal(int64(1), removed)

	// Second sweep over the same horizon finds nothing.
	removed, err = led.RemoveStale(ctx, created.Add(entity.SaleDuration+time.Second))
	rq.NoError(err)
	rq.Zero(removed)
	rq.Zero(repo.Len())
}
