package market_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"mercado/internal/domain"
	"mercado/internal/domain/service/catalog"
	"mercado/internal/domain/service/ledger"
	"mercado/internal/domain/service/ledger/ledgertest"
	"mercado/internal/domain/service/market"
	"mercado/pkg/errcodes"
)

func newTestMarket(t *testing.T) *market.Market {
	t.Helper()

	cat, err := catalog.New([]catalog.Record{
		{Name: "Daga", Price: 100},
		{Name: "Daga de Plata", Price: 500},
		{Name: "Espada Larga", Price: 800},
		{Name: "Escudo", Price: 300},
	})
	require.NoError(t, err)

	return market.New(cat, ledger.New(ledgertest.NewMemoryRepository()))
}

func sellArgs(query string) market.SellArgs {
	return market.SellArgs{
		Query:            query,
		Quantity:         2,
		Price:            150,
		Seller:           "ana",
		SellerExternalID: 42,
	}
}

func TestSellByName(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	m := newTestMarket(t)

	sale, item, err := m.Sell(ctx, sellArgs("espada"))
	rq.NoError(err)
	rq.Equal("Espada Larga", item.Name)
	rq.Equal(item.UID, sale.ItemUID)
	rq.Equal(int64(2), sale.Quantity)
	rq.Equal(int64(150), sale.Price)

	listings, err := m.ListAll(ctx)
	rq.NoError(err)
	rq.Len(listings, 1)
	rq.Equal(sale.SaleUID, listings[0].Sale.SaleUID)
	rq.Equal("Espada Larga", listings[0].Item.Name)
}

func TestSellByUID(t *testing.T) {
	rq := require.New(t)

	m := newTestMarket(t)

	// "Daga de Plata" hashes to E3622EA7.
	_, item, err := m.Sell(context.Background(), sellArgs("uid:E3622EA7"))
	rq.NoError(err)
	rq.Equal("Daga de Plata", item.Name)
}

func TestSellUnknownUID(t *testing.T) {
	rq := require.New(t)

	m := newTestMarket(t)

	_, _, err := m.Sell(context.Background(), sellArgs("uid:00000000"))
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.ItemNotFound))
}

func TestSellUnknownItem(t *testing.T) {
	rq := require.New(t)

	m := newTestMarket(t)

	_, _, err := m.Sell(context.Background(), sellArgs("grimorio"))
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.ItemNotFound))
}

func TestSellAmbiguousQuery(t *testing.T) {
	rq := require.New(t)

	m := newTestMarket(t)

	// "dag" substring-matches both dagger variants.
	_, _, err := m.Sell(context.Background(), sellArgs("dag"))
	rq.Error(err)

	var ambiguous *market.AmbiguousMatchError
	rq.True(errors.As(err, &ambiguous))
	rq.Equal("dag", ambiguous.Query)
	rq.Len(ambiguous.Candidates, 2)
}

func TestSellRejectsNonPositiveArguments(t *testing.T) {
	cases := map[string]func(*market.SellArgs){
		"zero quantity":     func(a *market.SellArgs) { a.Quantity = 0 },
		"negative quantity": func(a *market.SellArgs) { a.Quantity = -1 },
		"zero price":        func(a *market.SellArgs) { a.Price = 0 },
		"negative price":    func(a *market.SellArgs) { a.Price = -5 },
		"empty query":       func(a *market.SellArgs) { a.Query = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			rq := require.New(t)

			m := newTestMarket(t)

			args := sellArgs("espada")
			mutate(&args)

			_, _, err := m.Sell(context.Background(), args)
			rq.Error(err)
			rq.True(domain.HasCode(err, errcodes.InvalidSaleArguments))
		})
	}
}

func TestBuyRemovesSale(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	m := newTestMarket(t)

	sale, _, err := m.Sell(ctx, sellArgs("espada"))
	rq.NoError(err)

	listing, err := m.Buy(ctx, sale.SaleUID)
	rq.NoError(err)
	rq.Equal(sale.SaleUID, listing.Sale.SaleUID)
	rq.Equal("Espada Larga", listing.Item.Name)
	rq.Equal("ana", listing.Sale.Seller)

	// The sale is gone, a second buy misses.
	_, err = m.Buy(ctx, sale.SaleUID)
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.SaleNotFound))
}

func TestBuyUnknownSale(t *testing.T) {
	rq := require.New(t)

	m := newTestMarket(t)

	_, err := m.Buy(context.Background(), "no-such-sale")
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.SaleNotFound))
}

func TestListByQueryAndUID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	m := newTestMarket(t)

	daga, _, err := m.Sell(ctx, sellArgs("uid:A7C1C5D1")) // Daga
	rq.NoError(err)
	plata, _, err := m.Sell(ctx, sellArgs("uid:E3622EA7")) // Daga de Plata
	rq.NoError(err)
	_, _, err = m.Sell(ctx, sellArgs("escudo"))
	rq.NoError(err)

	listings, err := m.List(ctx, "dag")
	rq.NoError(err)
	rq.Len(listings, 2)

	saleUIDs := []string{listings[0].Sale.SaleUID, listings[1].Sale.SaleUID}
	rq.ElementsMatch([]string{daga.SaleUID, plata.SaleUID}, saleUIDs)

	listings, err = m.List(ctx, "uid:E3622EA7")
	rq.NoError(err)
	rq.Len(listings, 1)
	rq.Equal(plata.SaleUID, listings[0].Sale.SaleUID)
	rq.Equal("Daga de Plata", listings[0].Item.Name)

	listings, err = m.List(ctx, "grimorio")
	rq.NoError(err)
	rq.Empty(listings)
}

func TestGetReadsWithoutFulfilling(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	m := newTestMarket(t)

	sale, _, err := m.Sell(ctx, sellArgs("escudo"))
	rq.NoError(err)

	listing, err := m.Get(ctx, sale.SaleUID)
	rq.NoError(err)
	rq.Equal(sale.SaleUID, listing.Sale.SaleUID)

	// Get does not consume the offer.
	listing, err = m.Get(ctx, sale.SaleUID)
	rq.NoError(err)
	rq.Equal("Escudo", listing.Item.Name)
}

func TestSearchItemsUsesCache(t *testing.T) {
	rq := require.New(t)

	m := newTestMarket(t)

	first := m.SearchItems("escudo")
	rq.Len(first, 1)

	// Differently-cased query normalizes to the same cache key and returns
	// the identical cached slice.
	second := m.SearchItems("ESCUDO")
	rq.Len(second, 1)
	rq.Equal(first[0].UID, second[0].UID)
}

func TestSearchItemsResultIsCallerOwned(t *testing.T) {
	rq := require.New(t)

	m := newTestMarket(t)

	first := m.SearchItems("escudo")
	rq.Len(first, 1)

	// Mutating the returned slice must not leak into later lookups.
	first[0].Name = "mutated"

	second := m.SearchItems("escudo")
	rq.Len(second, 1)
	rq.Equal("Escudo", second[0].Name)
}

func TestLookupUID(t *testing.T) {
	rq := require.New(t)

	m := newTestMarket(t)

	rq.True(m.IsUID("uid:E3622EA7"))
	rq.False(m.IsUID("escudo"))

	item, ok := m.LookupUID("uid:E3622EA7")
	rq.True(ok)
	rq.Equal("Daga de Plata", item.Name)
}
