package market

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mercado/internal/domain"
	"mercado/internal/domain/entity"
	"mercado/internal/domain/service/catalog"
	"mercado/internal/domain/service/ledger"
	"mercado/pkg/contextx"
	"mercado/pkg/errcodes"
	"mercado/pkg/lox"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	searchCacheTTL     = 5 * time.Minute
	searchCacheCleanup = 10 * time.Minute
)

//nolint:gochecknoglobals
var (
	salesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mercado_sales_created_total",
		Help: "Sales accepted and published on the market.",
	})
	salesBought = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mercado_sales_bought_total",
		Help: "Sales fulfilled by a buyer.",
	})
)

// AmbiguousMatchError is returned when a query that must resolve to exactly
// one item matched several. Candidates carry the disambiguation listing.
type AmbiguousMatchError struct {
	Query      string
	Candidates []entity.Item
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("query [%s] matched %d items", e.Query, len(e.Candidates))
}

// SellArgs are the already-parsed arguments of a sell request. Positivity of
// quantity and price is enforced here, at the dispatcher boundary; the ledger
// below trusts it.
type SellArgs struct {
	Query            string `validate:"required"`
	Quantity         int64  `validate:"gt=0"`
	Price            int64  `validate:"gt=0"`
	Seller           string `validate:"required"`
	SellerExternalID int64  `validate:"required"`
}

// Listing pairs a sale with its resolved catalog item for presentation.
type Listing struct {
	Sale entity.Sale
	Item entity.Item
}

// Market is the narrow API the command dispatcher calls into. It resolves
// queries through the catalog and routes mutations through the ledger.
type Market struct {
	catalog     *catalog.Catalog
	ledger      *ledger.Ledger
	searchCache *cache.Cache
	validate    *validator.Validate
}

func New(cat *catalog.Catalog, led *ledger.Ledger) *Market {
	return &Market{
		catalog:     cat,
		ledger:      led,
		searchCache: cache.New(searchCacheTTL, searchCacheCleanup),
		validate:    validator.New(),
	}
}

// Sell resolves the item query and publishes a new sale. A query matching
// several items yields an AmbiguousMatchError carrying the candidates.
func (m *Market) Sell(ctx context.Context, args SellArgs) (*entity.Sale, entity.Item, error) {
	if err := m.validate.Struct(args); err != nil {
		return nil, entity.Item{}, domain.WrapError(err, errcodes.InvalidSaleArguments, "invalid sell arguments")
	}

	item, err := m.resolveOne(args.Query)
	if err != nil {
		return nil, entity.Item{}, err
	}

	sale, err := m.ledger.CreateSale(ctx, item, args.Quantity, args.Price, args.Seller, args.SellerExternalID)
	if err != nil {
		return nil, entity.Item{}, err
	}

	salesCreated.Inc()

	logger(ctx).Info("sale published",
		"sale_uid", sale.SaleUID,
		"item_uid", item.UID,
		"seller", sale.Seller,
	)

	return sale, item, nil
}

// Buy fulfills a sale: it removes the record and returns it together with the
// item so the dispatcher can notify both parties. A sale bought concurrently
// between lookup and removal counts as a miss.
func (m *Market) Buy(ctx context.Context, saleUID string) (*Listing, error) {
	sale, err := m.ledger.GetBySaleUID(ctx, saleUID)
	if err != nil {
		return nil, err
	}

	if sale == nil {
		return nil, domain.NewError(errcodes.SaleNotFound, fmt.Sprintf("no ongoing sale with uid [%s]", saleUID))
	}

	removed, err := m.ledger.RemoveBySaleUID(ctx, sale.SaleUID)
	if err != nil {
		return nil, err
	}

	if removed == 0 {
		return nil, domain.NewError(errcodes.SaleNotFound, fmt.Sprintf("sale [%s] was already fulfilled", saleUID))
	}

	salesBought.Inc()

	item, _ := m.catalog.UIDSearch(sale.ItemUID)

	logger(ctx).Info("sale fulfilled", "sale_uid", sale.SaleUID, "item_uid", sale.ItemUID)

	return &Listing{Sale: *sale, Item: item}, nil
}

// Get returns one ongoing sale without fulfilling it.
func (m *Market) Get(ctx context.Context, saleUID string) (*Listing, error) {
	sale, err := m.ledger.GetBySaleUID(ctx, saleUID)
	if err != nil {
		return nil, err
	}

	if sale == nil {
		return nil, domain.NewError(errcodes.SaleNotFound, fmt.Sprintf("no ongoing sale with uid [%s]", saleUID))
	}

	item, _ := m.catalog.UIDSearch(sale.ItemUID)

	return &Listing{Sale: *sale, Item: item}, nil
}

// ListAll returns every active sale paired with its catalog item.
func (m *Market) ListAll(ctx context.Context) ([]Listing, error) {
	sales, err := m.ledger.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return m.toListings(sales), nil
}

// List returns active sales matching the query, which may be an item uid
// (prefixed or bare) or a free-text item search.
func (m *Market) List(ctx context.Context, query string) ([]Listing, error) {
	var (
		sales []entity.Sale
		err   error
	)

	if uid, ok := m.catalog.SanitizeUID(query); ok {
		sales, err = m.ledger.GetByItemUID(ctx, uid)
	} else {
		itemUIDs := lox.Map(m.SearchItems(query), func(item entity.Item) string {
			return item.UID
		})

		sales, err = m.ledger.GetByItemUIDs(ctx, itemUIDs)
	}

	if err != nil {
		return nil, err
	}

	return m.toListings(sales), nil
}

// SearchItems runs the resolver's free-text search. Results are cached for a
// few minutes; the catalog is immutable, so the cache only skips rescans.
// Callers own the returned slice, the cached one is never handed out.
func (m *Market) SearchItems(query string) []entity.Item {
	key := entity.NormalizeName(query)

	if cached, ok := m.searchCache.Get(key); ok {
		return slices.Clone(cached.([]entity.Item))
	}

	items := m.catalog.Search(query)
	m.searchCache.Set(key, items, cache.DefaultExpiration)

	return slices.Clone(items)
}

// IsUID reports whether the query should be routed to uid lookup.
func (m *Market) IsUID(query string) bool {
	return m.catalog.IsUID(query)
}

// LookupUID resolves an item uid (prefixed or bare) to its catalog entry.
func (m *Market) LookupUID(uid string) (entity.Item, bool) {
	return m.catalog.UIDSearch(uid)
}

func (m *Market) resolveOne(query string) (entity.Item, error) {
	if m.catalog.IsUID(query) {
		item, ok := m.catalog.UIDSearch(query)
		if !ok {
			return entity.Item{}, domain.NewError(
				errcodes.ItemNotFound,
				fmt.Sprintf("no item with uid [%s]", strings.ReplaceAll(query, entity.UIDPrefix, "")),
			)
		}

		return item, nil
	}

	matches := m.SearchItems(query)

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return entity.Item{}, domain.NewError(errcodes.ItemNotFound, fmt.Sprintf("no item matches [%s]", query))
	default:
		return entity.Item{}, &AmbiguousMatchError{Query: query, Candidates: matches}
	}
}

func (m *Market) toListings(sales []entity.Sale) []Listing {
	return lox.Map(sales, func(sale entity.Sale) Listing {
		item, _ := m.catalog.UIDSearch(sale.ItemUID)

		return Listing{Sale: sale, Item: item}
	})
}
