package catalog

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"mercado/internal/domain"
	"mercado/internal/domain/entity"
	"mercado/pkg/errcodes"
)

const (
	// fuzzyCutoff is the minimum similarity ratio for the fuzzy stage.
	fuzzyCutoff = 0.6

	// fuzzyScanCap bounds the fuzzy scan: once more than this many items have
	// been accepted the scan stops. The cap keeps first-found matches in
	// catalog order, it is not a best-N selection by score.
	fuzzyScanCap = 100
)

// Record is one sellable entry of the item feed.
type Record struct {
	Name  string
	Price int64
}

// Catalog is the immutable set of sellable items, indexed by uid. It is built
// once at startup and safe for unsynchronized concurrent reads afterwards.
type Catalog struct {
	items []entity.Item // feed order, drives the fuzzy scan
	byUID map[string]entity.Item
}

// New builds the catalog from feed records. Two records colliding on uid mean
// duplicate or malformed source data, so the whole load fails.
func New(records []Record) (*Catalog, error) {
	c := &Catalog{
		items: make([]entity.Item, 0, len(records)),
		byUID: make(map[string]entity.Item, len(records)),
	}

	for _, record := range records {
		item := entity.NewItem(record.Name, record.Price)

		if existing, ok := c.byUID[item.UID]; ok {
			return nil, domain.NewError(
				errcodes.CatalogIntegrity,
				fmt.Sprintf("item uid collision between [%s] and [%s]", existing, item),
			)
		}

		c.byUID[item.UID] = item
		c.items = append(c.items, item)
	}

	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns the catalog entries in feed order. The returned slice is a
// copy, callers may not mutate catalog state through it.
func (c *Catalog) Items() []entity.Item {
	items := make([]entity.Item, len(c.items))
	copy(items, c.items)

	return items
}

// IsUID reports whether the query should be treated as an item uid: either it
// carries the uid prefix or a direct uid lookup on the stripped value hits.
func (c *Catalog) IsUID(query string) bool {
	if strings.Contains(query, entity.UIDPrefix) {
		return true
	}

	_, ok := c.UIDSearch(query)

	return ok
}

// SanitizeUID strips the uid prefix when the query is a uid. The second return
// is false when the query is not a uid at all.
func (c *Catalog) SanitizeUID(query string) (string, bool) {
	if !c.IsUID(query) {
		return "", false
	}

	return strings.ReplaceAll(query, entity.UIDPrefix, ""), true
}

// UIDSearch returns the item matching the given uid, prefix allowed.
func (c *Catalog) UIDSearch(uid string) (entity.Item, bool) {
	item, ok := c.byUID[strings.ReplaceAll(uid, entity.UIDPrefix, "")]

	return item, ok
}

// Search resolves a free-text query into catalog items.
//
// Stages, each short-circuiting the next:
//  1. normalize the query (lowercase, strip diacritics);
//  2. exact: a single normalized-name equality hit is returned alone;
//  3. substring: all items whose normalized name contains the query;
//  4. fuzzy: items whose similarity ratio to the query is >= 0.6, scanned in
//     catalog order under the acceptance cap.
//
// The result is the substring/fuzzy union with set semantics: no duplicates,
// order not significant.
func (c *Catalog) Search(query string) []entity.Item {
	normalized := entity.NormalizeName(query)

	var exact []entity.Item

	for _, item := range c.items {
		if item.NormalizedName == normalized {
			exact = append(exact, item)
		}
	}

	if len(exact) == 1 {
		return exact
	}

	matched := make(map[string]entity.Item, len(c.items))

	for _, item := range c.items {
		if strings.Contains(item.NormalizedName, normalized) {
			matched[item.UID] = item
		}
	}

	var accepted int

	for _, item := range c.items {
		if accepted > fuzzyScanCap {
			break
		}

		if similarity(normalized, item.NormalizedName) >= fuzzyCutoff {
			matched[item.UID] = item
			accepted++
		}
	}

	result := make([]entity.Item, 0, len(matched))
	for _, item := range matched {
		result = append(result, item)
	}

	return result
}

// similarity is a longest-common-subsequence style ratio in [0, 1] between two
// strings, computed per rune.
func similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}
