package feed

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"mercado/internal/domain/service/catalog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// record is one raw entry of the item feed. Price is numeric for sellable
// goods and an arbitrary sentinel (the feed uses "-") for everything else.
type record struct {
	Name  string `json:"name"`
	Price any    `json:"price"`
}

// LoadFile reads the item feed from disk and returns the sellable records,
// silently skipping entries with a non-numeric price.
func LoadFile(path string) ([]catalog.Record, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer fh.Close()

	return Load(fh)
}

// Load decodes the feed from r. See LoadFile.
func Load(r io.Reader) ([]catalog.Record, error) {
	var raw []record
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	records := make([]catalog.Record, 0, len(raw))

	for _, entry := range raw {
		price, ok := numericPrice(entry.Price)
		if !ok {
			continue // not sellable
		}

		records = append(records, catalog.Record{Name: entry.Name, Price: price})
	}

	return records, nil
}

func numericPrice(value any) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
