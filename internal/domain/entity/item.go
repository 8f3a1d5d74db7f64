package entity

import (
	"crypto/md5" //nolint:gosec // content addressing, not security
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UIDPrefix marks an item uid inside free-text queries ("uid:E3622EA7").
const UIDPrefix = "uid:"

const uidLength = 8

// Item is a sellable catalog entry. Immutable after construction.
type Item struct {
	UID            string `json:"uid"`
	Name           string `json:"name"`
	NormalizedName string `json:"-"`
	BasePrice      int64  `json:"base_price"`
}

// NewItem derives the item's uid from its name, so equal names always map to
// the same uid across runs and processes.
func NewItem(name string, basePrice int64) Item {
	sum := md5.Sum([]byte(name)) //nolint:gosec

	return Item{
		UID:            strings.ToUpper(hex.EncodeToString(sum[:]))[:uidLength],
		Name:           name,
		NormalizedName: NormalizeName(name),
		BasePrice:      basePrice,
	}
}

func (i Item) String() string {
	return fmt.Sprintf("%s <%s%s>", i.Name, UIDPrefix, i.UID)
}

// NormalizeName lowercases the name and strips diacritics, producing the
// comparison form used by the resolver ("Daga de Plata" -> "daga de plata",
// "Espada Vikinga Mágica" -> "espada vikinga magica").
func NormalizeName(name string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	normalized, _, err := transform.String(stripper, strings.ToLower(name))
	if err != nil {
		// Mn-removal cannot fail on valid UTF-8; fall back to the lowercased input.
		return strings.ToLower(name)
	}

	return normalized
}
