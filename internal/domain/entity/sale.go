package entity

import (
	"fmt"
	"time"
)

// SaleDuration is how long an offer stays on the market. Fixed, not configurable.
const SaleDuration = 7 * 24 * time.Hour

// Sale is an active offer in the ledger. Never updated in place: it is either
// bought (removed by the dispatcher) or expires (removed by the cleanup job).
type Sale struct {
	SaleUID          string `json:"sale_uid"`
	ItemUID          string `json:"item_uid"`
	Quantity         int64  `json:"quantity"`
	Price            int64  `json:"price"` // total for the whole batch
	Seller           string `json:"seller"`
	SellerExternalID int64  `json:"seller_external_id"`
	FromTimestamp    int64  `json:"from_timestamp"` // epoch seconds
	ToTimestamp      int64  `json:"to_timestamp"`   // epoch seconds
}

func (s Sale) FromDate() time.Time {
	return time.Unix(s.FromTimestamp, 0)
}

func (s Sale) ToDate() time.Time {
	return time.Unix(s.ToTimestamp, 0)
}

// Stale reports whether the offer window has passed relative to now.
func (s Sale) Stale(now time.Time) bool {
	return s.ToTimestamp < now.Unix()
}

// Summary renders the announcement line for the offer.
func (s Sale) Summary(itemName string) string {
	return fmt.Sprintf(
		"User [%s] offers [%d] units of item [%s] for [%d] coins, from [%s] until [%s]. Sale's UID: %s",
		s.Seller,
		s.Quantity,
		itemName,
		s.Price,
		s.FromDate().Format(time.DateOnly),
		s.ToDate().Format(time.DateOnly),
		s.SaleUID,
	)
}
