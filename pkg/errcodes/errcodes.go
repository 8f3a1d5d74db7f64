package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Marketplace module.
	ItemNotFound         failure.ErrorCode = "ItemNotFound"         // no catalog entry for uid or query
	SaleNotFound         failure.ErrorCode = "SaleNotFound"         // sale uid misses the ledger
	AmbiguousItem        failure.ErrorCode = "AmbiguousItem"        // query matched more than one item
	CatalogIntegrity     failure.ErrorCode = "CatalogIntegrity"     // duplicate item uid in the feed
	InvalidSaleArguments failure.ErrorCode = "InvalidSaleArguments" // non-positive quantity or price
)
