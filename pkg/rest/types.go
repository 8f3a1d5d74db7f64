package rest

type Item struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	BasePrice int64  `json:"basePrice"`
}

type Sale struct {
	SaleUID       string `json:"saleUid"`
	ItemUID       string `json:"itemUid"`
	ItemName      string `json:"itemName"`
	Quantity      int64  `json:"quantity"`
	Price         int64  `json:"price"`
	Seller        string `json:"seller"`
	FromTimestamp int64  `json:"fromTimestamp"`
	ToTimestamp   int64  `json:"toTimestamp"`
}

type SaleList struct {
	Sales []Sale `json:"sales"`
}

type ItemList struct {
	Items []Item `json:"items"`
}

// Error is the error payload of the read API.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// ErrorCode is a machine-readable error code.
type ErrorCode string
