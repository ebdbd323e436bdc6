package model

import "time"

// DateLayout is the calendar-date form used everywhere a sale date
// appears: storage, filtering, and the CSV export. It matches
// time.DateOnly but is named here so the intent is visible at call sites.
const DateLayout = "2006-01-02"

// Sale is one line of the sales ledger.
//
// SALES ARE HISTORY, NOT A LIVE JOIN:
// UnitPrice and TotalPrice are snapshots of the product's effective
// (discounted) price at the moment the sale was recorded. Editing the
// product later must not change past sales, so the numbers live on the
// sale itself.
//
// ProductID is a soft reference. If the product is later deleted the
// sale stays in the ledger; readers that need the product name simply
// skip sales whose product no longer resolves.
type Sale struct {
	ID         int64   `json:"id"`
	ProductID  int64   `json:"productId"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
	Date       string  `json:"date"` // ISO calendar date, see DateLayout
}

// NewID returns a fresh record ID: the current time in milliseconds.
// Callers that may create several records within the same millisecond
// (tests, bulk imports) are responsible for nudging collisions forward.
func NewID() int64 {
	return time.Now().UnixMilli()
}
