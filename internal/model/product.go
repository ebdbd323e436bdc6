package model

// Product is a catalog entry. Stock never goes negative — the sale
// recording service checks sufficiency before decrementing, and the
// persistence layer rejects stored records that violate it.
//
// Discount is a percentage in [0, 100]; 0 means no discount. Stored
// records with an out-of-range discount are migrated by clamping
// rather than rejected, since the original data entry form did the
// same clamping on input.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	Discount float64 `json:"discount"`
}

// EffectiveUnitPrice is the listed price reduced by the discount
// percentage. Sale records freeze this value at sale time.
func (p Product) EffectiveUnitPrice() float64 {
	return p.Price * (1 - p.Discount/100)
}

// ClampDiscount forces the discount into [0, 100].
func ClampDiscount(d float64) float64 {
	if d < 0 {
		return 0
	}
	if d > 100 {
		return 100
	}
	return d
}
