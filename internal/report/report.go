// Package report holds the derived-data computations: everything the
// dashboard, the reports page, and the CSV export show is produced here
// from the raw collections.
//
// EVERY FUNCTION IN THIS PACKAGE IS PURE:
// collections in, values out, no storage access, no clock access (the
// caller passes "now" where a date window is involved). That is what
// makes this the one layer with a thorough unit test suite — no mocks,
// no database, just inputs and expected outputs.
package report

import (
	"sort"
	"time"

	"github.com/sakif/shop-ledger/internal/model"
)

// LowStockThreshold is the fixed cutoff below which a product counts as
// low stock.
const LowStockThreshold = 10

// DashboardStats are the four headline numbers on the dashboard.
type DashboardStats struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	OrderCount    int     `json:"orderCount"`
	ProductCount  int     `json:"productCount"`
	LowStockCount int     `json:"lowStockCount"`
}

// Stats computes the dashboard headline numbers over all sales.
func Stats(products []model.Product, sales []model.Sale) DashboardStats {
	stats := DashboardStats{
		OrderCount:   len(sales),
		ProductCount: len(products),
	}
	for _, s := range sales {
		stats.TotalRevenue += s.TotalPrice
	}
	for _, p := range products {
		if p.Stock < LowStockThreshold {
			stats.LowStockCount++
		}
	}
	return stats
}

// SalesByDay returns one revenue total per day in the given window, in
// window order, 0 for days with no sales. Matching is exact string
// equality on the stored date — not calendar-aware — so a sale with a
// malformed date simply never matches a day.
func SalesByDay(sales []model.Sale, days []string) []float64 {
	byDay := make(map[string]float64, len(days))
	for _, s := range sales {
		byDay[s.Date] += s.TotalPrice
	}
	totals := make([]float64, len(days))
	for i, day := range days {
		totals[i] = byDay[day]
	}
	return totals
}

// LastNDays returns the n calendar dates ending today (inclusive),
// oldest first — the dashboard chart's x-axis.
func LastNDays(now time.Time, n int) []string {
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, now.AddDate(0, 0, -i).Format(model.DateLayout))
	}
	return days
}

// ProductQuantity is one entry of a top-products ranking.
type ProductQuantity struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// TopProductsByQuantity joins each sale to its product by ID, sums
// quantities per product name, and returns the top n.
//
// Sales whose product no longer exists are skipped — the ledger
// tolerates dangling references, the rankings just ignore them.
// Ties are broken by product name, ascending, so the ranking is
// deterministic for equal quantities.
func TopProductsByQuantity(sales []model.Sale, products []model.Product, n int) []ProductQuantity {
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	byName := make(map[string]int)
	for _, s := range sales {
		name, ok := names[s.ProductID]
		if !ok {
			continue
		}
		byName[name] += s.Quantity
	}

	ranked := make([]ProductQuantity, 0, len(byName))
	for name, qty := range byName {
		ranked = append(ranked, ProductQuantity{Name: name, Quantity: qty})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].Name < ranked[j].Name
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Period selects a date window over the sales ledger.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// ParsePeriod maps a query-string value to a Period. The empty string
// means "all", matching the reports page default.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodAll:
		return Period(s), true
	case "":
		return PeriodAll, true
	default:
		return "", false
	}
}

// FilterByPeriod returns the sales inside the window, preserving order.
//
// "today" is an exact string match on the current date. "week" and
// "month" compare calendar dates: a sale dated exactly 7 (or 30) days
// ago is inside the window. "all" returns the input unchanged. Sales
// with unparseable dates are excluded from week/month windows, since
// they cannot be placed on the calendar at all.
func FilterByPeriod(sales []model.Sale, period Period, now time.Time) []model.Sale {
	switch period {
	case PeriodToday:
		today := now.Format(model.DateLayout)
		filtered := make([]model.Sale, 0)
		for _, s := range sales {
			if s.Date == today {
				filtered = append(filtered, s)
			}
		}
		return filtered

	case PeriodWeek, PeriodMonth:
		days := 7
		if period == PeriodMonth {
			days = 30
		}
		// Truncate both sides to calendar dates so the boundary day is
		// inclusive regardless of the time of day "now" carries.
		cutoff, _ := time.Parse(model.DateLayout, now.AddDate(0, 0, -days).Format(model.DateLayout))
		filtered := make([]model.Sale, 0)
		for _, s := range sales {
			d, err := time.Parse(model.DateLayout, s.Date)
			if err != nil {
				continue
			}
			if !d.Before(cutoff) {
				filtered = append(filtered, s)
			}
		}
		return filtered

	default: // PeriodAll
		return sales
	}
}

// NoTopProduct is the sentinel summary value when no sale resolves to a
// product.
const NoTopProduct = "None"

// Summary are the three numbers at the top of the reports page.
type Summary struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalItems     int     `json:"totalItems"`
	TopProductName string  `json:"topProductName"`
}

// Summarize aggregates a (usually period-filtered) sale set.
func Summarize(sales []model.Sale, products []model.Product) Summary {
	summary := Summary{TopProductName: NoTopProduct}
	for _, s := range sales {
		summary.TotalRevenue += s.TotalPrice
		summary.TotalItems += s.Quantity
	}
	if top := TopProductsByQuantity(sales, products, 1); len(top) > 0 {
		summary.TopProductName = top[0].Name
	}
	return summary
}

// RecentSales returns the n most recent sales, newest first. ISO dates
// compare correctly as strings; the sort is stable so same-day sales
// keep their ledger order.
func RecentSales(sales []model.Sale, n int) []model.Sale {
	recent := make([]model.Sale, len(sales))
	copy(recent, sales)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date > recent[j].Date
	})
	if n < len(recent) {
		recent = recent[:n]
	}
	return recent
}

// LowStock returns the products below the threshold, in catalog order.
func LowStock(products []model.Product) []model.Product {
	low := make([]model.Product, 0)
	for _, p := range products {
		if p.Stock < LowStockThreshold {
			low = append(low, p)
		}
	}
	return low
}
