package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sakif/shop-ledger/internal/apperror"
	"github.com/sakif/shop-ledger/internal/model"
	"github.com/sakif/shop-ledger/internal/report"
	"github.com/sakif/shop-ledger/internal/store"
)

// How many entries the dashboard shows of each list.
const (
	dashboardDays        = 7
	dashboardTopProducts = 5
	dashboardRecentSales = 5
	salesPageRecent      = 10
)

// ReportService assembles the dashboard, the period reports, and the
// CSV export from the raw collections. All computation is delegated to
// the pure functions in the report package; this service only loads
// the inputs and supplies the clock.
type ReportService struct {
	collections *store.Collections
	logger      *slog.Logger
}

func NewReportService(collections *store.Collections, logger *slog.Logger) *ReportService {
	return &ReportService{collections: collections, logger: logger}
}

// DaySales is one point of the dashboard's revenue chart.
type DaySales struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// Dashboard is everything the dashboard page renders.
type Dashboard struct {
	Stats       report.DashboardStats    `json:"stats"`
	SalesByDay  []DaySales               `json:"salesByDay"`
	TopProducts []report.ProductQuantity `json:"topProducts"`
	RecentSales []SaleRow                `json:"recentSales"`
	LowStock    []model.Product          `json:"lowStock"`
}

// Dashboard computes the full dashboard view.
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	products, sales, err := s.loadCollections(ctx)
	if err != nil {
		return nil, err
	}

	days := report.LastNDays(time.Now(), dashboardDays)
	totals := report.SalesByDay(sales, days)
	byDay := make([]DaySales, len(days))
	for i, day := range days {
		byDay[i] = DaySales{Date: day, Total: totals[i]}
	}

	return &Dashboard{
		Stats:       report.Stats(products, sales),
		SalesByDay:  byDay,
		TopProducts: report.TopProductsByQuantity(sales, products, dashboardTopProducts),
		RecentSales: joinSales(report.RecentSales(sales, dashboardRecentSales), products),
		LowStock:    report.LowStock(products),
	}, nil
}

// Report is a period-filtered view of the ledger.
type Report struct {
	Period  report.Period  `json:"period"`
	Summary report.Summary `json:"summary"`
	Rows    []SaleRow      `json:"rows"`
}

// Generate builds the report for a period ("today", "week", "month",
// "all"; empty means all). An unknown period is a validation error.
func (s *ReportService) Generate(ctx context.Context, periodStr string) (*Report, error) {
	period, ok := report.ParsePeriod(periodStr)
	if !ok {
		return nil, apperror.ValidationFailed("period",
			fmt.Sprintf("unknown report period %q", periodStr))
	}

	products, sales, err := s.loadCollections(ctx)
	if err != nil {
		return nil, err
	}

	filtered := report.FilterByPeriod(sales, period, time.Now())
	return &Report{
		Period:  period,
		Summary: report.Summarize(filtered, products),
		Rows:    joinSales(filtered, products),
	}, nil
}

// ExportCSV writes the period-filtered ledger as a CSV attachment and
// returns the artifact's file name.
func (s *ReportService) ExportCSV(ctx context.Context, periodStr string, w io.Writer) (string, error) {
	period, ok := report.ParsePeriod(periodStr)
	if !ok {
		return "", apperror.ValidationFailed("period",
			fmt.Sprintf("unknown report period %q", periodStr))
	}

	products, sales, err := s.loadCollections(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now()
	filtered := report.FilterByPeriod(sales, period, now)
	if err := report.WriteCSV(w, filtered, products); err != nil {
		return "", fmt.Errorf("service/report: %w", err)
	}

	name := report.CSVFileName(now)
	s.logger.Info("report exported",
		slog.String("file", name),
		slog.String("period", string(period)),
		slog.Int("rows", len(filtered)),
	)
	return name, nil
}

func (s *ReportService) loadCollections(ctx context.Context) ([]model.Product, []model.Sale, error) {
	products, err := s.collections.Products(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("service/report: loading products: %w", err)
	}
	sales, err := s.collections.Sales(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("service/report: loading sales: %w", err)
	}
	return products, sales, nil
}
