package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/shop-ledger/internal/apperror"
	"github.com/sakif/shop-ledger/internal/model"
	"github.com/sakif/shop-ledger/internal/report"
	"github.com/sakif/shop-ledger/internal/store"
)

// SaleService records sales against stock and reads the ledger.
type SaleService struct {
	collections *store.Collections
	logger      *slog.Logger
}

func NewSaleService(collections *store.Collections, logger *slog.Logger) *SaleService {
	return &SaleService{collections: collections, logger: logger}
}

// Record applies a sale: the one mutation in the system with an
// invariant to protect (stock never goes negative).
//
// ORDER OF OPERATIONS:
//  1. resolve the product — ProductNotFound if missing
//  2. check stock sufficiency — InsufficientStock leaves everything
//     untouched
//  3. freeze the effective (discounted) unit price into the sale
//  4. decrement stock and append the sale
//  5. persist BOTH collections in one atomic write
//
// Steps 3–4 happen on in-memory copies; nothing observable changes
// until step 5 commits, so a failed write leaves no partial update.
func (s *SaleService) Record(ctx context.Context, productID int64, quantity int, date string) (*model.Sale, error) {
	if productID == 0 {
		return nil, apperror.ValidationFailed("productId", "please select a product")
	}
	if quantity <= 0 {
		return nil, apperror.ValidationFailed("quantity", "quantity must be greater than zero")
	}
	if date == "" {
		// The sales form defaults to today.
		date = time.Now().Format(model.DateLayout)
	} else if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, apperror.ValidationFailed("date", "date must be in YYYY-MM-DD form")
	}

	products, err := s.collections.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/sale: loading products: %w", err)
	}

	idx := -1
	for i := range products {
		if products[i].ID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperror.NotFound("product", productID)
	}
	product := &products[idx]

	if product.Stock < quantity {
		return nil, apperror.InsufficientStock(product.Name, product.Stock, quantity)
	}

	sales, err := s.collections.Sales(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/sale: loading sales: %w", err)
	}

	unitPrice := product.EffectiveUnitPrice()
	sale := model.Sale{
		ID:         nextID(lastSaleID(sales)),
		ProductID:  product.ID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice * float64(quantity),
		Date:       date,
	}

	product.Stock -= quantity

	// Single logical transaction: stock decrement and ledger append
	// land together or not at all.
	if err := s.collections.SaveProductsAndSales(ctx, products, append(sales, sale)); err != nil {
		return nil, fmt.Errorf("service/sale: committing sale: %w", err)
	}

	s.logger.Info("sale recorded",
		slog.Int64("saleID", sale.ID),
		slog.Int64("productID", product.ID),
		slog.Int("quantity", quantity),
		slog.Float64("totalPrice", sale.TotalPrice),
	)
	return &sale, nil
}

// SaleRow is a ledger entry joined to its product name, the shape
// every listing and report table renders.
type SaleRow struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// Recent returns the n most recent sales joined to product names,
// newest first. Sales whose product was deleted are skipped.
func (s *SaleService) Recent(ctx context.Context, n int) ([]SaleRow, error) {
	sales, err := s.collections.Sales(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/sale: loading sales: %w", err)
	}
	products, err := s.collections.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/sale: loading products: %w", err)
	}
	return joinSales(report.RecentSales(sales, n), products), nil
}

// joinSales resolves product names, dropping dangling references.
func joinSales(sales []model.Sale, products []model.Product) []SaleRow {
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	rows := make([]SaleRow, 0, len(sales))
	for _, sale := range sales {
		name, ok := names[sale.ProductID]
		if !ok {
			continue
		}
		rows = append(rows, SaleRow{
			ID:          sale.ID,
			Date:        sale.Date,
			ProductName: name,
			Quantity:    sale.Quantity,
			UnitPrice:   sale.UnitPrice,
			TotalPrice:  sale.TotalPrice,
		})
	}
	return rows
}

func lastSaleID(sales []model.Sale) int64 {
	var last int64
	for _, s := range sales {
		if s.ID > last {
			last = s.ID
		}
	}
	return last
}
