package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/shop-ledger/internal/apperror"
	"github.com/sakif/shop-ledger/internal/model"
	"github.com/sakif/shop-ledger/internal/store"
)

// ProductInput carries the editable fields of a product. Add and
// Update share it: an edit is a full-field replace, not a patch.
type ProductInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	Discount float64 `json:"discount"`
}

// ProductService manages the product catalog.
type ProductService struct {
	products *store.Collections
	logger   *slog.Logger
}

func NewProductService(products *store.Collections, logger *slog.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

func (in *ProductInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperror.ValidationFailed("name", "product name is required")
	}
	if in.Price < 0 {
		return apperror.ValidationFailed("price", "price must not be negative")
	}
	if in.Stock < 0 {
		return apperror.ValidationFailed("stock", "stock must not be negative")
	}
	// The entry form clamps rather than rejects out-of-range discounts.
	in.Discount = model.ClampDiscount(in.Discount)
	return nil
}

// Add validates and appends a new product.
func (s *ProductService) Add(ctx context.Context, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	products, err := s.products.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/product: loading products: %w", err)
	}

	product := model.Product{
		ID:       nextID(lastProductID(products)),
		Name:     in.Name,
		Price:    in.Price,
		Category: in.Category,
		Stock:    in.Stock,
		Discount: in.Discount,
	}
	if err := s.products.SaveProducts(ctx, append(products, product)); err != nil {
		return nil, fmt.Errorf("service/product: saving products: %w", err)
	}

	s.logger.Info("product added",
		slog.Int64("productID", product.ID),
		slog.String("name", product.Name),
	)
	return &product, nil
}

// List returns the catalog in stored order.
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/product: loading products: %w", err)
	}
	return products, nil
}

// Update replaces every editable field of the product with the input.
func (s *ProductService) Update(ctx context.Context, id int64, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	products, err := s.products.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/product: loading products: %w", err)
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		products[i].Name = in.Name
		products[i].Price = in.Price
		products[i].Category = in.Category
		products[i].Stock = in.Stock
		products[i].Discount = in.Discount

		if err := s.products.SaveProducts(ctx, products); err != nil {
			return nil, fmt.Errorf("service/product: saving products: %w", err)
		}
		s.logger.Info("product updated", slog.Int64("productID", id))
		updated := products[i]
		return &updated, nil
	}
	return nil, apperror.NotFound("product", id)
}

// Delete removes a product by ID. Past sales referencing it stay in
// the ledger and are simply skipped wherever a product name is needed.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	products, err := s.products.Products(ctx)
	if err != nil {
		return fmt.Errorf("service/product: loading products: %w", err)
	}

	kept := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return apperror.NotFound("product", id)
	}

	if err := s.products.SaveProducts(ctx, kept); err != nil {
		return fmt.Errorf("service/product: saving products: %w", err)
	}
	s.logger.Info("product deleted", slog.Int64("productID", id))
	return nil
}

func lastProductID(products []model.Product) int64 {
	var last int64
	for _, p := range products {
		if p.ID > last {
			last = p.ID
		}
	}
	return last
}

// nextID returns a fresh millisecond ID, nudged past lastID so that
// records created within the same millisecond still get unique,
// increasing IDs.
func nextID(lastID int64) int64 {
	id := model.NewID()
	if id <= lastID {
		id = lastID + 1
	}
	return id
}
