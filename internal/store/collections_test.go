package store

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/shop-ledger/internal/apperror"
	"github.com/sakif/shop-ledger/internal/model"
	"github.com/sakif/shop-ledger/internal/store/memory"
)

func newTestKV(t *testing.T) (*memory.KV, *Collections) {
	t.Helper()
	kv := memory.New()
	return kv, NewCollections(kv)
}

func TestCollections_AbsentKeysDecodeEmpty(t *testing.T) {
	_, c := newTestKV(t)
	ctx := context.Background()

	users, err := c.Users(ctx)
	if err != nil || len(users) != 0 {
		t.Errorf("Users() = %v, %v; want empty, nil", users, err)
	}
	products, err := c.Products(ctx)
	if err != nil || len(products) != 0 {
		t.Errorf("Products() = %v, %v; want empty, nil", products, err)
	}
	sales, err := c.Sales(ctx)
	if err != nil || len(sales) != 0 {
		t.Errorf("Sales() = %v, %v; want empty, nil", sales, err)
	}
}

func TestCollections_RoundTrip(t *testing.T) {
	_, c := newTestKV(t)
	ctx := context.Background()

	in := []model.Product{{ID: 1, Name: "Widget", Price: 9.99, Category: "tools", Stock: 3, Discount: 10}}
	if err := c.SaveProducts(ctx, in); err != nil {
		t.Fatalf("SaveProducts() error = %v", err)
	}
	out, err := c.Products(ctx)
	if err != nil {
		t.Fatalf("Products() error = %v", err)
	}
	if len(out) != 1 || out[0] != in[0] {
		t.Errorf("Products() = %v, want %v", out, in)
	}
}

func TestCollections_MalformedPayloadIsStorageError(t *testing.T) {
	kv, c := newTestKV(t)
	ctx := context.Background()

	if err := kv.Set(ctx, KeyProducts, []byte(`{not json`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := c.Products(ctx); !errors.Is(err, apperror.ErrStorage) {
		t.Errorf("Products() error = %v, want ErrStorage", err)
	}
}

func TestCollections_RejectsTamperedRecords(t *testing.T) {
	kv, c := newTestKV(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		key     string
		payload string
		read    func() error
	}{
		{"negative stock", KeyProducts, `[{"id":1,"name":"A","price":1,"stock":-2}]`,
			func() error { _, err := c.Products(ctx); return err }},
		{"negative price", KeyProducts, `[{"id":1,"name":"A","price":-1,"stock":0}]`,
			func() error { _, err := c.Products(ctx); return err }},
		{"user without ID", KeyUsers, `[{"username":"x","email":"x@y.co"}]`,
			func() error { _, err := c.Users(ctx); return err }},
		{"sale with zero quantity", KeySales, `[{"id":1,"productId":1,"quantity":0,"date":"2026-08-31"}]`,
			func() error { _, err := c.Sales(ctx); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := kv.Set(ctx, tc.key, []byte(tc.payload)); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := tc.read(); !errors.Is(err, apperror.ErrStorage) {
				t.Errorf("error = %v, want ErrStorage", err)
			}
		})
	}
}

func TestCollections_MigratesOutOfRangeDiscount(t *testing.T) {
	kv, c := newTestKV(t)
	ctx := context.Background()

	// A payload written by an older build could carry discounts outside
	// [0, 100]; reading clamps instead of rejecting.
	payload := `[{"id":1,"name":"A","price":10,"stock":1,"discount":150},
	             {"id":2,"name":"B","price":10,"stock":1,"discount":-5}]`
	if err := kv.Set(ctx, KeyProducts, []byte(payload)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	products, err := c.Products(ctx)
	if err != nil {
		t.Fatalf("Products() error = %v", err)
	}
	if products[0].Discount != 100 || products[1].Discount != 0 {
		t.Errorf("discounts = %v, %v; want clamped to 100, 0", products[0].Discount, products[1].Discount)
	}
}

func TestSaveProductsAndSales_WritesBoth(t *testing.T) {
	_, c := newTestKV(t)
	ctx := context.Background()

	err := c.SaveProductsAndSales(ctx,
		[]model.Product{{ID: 1, Name: "A", Price: 1, Stock: 1}},
		[]model.Sale{{ID: 100, ProductID: 1, Quantity: 1, Date: "2026-08-31"}},
	)
	if err != nil {
		t.Fatalf("SaveProductsAndSales() error = %v", err)
	}

	products, _ := c.Products(ctx)
	sales, _ := c.Sales(ctx)
	if len(products) != 1 || len(sales) != 1 {
		t.Errorf("products=%d sales=%d, want 1/1", len(products), len(sales))
	}
}

func TestTheme_DefaultAndRoundTrip(t *testing.T) {
	_, c := newTestKV(t)
	ctx := context.Background()

	theme, err := c.Theme(ctx)
	if err != nil || theme != "light" {
		t.Errorf("Theme() = %q, %v; want light, nil", theme, err)
	}

	if err := c.SaveTheme(ctx, "dark"); err != nil {
		t.Fatalf("SaveTheme() error = %v", err)
	}
	theme, _ = c.Theme(ctx)
	if theme != "dark" {
		t.Errorf("Theme() = %q, want dark", theme)
	}
}

func TestClearAll_EmptiesEveryCollection(t *testing.T) {
	_, c := newTestKV(t)
	ctx := context.Background()

	if err := c.SaveUsers(ctx, []model.User{{ID: 1, Username: "x", Email: "x@y.co"}}); err != nil {
		t.Fatalf("SaveUsers() error = %v", err)
	}
	if err := c.SaveTheme(ctx, "dark"); err != nil {
		t.Fatalf("SaveTheme() error = %v", err)
	}

	if err := c.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	users, _ := c.Users(ctx)
	theme, _ := c.Theme(ctx)
	if len(users) != 0 || theme != "light" {
		t.Errorf("users=%d theme=%q after ClearAll, want 0/light", len(users), theme)
	}
}
