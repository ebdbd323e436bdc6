package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sakif/shop-ledger/internal/apperror"
	"github.com/sakif/shop-ledger/internal/model"
)

// Collections is the typed view over a KV: it owns the JSON encoding
// of each collection and validates records at the storage boundary.
//
// WHY VALIDATE HERE?
// The payloads come from a medium we don't fully control (an operator
// can point DB_PATH at any file). Rather than let a malformed record
// propagate as weird behaviour deep in the aggregation code, the
// adapter rejects structurally broken payloads and invariant-violating
// records right at the edge, and migrates the one thing that is safely
// migratable (an out-of-range discount is clamped, a missing discount
// decodes as 0).
type Collections struct {
	kv KV
}

func NewCollections(kv KV) *Collections {
	return &Collections{kv: kv}
}

// load decodes one collection payload into dst ([]T). Absent keys
// decode as an empty collection.
func (c *Collections) load(ctx context.Context, key string, dst any) error {
	payload, err := c.kv.Get(ctx, key)
	if err != nil {
		return apperror.StorageUnavailable(fmt.Errorf("reading %s: %w", key, err))
	}
	if payload == nil {
		return nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return apperror.StorageUnavailable(fmt.Errorf("decoding %s: %w", key, err))
	}
	return nil
}

func (c *Collections) save(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encoding %s: %w", key, err)
	}
	if err := c.kv.Set(ctx, key, payload); err != nil {
		return apperror.StorageUnavailable(fmt.Errorf("writing %s: %w", key, err))
	}
	return nil
}

// Users returns the user collection (empty if never written).
func (c *Collections) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.load(ctx, KeyUsers, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == 0 || u.Username == "" {
			return nil, apperror.StorageUnavailable(fmt.Errorf("user record %d is malformed", u.ID))
		}
	}
	return users, nil
}

func (c *Collections) SaveUsers(ctx context.Context, users []model.User) error {
	return c.save(ctx, KeyUsers, users)
}

// Products returns the product collection. Discounts are migrated into
// [0, 100]; negative stock or price means the payload was tampered with
// and the whole read is rejected.
func (c *Collections) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.load(ctx, KeyProducts, &products); err != nil {
		return nil, err
	}
	for i := range products {
		p := &products[i]
		if p.ID == 0 || p.Stock < 0 || p.Price < 0 {
			return nil, apperror.StorageUnavailable(fmt.Errorf("product record %d is malformed", p.ID))
		}
		p.Discount = model.ClampDiscount(p.Discount)
	}
	return products, nil
}

func (c *Collections) SaveProducts(ctx context.Context, products []model.Product) error {
	return c.save(ctx, KeyProducts, products)
}

// Sales returns the sales ledger in stored (insertion) order.
func (c *Collections) Sales(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	if err := c.load(ctx, KeySales, &sales); err != nil {
		return nil, err
	}
	for _, s := range sales {
		if s.ID == 0 || s.Quantity <= 0 {
			return nil, apperror.StorageUnavailable(fmt.Errorf("sale record %d is malformed", s.ID))
		}
	}
	return sales, nil
}

func (c *Collections) SaveSales(ctx context.Context, sales []model.Sale) error {
	return c.save(ctx, KeySales, sales)
}

// SaveProductsAndSales writes both collections as one atomic unit.
// Recording a sale decrements stock AND appends to the ledger; neither
// write may land without the other.
func (c *Collections) SaveProductsAndSales(ctx context.Context, products []model.Product, sales []model.Sale) error {
	productPayload, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("store: encoding %s: %w", KeyProducts, err)
	}
	salePayload, err := json.Marshal(sales)
	if err != nil {
		return fmt.Errorf("store: encoding %s: %w", KeySales, err)
	}
	err = c.kv.SetMany(ctx, map[string][]byte{
		KeyProducts: productPayload,
		KeySales:    salePayload,
	})
	if err != nil {
		return apperror.StorageUnavailable(fmt.Errorf("writing %s+%s: %w", KeyProducts, KeySales, err))
	}
	return nil
}

// Sessions returns the persisted login sessions of this scope.
func (c *Collections) Sessions(ctx context.Context) ([]model.Session, error) {
	var sessions []model.Session
	if err := c.load(ctx, KeySessions, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Collections) SaveSessions(ctx context.Context, sessions []model.Session) error {
	return c.save(ctx, KeySessions, sessions)
}

// Theme returns the saved UI theme preference, defaulting to "light".
func (c *Collections) Theme(ctx context.Context) (string, error) {
	payload, err := c.kv.Get(ctx, KeyTheme)
	if err != nil {
		return "", apperror.StorageUnavailable(fmt.Errorf("reading %s: %w", KeyTheme, err))
	}
	if len(payload) == 0 {
		return "light", nil
	}
	return string(payload), nil
}

func (c *Collections) SaveTheme(ctx context.Context, theme string) error {
	if err := c.kv.Set(ctx, KeyTheme, []byte(theme)); err != nil {
		return apperror.StorageUnavailable(fmt.Errorf("writing %s: %w", KeyTheme, err))
	}
	return nil
}

// ClearAll wipes every key in this scope.
func (c *Collections) ClearAll(ctx context.Context) error {
	if err := c.kv.Clear(ctx); err != nil {
		return apperror.StorageUnavailable(fmt.Errorf("clearing store: %w", err))
	}
	return nil
}
