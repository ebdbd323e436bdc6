package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/sakif/shop-ledger/internal/apperror"
	"github.com/sakif/shop-ledger/internal/model"
	"github.com/sakif/shop-ledger/internal/store"
)

// AdminService handles the PIN-guarded destructive operations: the
// bulk clears behind the confirmation dialog. The PIN is a shop-level
// secret (CLEAR_PIN), separate from user credentials, because clearing
// data is a different kind of dangerous than being logged in.
type AdminService struct {
	durable   *store.Collections
	ephemeral *store.Collections
	pin       string
	logger    *slog.Logger
}

func NewAdminService(durable, ephemeral *store.Collections, pin string, logger *slog.Logger) *AdminService {
	return &AdminService{durable: durable, ephemeral: ephemeral, pin: pin, logger: logger}
}

func (s *AdminService) checkPIN(pin string) error {
	if subtle.ConstantTimeCompare([]byte(pin), []byte(s.pin)) != 1 {
		return apperror.Forbidden("incorrect PIN")
	}
	return nil
}

// ClearProducts empties the product catalog. The sales ledger is kept;
// its rows become dangling references that readers skip.
func (s *AdminService) ClearProducts(ctx context.Context, pin string) error {
	if err := s.checkPIN(pin); err != nil {
		return err
	}
	if err := s.durable.SaveProducts(ctx, []model.Product{}); err != nil {
		return fmt.Errorf("service/admin: clearing products: %w", err)
	}
	s.logger.Warn("all products cleared")
	return nil
}

// ClearSales empties the sales ledger.
func (s *AdminService) ClearSales(ctx context.Context, pin string) error {
	if err := s.checkPIN(pin); err != nil {
		return err
	}
	if err := s.durable.SaveSales(ctx, []model.Sale{}); err != nil {
		return fmt.Errorf("service/admin: clearing sales: %w", err)
	}
	s.logger.Warn("all sales cleared")
	return nil
}

// ClearAll wipes everything in both storage scopes: users, products,
// sales, sessions, and settings. Every session dies with it, so the
// caller is logged out too.
func (s *AdminService) ClearAll(ctx context.Context, pin string) error {
	if err := s.checkPIN(pin); err != nil {
		return err
	}
	if err := s.durable.ClearAll(ctx); err != nil {
		return fmt.Errorf("service/admin: clearing durable store: %w", err)
	}
	if err := s.ephemeral.ClearAll(ctx); err != nil {
		return fmt.Errorf("service/admin: clearing ephemeral store: %w", err)
	}
	s.logger.Warn("all data cleared")
	return nil
}
