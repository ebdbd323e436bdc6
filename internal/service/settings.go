package service

import (
	"context"
	"fmt"

	"github.com/sakif/shop-ledger/internal/apperror"
	"github.com/sakif/shop-ledger/internal/store"
)

// SettingsService owns the odd non-collection preference keys.
// Currently that is just the UI theme.
type SettingsService struct {
	settings *store.Collections
}

func NewSettingsService(settings *store.Collections) *SettingsService {
	return &SettingsService{settings: settings}
}

// Theme returns the saved theme, "light" if none was ever saved.
func (s *SettingsService) Theme(ctx context.Context) (string, error) {
	theme, err := s.settings.Theme(ctx)
	if err != nil {
		return "", fmt.Errorf("service/settings: %w", err)
	}
	return theme, nil
}

// SetTheme persists the theme preference.
func (s *SettingsService) SetTheme(ctx context.Context, theme string) error {
	if theme != "light" && theme != "dark" {
		return apperror.ValidationFailed("theme", `theme must be "light" or "dark"`)
	}
	if err := s.settings.SaveTheme(ctx, theme); err != nil {
		return fmt.Errorf("service/settings: %w", err)
	}
	return nil
}
