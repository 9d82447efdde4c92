package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/sitesettings/internal/domain/model"
	"github.com/ericfisherdev/sitesettings/internal/domain/port/driven"
)

// OverrideService manages persisted single-field overrides and keeps the
// provider's snapshot in step with the store.
type OverrideService struct {
	store     driven.OverrideStore
	provider  *SettingsProvider
	sanitizer *Sanitizer
	logger    *slog.Logger

	mu sync.Mutex // serializes Set and Delete
}

// NewOverrideService creates an OverrideService. provider must have been
// created with the same store.
func NewOverrideService(
	store driven.OverrideStore,
	provider *SettingsProvider,
	sanitizer *Sanitizer,
	logger *slog.Logger,
) *OverrideService {
	return &OverrideService{
		store:     store,
		provider:  provider,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// List returns all stored overrides ordered by key.
func (s *OverrideService) List(ctx context.Context) ([]model.SettingOverride, error) {
	return s.store.List(ctx)
}

// Set sanitizes value, checks that the resulting settings would validate,
// stores it, and reloads the provider. Unknown keys return an error wrapping
// model.ErrUnknownOverrideKey; values that would make the settings invalid
// return an error wrapping model.ErrInvalidSettings and are not stored. If the
// reload fails the previous override for key is restored.
func (s *OverrideService) Set(ctx context.Context, rawKey, value string) (model.SettingOverride, error) {
	key, err := model.ParseOverrideKey(rawKey)
	if err != nil {
		return model.SettingOverride{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clean := s.sanitizer.Text(value)
	if _, err := s.provider.Preview(ctx, key, &clean); err != nil {
		return model.SettingOverride{}, err
	}

	prev, hadPrev, err := s.store.Get(ctx, key)
	if err != nil {
		return model.SettingOverride{}, err
	}

	if err := s.store.Set(ctx, key, clean); err != nil {
		return model.SettingOverride{}, err
	}
	s.logger.Info("override stored", "key", key)

	if err := s.provider.Reload(ctx); err != nil {
		s.restore(ctx, key, prev, hadPrev)
		return model.SettingOverride{}, fmt.Errorf("reload after override %q: %w", key, err)
	}

	return model.SettingOverride{Key: key, Value: clean, UpdatedAt: time.Now().UTC()}, nil
}

// Delete removes the override for rawKey and reloads the provider. Removing
// a key with no stored override is not an error. A removal that would leave
// the settings invalid is rejected with model.ErrInvalidSettings.
func (s *OverrideService) Delete(ctx context.Context, rawKey string) error {
	key, err := model.ParseOverrideKey(rawKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.provider.Preview(ctx, key, nil); err != nil {
		return err
	}

	prev, hadPrev, err := s.store.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return err
	}
	s.logger.Info("override removed", "key", key)

	if err := s.provider.Reload(ctx); err != nil {
		s.restore(ctx, key, prev, hadPrev)
		return fmt.Errorf("reload after removing override %q: %w", key, err)
	}
	return nil
}

// restore puts the store back to its state before a change whose reload
// failed, so the stored overrides always match a snapshot that was served.
func (s *OverrideService) restore(ctx context.Context, key model.OverrideKey, prev string, hadPrev bool) {
	var err error
	if hadPrev {
		err = s.store.Set(ctx, key, prev)
	} else {
		err = s.store.Delete(ctx, key)
	}
	if err != nil {
		s.logger.Error("failed to roll back override", "key", key, "error", err)
		return
	}
	s.logger.Warn("override change rolled back after failed reload", "key", key)
}
