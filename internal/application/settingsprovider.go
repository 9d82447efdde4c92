package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ericfisherdev/sitesettings/internal/domain/model"
	"github.com/ericfisherdev/sitesettings/internal/domain/port/driven"
)

// SettingsProvider holds the current site settings snapshot and rebuilds it
// on demand. Each snapshot is built completely before it is swapped in and is
// never modified afterwards, so readers never see a half-applied reload.
type SettingsProvider struct {
	source    driven.SettingsSource
	overrides driven.OverrideStore
	sanitizer *Sanitizer
	logger    *slog.Logger

	reloadMu sync.Mutex // serializes Reload

	mu       sync.RWMutex
	current  model.SiteSettings
	loadedAt time.Time
}

// NewSettingsProvider creates a provider that starts out serving the built-in
// defaults. source may be nil to use only the defaults; overrides may be nil
// to disable persisted overrides. Call Reload to build the first real
// snapshot.
func NewSettingsProvider(
	source driven.SettingsSource,
	overrides driven.OverrideStore,
	sanitizer *Sanitizer,
	logger *slog.Logger,
) *SettingsProvider {
	return &SettingsProvider{
		source:    source,
		overrides: overrides,
		sanitizer: sanitizer,
		logger:    logger,
		current:   model.DefaultSiteSettings(),
	}
}

// Build composes a snapshot without installing it: source (or defaults),
// then stored overrides, then sanitizing, then validation.
func (p *SettingsProvider) Build(ctx context.Context) (model.SiteSettings, error) {
	return p.build(ctx, nil)
}

// Preview builds the snapshot that would result from storing value under key,
// or from removing the override for key when value is nil. It runs the same
// steps as Build, so a snapshot that previews cleanly also reloads cleanly.
func (p *SettingsProvider) Preview(ctx context.Context, key model.OverrideKey, value *string) (model.SiteSettings, error) {
	return p.build(ctx, &pendingOverride{key: key, value: value})
}

// pendingOverride is an override change that is not stored yet. A nil value
// removes the override.
type pendingOverride struct {
	key   model.OverrideKey
	value *string
}

func (p *SettingsProvider) build(ctx context.Context, pending *pendingOverride) (model.SiteSettings, error) {
	settings := model.DefaultSiteSettings()
	if p.source != nil {
		loaded, err := p.source.Load(ctx)
		if err != nil {
			return model.SiteSettings{}, fmt.Errorf("load settings source: %w", err)
		}
		settings = loaded
	}

	var overrides []model.SettingOverride
	if p.overrides != nil {
		stored, err := p.overrides.List(ctx)
		if err != nil {
			return model.SiteSettings{}, fmt.Errorf("list overrides: %w", err)
		}
		overrides = stored
	}
	if pending != nil {
		overrides = slices.DeleteFunc(overrides, func(o model.SettingOverride) bool {
			return o.Key == pending.key
		})
		if pending.value != nil {
			overrides = append(overrides, model.SettingOverride{Key: pending.key, Value: *pending.value})
		}
	}

	for _, o := range overrides {
		next, err := model.ApplyOverride(settings, o.Key, o.Value)
		if errors.Is(err, model.ErrUnknownOverrideKey) {
			p.logger.Warn("skipping stored override with unknown key", "key", o.Key)
			continue
		}
		if err != nil {
			return model.SiteSettings{}, fmt.Errorf("apply override %q: %w", o.Key, err)
		}
		settings = next
	}

	settings = p.sanitizer.Settings(settings)

	if err := settings.Validate(); err != nil {
		return model.SiteSettings{}, err
	}
	return settings, nil
}

// Reload builds a new snapshot and makes it current. On failure the previous
// snapshot stays in place and the error is returned.
func (p *SettingsProvider) Reload(ctx context.Context) error {
	p.reloadMu.Lock()
	defer p.reloadMu.Unlock()

	settings, err := p.Build(ctx)
	if err != nil {
		p.logger.Error("settings reload failed, keeping previous snapshot", "error", err)
		return err
	}

	p.mu.Lock()
	p.current = settings
	p.loadedAt = time.Now().UTC()
	p.mu.Unlock()

	p.logger.Info("settings loaded",
		"site_title", settings.Metadata.Title,
		"social_links", len(settings.SocialMedia),
		"nav_links", len(settings.NavLinks),
	)
	return nil
}

// Current returns a deep copy of the current snapshot.
func (p *SettingsProvider) Current() model.SiteSettings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current.Clone()
}

// LoadedAt returns when the current snapshot was installed, or the zero time
// if Reload has never succeeded.
func (p *SettingsProvider) LoadedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loadedAt
}

// RevealConfig returns the reveal options for delay, or for the default delay
// when delay is nil.
func (p *SettingsProvider) RevealConfig(delay *float64) model.RevealConfig {
	if delay == nil {
		return model.DefaultRevealConfig()
	}
	return model.BuildRevealConfig(*delay)
}
