package driven

import (
	"context"

	"github.com/ericfisherdev/sitesettings/internal/domain/model"
)

// OverrideStore defines the driven port for persisted setting overrides.
// Get reports found=false when no override exists for key.
// Delete is a no-op when no override exists for key.
type OverrideStore interface {
	Set(ctx context.Context, key model.OverrideKey, value string) error
	Get(ctx context.Context, key model.OverrideKey) (value string, found bool, err error)
	List(ctx context.Context) ([]model.SettingOverride, error)
	Delete(ctx context.Context, key model.OverrideKey) error
}
