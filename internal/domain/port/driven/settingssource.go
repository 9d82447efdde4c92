package driven

import (
	"context"

	"github.com/ericfisherdev/sitesettings/internal/domain/model"
)

// SettingsSource produces a complete base aggregate before overrides are
// applied. Implementations start from model.DefaultSiteSettings so fields they
// do not define keep their built-in values.
type SettingsSource interface {
	Load(ctx context.Context) (model.SiteSettings, error)
}
