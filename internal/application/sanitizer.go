package application

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ericfisherdev/sitesettings/internal/domain/model"
)

// maxSanitizePasses bounds how many layers of entity encoding Text peels off.
const maxSanitizePasses = 8

// Sanitizer strips markup from setting values. Settings end up in meta tags
// and attribute values, so no HTML is allowed through. Entities are decoded
// after sanitizing and the result is sanitized again until it stops changing,
// so encoded markup cannot come back as live tags.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer backed by bluemonday's strict policy.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text returns v with all tags removed and surrounding whitespace trimmed.
// Text is idempotent: Text(Text(v)) == Text(v). Values still changing after
// maxSanitizePasses are dropped.
func (s *Sanitizer) Text(v string) string {
	for range maxSanitizePasses {
		next := strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
		if next == v {
			return v
		}
		v = next
	}
	return ""
}

// Settings returns a copy of in with every string field passed through Text.
func (s *Sanitizer) Settings(in model.SiteSettings) model.SiteSettings {
	out := in.Clone()

	out.Metadata.Title = s.Text(out.Metadata.Title)
	out.Metadata.Description = s.Text(out.Metadata.Description)
	out.Metadata.Keywords = s.Text(out.Metadata.Keywords)
	out.Metadata.URL = s.Text(out.Metadata.URL)
	out.Metadata.Language = s.Text(out.Metadata.Language)

	out.Owner.Name = s.Text(out.Owner.Name)
	out.Owner.Location = s.Text(out.Owner.Location)
	out.Owner.Email = s.Text(out.Owner.Email)
	out.Owner.GitHub = s.Text(out.Owner.GitHub)

	for i := range out.SocialMedia {
		out.SocialMedia[i].Name = s.Text(out.SocialMedia[i].Name)
		out.SocialMedia[i].URL = s.Text(out.SocialMedia[i].URL)
	}
	for i := range out.NavLinks {
		out.NavLinks[i].Name = s.Text(out.NavLinks[i].Name)
		out.NavLinks[i].URL = s.Text(out.NavLinks[i].URL)
	}

	out.Colors.Green = s.Text(out.Colors.Green)
	out.Colors.Navy = s.Text(out.Colors.Navy)
	out.Colors.DarkNavy = s.Text(out.Colors.DarkNavy)

	out.Integrations.GoogleAnalyticsID = s.Text(out.Integrations.GoogleAnalyticsID)
	out.Integrations.GoogleVerification = s.Text(out.Integrations.GoogleVerification)
	out.Integrations.TwitterHandle = s.Text(out.Integrations.TwitterHandle)

	return out
}
