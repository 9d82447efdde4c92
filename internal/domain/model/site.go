package model

// SiteMetadata holds the values used for the page head and meta tags.
type SiteMetadata struct {
	Title       string
	Description string
	Keywords    string
	URL         string
	Language    string
}

// OwnerProfile holds the identity and contact fields of the site owner.
// GitHub is a profile URL, not an API handle.
type OwnerProfile struct {
	Name     string
	Location string
	Email    string
	GitHub   string
}

// SocialLink is a single entry of the social media list. Slice order is
// display order.
type SocialLink struct {
	Name string
	URL  string
}

// NavLink is a single navigation entry. URL is either a fragment ("/#about")
// or a path. Slice order is navigation display order.
type NavLink struct {
	Name string
	URL  string
}

// Integrations holds optional third-party identifiers. Empty fields mean the
// integration is disabled.
type Integrations struct {
	GoogleAnalyticsID  string
	GoogleVerification string
	TwitterHandle      string
}

// SiteSettings is the read-only aggregate consumed by page layouts.
// A SiteSettings value is built once per snapshot and never mutated; use
// Clone before handing it to code that might modify the slices.
type SiteSettings struct {
	Metadata     SiteMetadata
	Owner        OwnerProfile
	SocialMedia  []SocialLink
	NavLinks     []NavLink
	NavHeight    int
	Colors       ColorPalette
	Integrations Integrations
}

// Clone returns a deep copy of s. The link slices of the copy never share a
// backing array with s.
func (s SiteSettings) Clone() SiteSettings {
	out := s
	if s.SocialMedia != nil {
		out.SocialMedia = make([]SocialLink, len(s.SocialMedia))
		copy(out.SocialMedia, s.SocialMedia)
	}
	if s.NavLinks != nil {
		out.NavLinks = make([]NavLink, len(s.NavLinks))
		copy(out.NavLinks, s.NavLinks)
	}
	return out
}

// BuildRevealConfig is the aggregate's reveal factory. It does not depend on
// any field of s.
func (s SiteSettings) BuildRevealConfig(delay float64) RevealConfig {
	return BuildRevealConfig(delay)
}

// DefaultRevealConfig returns the reveal options with the default delay.
func (s SiteSettings) DefaultRevealConfig() RevealConfig {
	return DefaultRevealConfig()
}
