package model

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"slices"
	"strings"
)

// ErrInvalidSettings is wrapped by every error returned from Validate.
var ErrInvalidSettings = errors.New("invalid site settings")

// Validate checks the values consumers rely on: required text, absolute
// http(s) URLs, a parsable email, a positive nav height, hex colors, and
// complete link entries. All problems are reported in one error.
func (s SiteSettings) Validate() error {
	var problems []string

	if strings.TrimSpace(s.Metadata.Title) == "" {
		problems = append(problems, "siteTitle is empty")
	}
	if !isAbsoluteHTTPURL(s.Metadata.URL) {
		problems = append(problems, fmt.Sprintf("siteUrl %q is not an absolute http(s) URL", s.Metadata.URL))
	}
	if strings.TrimSpace(s.Owner.Name) == "" {
		problems = append(problems, "name is empty")
	}
	if s.Owner.Email != "" {
		if _, err := mail.ParseAddress(s.Owner.Email); err != nil {
			problems = append(problems, fmt.Sprintf("email %q is not a valid address", s.Owner.Email))
		}
	}
	if s.Owner.GitHub != "" && !isAbsoluteHTTPURL(s.Owner.GitHub) {
		problems = append(problems, fmt.Sprintf("github %q is not an absolute http(s) URL", s.Owner.GitHub))
	}
	if s.NavHeight <= 0 {
		problems = append(problems, fmt.Sprintf("navHeight must be positive, got %d", s.NavHeight))
	}

	for name, value := range s.Colors.Map() {
		if !IsHexColor(value) {
			problems = append(problems, fmt.Sprintf("colors.%s %q is not a #rrggbb color", name, value))
		}
	}

	for i, link := range s.SocialMedia {
		if link.Name == "" || link.URL == "" {
			problems = append(problems, fmt.Sprintf("socialMedia[%d] needs both name and url", i))
		}
	}
	for i, link := range s.NavLinks {
		if link.Name == "" || link.URL == "" {
			problems = append(problems, fmt.Sprintf("navLinks[%d] needs both name and url", i))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	// Map iteration above is unordered; keep messages stable.
	slices.Sort(problems)
	return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(problems, "; "))
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
