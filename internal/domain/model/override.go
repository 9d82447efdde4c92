package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownOverrideKey is returned when a key is not in the override set.
var ErrUnknownOverrideKey = errors.New("unknown override key")

// OverrideKey names a single scalar field of SiteSettings that can be
// overridden at runtime. Keys use the JSON field names of the aggregate.
type OverrideKey string

const (
	OverrideSiteTitle          OverrideKey = "siteTitle"
	OverrideSiteDescription    OverrideKey = "siteDescription"
	OverrideSiteKeywords       OverrideKey = "siteKeywords"
	OverrideSiteURL            OverrideKey = "siteUrl"
	OverrideSiteLanguage       OverrideKey = "siteLanguage"
	OverrideName               OverrideKey = "name"
	OverrideLocation           OverrideKey = "location"
	OverrideEmail              OverrideKey = "email"
	OverrideGitHub             OverrideKey = "github"
	OverrideNavHeight          OverrideKey = "navHeight"
	OverrideColorGreen         OverrideKey = "colors.green"
	OverrideColorNavy          OverrideKey = "colors.navy"
	OverrideColorDarkNavy      OverrideKey = "colors.darkNavy"
	OverrideGoogleAnalyticsID  OverrideKey = "googleAnalyticsID"
	OverrideGoogleVerification OverrideKey = "googleVerification"
	OverrideTwitterHandle      OverrideKey = "twitterHandle"
)

var overrideKeys = []OverrideKey{
	OverrideSiteTitle,
	OverrideSiteDescription,
	OverrideSiteKeywords,
	OverrideSiteURL,
	OverrideSiteLanguage,
	OverrideName,
	OverrideLocation,
	OverrideEmail,
	OverrideGitHub,
	OverrideNavHeight,
	OverrideColorGreen,
	OverrideColorNavy,
	OverrideColorDarkNavy,
	OverrideGoogleAnalyticsID,
	OverrideGoogleVerification,
	OverrideTwitterHandle,
}

// OverrideKeys returns every supported key in declaration order.
func OverrideKeys() []OverrideKey {
	out := make([]OverrideKey, len(overrideKeys))
	copy(out, overrideKeys)
	return out
}

// ParseOverrideKey returns the OverrideKey for s, or an error wrapping
// ErrUnknownOverrideKey.
func ParseOverrideKey(s string) (OverrideKey, error) {
	for _, k := range overrideKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOverrideKey, s)
}

// SettingOverride is a persisted single-field override.
type SettingOverride struct {
	Key       OverrideKey
	Value     string
	UpdatedAt time.Time
}

// ApplyOverride returns a copy of s with the field named by key set to value.
// s itself is left untouched. The result is not validated; call Validate on
// the final aggregate.
func ApplyOverride(s SiteSettings, key OverrideKey, value string) (SiteSettings, error) {
	out := s.Clone()

	switch key {
	case OverrideSiteTitle:
		out.Metadata.Title = value
	case OverrideSiteDescription:
		out.Metadata.Description = value
	case OverrideSiteKeywords:
		out.Metadata.Keywords = value
	case OverrideSiteURL:
		out.Metadata.URL = value
	case OverrideSiteLanguage:
		out.Metadata.Language = value
	case OverrideName:
		out.Owner.Name = value
	case OverrideLocation:
		out.Owner.Location = value
	case OverrideEmail:
		out.Owner.Email = value
	case OverrideGitHub:
		out.Owner.GitHub = value
	case OverrideNavHeight:
		h, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || h <= 0 {
			return s, fmt.Errorf("%w: navHeight must be a positive integer, got %q", ErrInvalidSettings, value)
		}
		out.NavHeight = h
	case OverrideColorGreen:
		out.Colors.Green = value
	case OverrideColorNavy:
		out.Colors.Navy = value
	case OverrideColorDarkNavy:
		out.Colors.DarkNavy = value
	case OverrideGoogleAnalyticsID:
		out.Integrations.GoogleAnalyticsID = value
	case OverrideGoogleVerification:
		out.Integrations.GoogleVerification = value
	case OverrideTwitterHandle:
		out.Integrations.TwitterHandle = value
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownOverrideKey, key)
	}

	return out, nil
}
