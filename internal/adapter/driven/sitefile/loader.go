// Package sitefile reads site settings from a YAML file and watches it for
// changes.
package sitefile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/sitesettings/internal/domain/model"
	"github.com/ericfisherdev/sitesettings/internal/domain/port/driven"
)

var _ driven.SettingsSource = (*Loader)(nil)

// Loader decodes a YAML site file on top of model.DefaultSiteSettings.
type Loader struct {
	path string
}

// NewLoader creates a Loader for path. The file is not read until Load.
func NewLoader(path string) (*Loader, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve site file path: %w", err)
	}
	return &Loader{path: abs}, nil
}

// Path returns the absolute path of the site file.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and decodes the site file. Keys missing from the file keep their
// default values; a present socialMedia or navLinks list replaces the default
// list entirely. Unknown keys are an error. An empty file yields the defaults.
func (l *Loader) Load(_ context.Context) (model.SiteSettings, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return model.SiteSettings{}, fmt.Errorf("read site file %s: %w", l.path, err)
	}

	settings, err := Decode(data)
	if err != nil {
		return model.SiteSettings{}, fmt.Errorf("decode site file %s: %w", l.path, err)
	}
	return settings, nil
}

// Decode parses a site document and applies it to the defaults.
func Decode(data []byte) (model.SiteSettings, error) {
	var doc yamlSite

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return model.SiteSettings{}, err
	}

	return doc.apply(model.DefaultSiteSettings()), nil
}

func (d yamlSite) apply(s model.SiteSettings) model.SiteSettings {
	setString(&s.Metadata.Title, d.SiteTitle)
	setString(&s.Metadata.Description, d.SiteDescription)
	setString(&s.Metadata.Keywords, d.SiteKeywords)
	setString(&s.Metadata.URL, d.SiteURL)
	setString(&s.Metadata.Language, d.SiteLanguage)

	setString(&s.Owner.Name, d.Name)
	setString(&s.Owner.Location, d.Location)
	setString(&s.Owner.Email, d.Email)
	setString(&s.Owner.GitHub, d.GitHub)

	if d.SocialMedia != nil {
		s.SocialMedia = make([]model.SocialLink, 0, len(d.SocialMedia))
		for _, l := range d.SocialMedia {
			s.SocialMedia = append(s.SocialMedia, model.SocialLink{Name: l.Name, URL: l.URL})
		}
	}
	if d.NavLinks != nil {
		s.NavLinks = make([]model.NavLink, 0, len(d.NavLinks))
		for _, l := range d.NavLinks {
			s.NavLinks = append(s.NavLinks, model.NavLink{Name: l.Name, URL: l.URL})
		}
	}
	if d.NavHeight != nil {
		s.NavHeight = *d.NavHeight
	}
	if d.Colors != nil {
		setString(&s.Colors.Green, d.Colors.Green)
		setString(&s.Colors.Navy, d.Colors.Navy)
		setString(&s.Colors.DarkNavy, d.Colors.DarkNavy)
	}

	setString(&s.Integrations.GoogleAnalyticsID, d.GoogleAnalyticsID)
	setString(&s.Integrations.GoogleVerification, d.GoogleVerification)
	setString(&s.Integrations.TwitterHandle, d.TwitterHandle)

	return s
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
