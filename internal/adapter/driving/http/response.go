package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/sitesettings/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// LinkResponse is the JSON representation of a social or navigation link.
type LinkResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ColorsResponse is the JSON representation of the color palette.
type ColorsResponse struct {
	Green    string `json:"green"`
	Navy     string `json:"navy"`
	DarkNavy string `json:"darkNavy"`
}

// SettingsResponse is the JSON representation of the site settings
// aggregate. Field names match what page layouts read.
type SettingsResponse struct {
	SiteTitle       string `json:"siteTitle"`
	SiteDescription string `json:"siteDescription"`
	SiteKeywords    string `json:"siteKeywords"`
	SiteURL         string `json:"siteUrl"`
	SiteLanguage    string `json:"siteLanguage"`

	Name     string `json:"name"`
	Location string `json:"location"`
	Email    string `json:"email"`
	GitHub   string `json:"github"`

	SocialMedia []LinkResponse `json:"socialMedia"`
	NavLinks    []LinkResponse `json:"navLinks"`
	NavHeight   int            `json:"navHeight"`
	Colors      ColorsResponse `json:"colors"`

	// Optional integrations, omitted when disabled.
	GoogleAnalyticsID  string `json:"googleAnalyticsID,omitempty"`
	GoogleVerification string `json:"googleVerification,omitempty"`
	TwitterHandle      string `json:"twitterHandle,omitempty"`
}

// AxisResponse is the JSON representation of a rotation.
type AxisResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ViewOffsetResponse is the JSON representation of the viewport offset.
type ViewOffsetResponse struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// RevealConfigResponse is the JSON representation of the reveal options,
// shaped for direct use as the scroll-reveal options object.
type RevealConfigResponse struct {
	Origin     string             `json:"origin"`
	Distance   string             `json:"distance"`
	Duration   int                `json:"duration"`
	Delay      float64            `json:"delay"`
	Rotate     AxisResponse       `json:"rotate"`
	Opacity    float64            `json:"opacity"`
	Scale      float64            `json:"scale"`
	Easing     string             `json:"easing"`
	Mobile     bool               `json:"mobile"`
	Reset      bool               `json:"reset"`
	UseDelay   string             `json:"useDelay"`
	ViewFactor float64            `json:"viewFactor"`
	ViewOffset ViewOffsetResponse `json:"viewOffset"`
}

// OverrideResponse is the JSON representation of a stored override.
type OverrideResponse struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at"`
}

// SetOverrideRequest is the request body for PUT /api/v1/overrides/{key}.
type SetOverrideRequest struct {
	Value *string `json:"value"`
}

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	LoadedAt string `json:"loaded_at,omitempty"`
}

func toSocialLinkResponses(links []model.SocialLink) []LinkResponse {
	resp := make([]LinkResponse, 0, len(links))
	for _, l := range links {
		resp = append(resp, LinkResponse{Name: l.Name, URL: l.URL})
	}
	return resp
}

func toNavLinkResponses(links []model.NavLink) []LinkResponse {
	resp := make([]LinkResponse, 0, len(links))
	for _, l := range links {
		resp = append(resp, LinkResponse{Name: l.Name, URL: l.URL})
	}
	return resp
}

func toSettingsResponse(s model.SiteSettings) SettingsResponse {
	return SettingsResponse{
		SiteTitle:          s.Metadata.Title,
		SiteDescription:    s.Metadata.Description,
		SiteKeywords:       s.Metadata.Keywords,
		SiteURL:            s.Metadata.URL,
		SiteLanguage:       s.Metadata.Language,
		Name:               s.Owner.Name,
		Location:           s.Owner.Location,
		Email:              s.Owner.Email,
		GitHub:             s.Owner.GitHub,
		SocialMedia:        toSocialLinkResponses(s.SocialMedia),
		NavLinks:           toNavLinkResponses(s.NavLinks),
		NavHeight:          s.NavHeight,
		Colors:             toColorsResponse(s.Colors),
		GoogleAnalyticsID:  s.Integrations.GoogleAnalyticsID,
		GoogleVerification: s.Integrations.GoogleVerification,
		TwitterHandle:      s.Integrations.TwitterHandle,
	}
}

func toColorsResponse(p model.ColorPalette) ColorsResponse {
	return ColorsResponse{Green: p.Green, Navy: p.Navy, DarkNavy: p.DarkNavy}
}

func toRevealConfigResponse(c model.RevealConfig) RevealConfigResponse {
	return RevealConfigResponse{
		Origin:     c.Origin,
		Distance:   c.Distance,
		Duration:   c.Duration,
		Delay:      c.Delay,
		Rotate:     AxisResponse{X: c.Rotate.X, Y: c.Rotate.Y, Z: c.Rotate.Z},
		Opacity:    c.Opacity,
		Scale:      c.Scale,
		Easing:     c.Easing,
		Mobile:     c.Mobile,
		Reset:      c.Reset,
		UseDelay:   c.UseDelay,
		ViewFactor: c.ViewFactor,
		ViewOffset: ViewOffsetResponse{
			Top:    c.ViewOffset.Top,
			Right:  c.ViewOffset.Right,
			Bottom: c.ViewOffset.Bottom,
			Left:   c.ViewOffset.Left,
		},
	}
}

func toOverrideResponse(o model.SettingOverride) OverrideResponse {
	return OverrideResponse{
		Key:       string(o.Key),
		Value:     o.Value,
		UpdatedAt: o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
