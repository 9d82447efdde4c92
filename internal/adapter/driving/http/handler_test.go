package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/sitesettings/internal/adapter/driven/ratelimit"
	httphandler "github.com/ericfisherdev/sitesettings/internal/adapter/driving/http"
	"github.com/ericfisherdev/sitesettings/internal/application"
	"github.com/ericfisherdev/sitesettings/internal/domain/model"
)

// --- Mock implementations ---

type mockOverrideStore struct {
	mu      sync.Mutex
	values  map[model.OverrideKey]string
	listErr error
}

func newMockOverrideStore() *mockOverrideStore {
	return &mockOverrideStore{values: map[model.OverrideKey]string{}}
}

func (m *mockOverrideStore) Set(_ context.Context, key model.OverrideKey, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *mockOverrideStore) Get(_ context.Context, key model.OverrideKey) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockOverrideStore) List(_ context.Context) ([]model.SettingOverride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.SettingOverride, 0, len(m.values))
	for k, v := range m.values {
		out = append(out, model.SettingOverride{Key: k, Value: v, UpdatedAt: testTime})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *mockOverrideStore) Delete(_ context.Context, key model.OverrideKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

type failingSource struct{}

func (failingSource) Load(_ context.Context) (model.SiteSettings, error) {
	return model.SiteSettings{}, errors.New("site file unreadable")
}

// --- Test helpers ---

var testTime = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupMux(t *testing.T, store *mockOverrideStore) (http.Handler, *application.SettingsProvider) {
	t.Helper()
	logger := discardLogger()
	sanitizer := application.NewSanitizer()
	provider := application.NewSettingsProvider(nil, store, sanitizer, logger)
	require.NoError(t, provider.Reload(context.Background()))
	overrides := application.NewOverrideService(store, provider, sanitizer, logger)
	h := httphandler.NewHandler(provider, overrides, nil, logger)
	return httphandler.NewServeMux(h, logger), provider
}

func do(t *testing.T, mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestGetSettings_ContractFieldNames(t *testing.T) {
	mux, _ := setupMux(t, newMockOverrideStore())

	rec := do(t, mux, http.MethodGet, "/api/v1/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	for _, key := range []string{
		"siteTitle", "siteDescription", "siteKeywords", "siteUrl", "siteLanguage",
		"name", "location", "email", "github",
		"socialMedia", "navLinks", "navHeight", "colors",
	} {
		assert.Contains(t, body, key)
	}
	assert.NotContains(t, body, "googleAnalyticsID")
	assert.Equal(t, "Tyler Riedal | Software Consultant", body["siteTitle"])
	assert.Equal(t, float64(100), body["navHeight"])
	assert.Equal(t, map[string]any{"green": "#64ffda", "navy": "#0a192f", "darkNavy": "#020c1b"}, body["colors"])
}

func TestGetSettings_LinkOrder(t *testing.T) {
	mux, _ := setupMux(t, newMockOverrideStore())

	rec := do(t, mux, http.MethodGet, "/api/v1/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body httphandler.SettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, []httphandler.LinkResponse{
		{Name: "GitHub", URL: "https://github.com/triedal"},
		{Name: "Linkedin", URL: "https://www.linkedin.com/in/tylerriedal/"},
	}, body.SocialMedia)
	require.Len(t, body.NavLinks, 4)
	assert.Equal(t, "About", body.NavLinks[0].Name)
	assert.Equal(t, "/#contact", body.NavLinks[3].URL)
}

func TestGetSettings_NoCacheHeaders(t *testing.T) {
	mux, _ := setupMux(t, newMockOverrideStore())

	rec := do(t, mux, http.MethodGet, "/api/v1/settings", "")
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
}

func TestGetRevealConfig_Default(t *testing.T) {
	mux, _ := setupMux(t, newMockOverrideStore())

	rec := do(t, mux, http.MethodGet, "/api/v1/settings/reveal", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body httphandler.RevealConfigResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(200), body.Delay)
}

func TestGetRevealConfig_WithDelay(t *testing.T) {
	mux, _ := setupMux(t, newMockOverrideStore())

	rec := do(t, mux, http.MethodGet, "/api/v1/settings/reveal?delay=400", "")
	require.Equal(t, http.StatusOK, rec.Code)

	expected := `{
		"origin": "bottom",
		"distance": "20px",
		"duration": 500,
		"delay": 400,
		"rotate": {"x": 0, "y": 0, "z": 0},
		"opacity": 0,
		"scale": 1,
		"easing": "cubic-bezier(0.645, 0.045, 0.355, 1)",
		"mobile": true,
		"reset": false,
		"useDelay": "always",
		"viewFactor": 0.25,
		"viewOffset": {"top": 0, "right": 0, "bottom": 0, "left": 0}
	}`
	assert.JSONEq(t, expected, rec.Body.String())
}

func TestGetRevealConfig_InvalidDelay(t *testing.T) {
	mux, _ := setupMux(t, newMockOverrideStore())

	for _, q := range []string{"abc", "NaN", "Inf"} {
		rec := do(t, mux, http.MethodGet, "/api/v1/settings/reveal?delay="+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "delay=%s", q)
		assert.Contains(t, rec.Body.String(), "invalid delay")
	}
}

func TestGetColors(t *testing.T) {
	mux, _ := setupMux(t, newMockOverrideStore())

	rec := do(t, mux, http.MethodGet, "/api/v1/settings/colors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"green":"#64ffda","navy":"#0a192f","darkNavy":"#020c1b"}`, rec.Body.String())
}

func TestSetOverride_AppliesToSettings(t *testing.T) {
	store := newMockOverrideStore()
	mux, _ := setupMux(t, store)

	rec := do(t, mux, http.MethodPut, "/api/v1/overrides/twitterHandle", `{"value":"@triedal"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var override httphandler.OverrideResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &override))
	assert.Equal(t, "twitterHandle", override.Key)
	assert.Equal(t, "@triedal", override.Value)

	rec = do(t, mux, http.MethodGet, "/api/v1/settings", "")
	var settings httphandler.SettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, "@triedal", settings.TwitterHandle)
}

func TestSetOverride_UnknownKey(t *testing.T) {
	mux, _ := setupMux(t, newMockOverrideStore())

	rec := do(t, mux, http.MethodPut, "/api/v1/overrides/navLinks", `{"value":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetOverride_InvalidValue(t *testing.T) {
	store := newMockOverrideStore()
	mux, _ := setupMux(t, store)

	rec := do(t, mux, http.MethodPut, "/api/v1/overrides/colors.green", `{"value":"lime"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "colors.green")
	assert.Empty(t, store.values)
}

func TestSetOverride_EncodedMarkupRejected(t *testing.T) {
	store := newMockOverrideStore()
	mux, provider := setupMux(t, store)

	rec := do(t, mux, http.MethodPut, "/api/v1/overrides/siteTitle", `{"value":"&lt;b&gt;&lt;/b&gt;"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "siteTitle is empty")
	assert.Empty(t, store.values)

	require.NoError(t, provider.Reload(context.Background()))
	rec = do(t, mux, http.MethodPost, "/api/v1/settings/reload", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSetOverride_BadBody(t *testing.T) {
	mux, _ := setupMux(t, newMockOverrideStore())

	rec := do(t, mux, http.MethodPut, "/api/v1/overrides/name", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodPut, "/api/v1/overrides/name", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "value is required")
}

func TestDeleteOverride(t *testing.T) {
	store := newMockOverrideStore()
	mux, provider := setupMux(t, store)

	rec := do(t, mux, http.MethodPut, "/api/v1/overrides/navHeight", `{"value":"64"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 64, provider.Current().NavHeight)

	rec = do(t, mux, http.MethodDelete, "/api/v1/overrides/navHeight", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 100, provider.Current().NavHeight)

	rec = do(t, mux, http.MethodDelete, "/api/v1/overrides/bogus", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOverrides(t *testing.T) {
	store := newMockOverrideStore()
	store.values[model.OverrideLocation] = "Tampa, FL"
	mux, _ := setupMux(t, store)

	rec := do(t, mux, http.MethodGet, "/api/v1/overrides", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"key":"location","value":"Tampa, FL","updated_at":"2026-02-10T12:00:00Z"}]`, rec.Body.String())
}

func TestListOverrides_Empty(t *testing.T) {
	mux, _ := setupMux(t, newMockOverrideStore())

	rec := do(t, mux, http.MethodGet, "/api/v1/overrides", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListOverrides_StoreError(t *testing.T) {
	store := newMockOverrideStore()
	mux, _ := setupMux(t, store)
	store.listErr = errors.New("db gone")

	rec := do(t, mux, http.MethodGet, "/api/v1/overrides", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestReload(t *testing.T) {
	store := newMockOverrideStore()
	mux, provider := setupMux(t, store)

	// Written behind the service's back; visible only after a reload.
	store.values[model.OverrideSiteTitle] = "Reloaded"
	assert.NotEqual(t, "Reloaded", provider.Current().Metadata.Title)

	rec := do(t, mux, http.MethodPost, "/api/v1/settings/reload", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Reloaded", provider.Current().Metadata.Title)
}

func TestReload_Failure(t *testing.T) {
	logger := discardLogger()
	sanitizer := application.NewSanitizer()
	store := newMockOverrideStore()
	provider := application.NewSettingsProvider(failingSource{}, store, sanitizer, logger)
	overrides := application.NewOverrideService(store, provider, sanitizer, logger)
	mux := httphandler.NewServeMux(httphandler.NewHandler(provider, overrides, nil, logger), logger)

	rec := do(t, mux, http.MethodPost, "/api/v1/settings/reload", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "site file unreadable")

	// Defaults are still served.
	rec = do(t, mux, http.MethodGet, "/api/v1/settings", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	mux, _ := setupMux(t, newMockOverrideStore())

	rec := do(t, mux, http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body httphandler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, body.Time)
	assert.NotEmpty(t, body.LoadedAt)
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := setupMux(t, newMockOverrideStore())

	rec := do(t, mux, http.MethodPost, "/api/v1/settings", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWriteRateLimit(t *testing.T) {
	store := newMockOverrideStore()
	logger := discardLogger()
	sanitizer := application.NewSanitizer()
	provider := application.NewSettingsProvider(nil, store, sanitizer, logger)
	require.NoError(t, provider.Reload(context.Background()))
	overrides := application.NewOverrideService(store, provider, sanitizer, logger)

	limiter := ratelimit.NewTokenBucketStore(0.001, 2, time.Minute)
	defer limiter.Stop()
	mux := httphandler.NewServeMux(httphandler.NewHandler(provider, overrides, limiter, logger), logger)

	assert.Equal(t, http.StatusNoContent, do(t, mux, http.MethodPost, "/api/v1/settings/reload", "").Code)
	assert.Equal(t, http.StatusOK, do(t, mux, http.MethodPut, "/api/v1/overrides/siteTitle", `{"value":"Limited"}`).Code)

	rec := do(t, mux, http.MethodDelete, "/api/v1/overrides/siteTitle", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "too many requests")

	// Reads are never throttled.
	rec = do(t, mux, http.MethodGet, "/api/v1/settings", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Limited")
}
