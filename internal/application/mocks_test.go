package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ericfisherdev/sitesettings/internal/domain/model"
)

// --- Mock implementations ---

type mockSource struct {
	settings model.SiteSettings
	err      error
	calls    int
	failFrom int // when > 0, Load fails from this call number on
}

func (m *mockSource) Load(_ context.Context) (model.SiteSettings, error) {
	m.calls++
	if m.err != nil {
		return model.SiteSettings{}, m.err
	}
	if m.failFrom > 0 && m.calls >= m.failFrom {
		return model.SiteSettings{}, errStore
	}
	return m.settings.Clone(), nil
}

// memOverrideStore is an in-memory driven.OverrideStore.
type memOverrideStore struct {
	mu        sync.Mutex
	values    map[model.OverrideKey]string
	listErr   error
	setErr    error
	deleteErr error
}

func newMemOverrideStore() *memOverrideStore {
	return &memOverrideStore{values: map[model.OverrideKey]string{}}
}

func (m *memOverrideStore) Set(_ context.Context, key model.OverrideKey, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memOverrideStore) Get(_ context.Context, key model.OverrideKey) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memOverrideStore) List(_ context.Context) ([]model.SettingOverride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.SettingOverride, 0, len(m.values))
	for k, v := range m.values {
		out = append(out, model.SettingOverride{Key: k, Value: v, UpdatedAt: time.Now().UTC()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *memOverrideStore) Delete(_ context.Context, key model.OverrideKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.values, key)
	return nil
}

var errStore = errors.New("store unavailable")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
