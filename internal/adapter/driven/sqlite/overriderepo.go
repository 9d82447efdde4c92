package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/sitesettings/internal/domain/model"
	"github.com/ericfisherdev/sitesettings/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.OverrideStore = (*OverrideRepo)(nil)

// OverrideRepo is the SQLite implementation of the OverrideStore port.
type OverrideRepo struct {
	db *DB
}

// NewOverrideRepo creates an OverrideRepo backed by db.
func NewOverrideRepo(db *DB) *OverrideRepo {
	return &OverrideRepo{db: db}
}

// Set inserts or replaces the override for key and stamps updated_at.
func (r *OverrideRepo) Set(ctx context.Context, key model.OverrideKey, value string) error {
	const query = `
		INSERT INTO setting_overrides (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.Writer.ExecContext(ctx, query, string(key), value); err != nil {
		return fmt.Errorf("set override %q: %w", key, err)
	}
	return nil
}

// Get returns the override value for key. found is false when none is
// stored, which is distinct from a stored empty value.
func (r *OverrideRepo) Get(ctx context.Context, key model.OverrideKey) (string, bool, error) {
	const query = `SELECT value FROM setting_overrides WHERE key = ?`

	var value string
	err := r.db.Reader.QueryRowContext(ctx, query, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get override %q: %w", key, err)
	}
	return value, true, nil
}

// List returns every stored override ordered by key.
func (r *OverrideRepo) List(ctx context.Context) ([]model.SettingOverride, error) {
	const query = `SELECT key, value, updated_at FROM setting_overrides ORDER BY key`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	defer rows.Close()

	overrides := []model.SettingOverride{}
	for rows.Next() {
		var (
			o         model.SettingOverride
			key       string
			updatedAt string
		)
		if err := rows.Scan(&key, &o.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		o.Key = model.OverrideKey(key)

		o.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at for override %q: %w", key, err)
		}

		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overrides: %w", err)
	}

	return overrides, nil
}

// Delete removes the override for key. Deleting a missing key is not an error.
func (r *OverrideRepo) Delete(ctx context.Context, key model.OverrideKey) error {
	const query = `DELETE FROM setting_overrides WHERE key = ?`

	if _, err := r.db.Writer.ExecContext(ctx, query, string(key)); err != nil {
		return fmt.Errorf("delete override %q: %w", key, err)
	}
	return nil
}

// parseTime accepts the timestamp layouts SQLite produces for TEXT columns.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
