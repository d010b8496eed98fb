package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/blockart/internal/canon"
)

// Sentinel errors for option writes.
var (
	// ErrOptionExists is returned by AddOption when the name is taken.
	ErrOptionExists = errors.New("option already exists")

	// ErrEmptyName is returned when an option name is empty.
	ErrEmptyName = errors.New("option name cannot be empty")
)

// Option is a stored option row.
type Option struct {
	Name     string
	Value    any
	Autoload bool
	Seq      int64
}

// GetOption returns the value stored under name.
// The boolean is false when no such option exists.
func (s *Store) GetOption(ctx context.Context, name string) (any, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM options WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get option %q: %w", name, err)
	}

	v, err := canon.Unmarshal([]byte(raw))
	if err != nil {
		return nil, false, fmt.Errorf("get option %q: %w", name, err)
	}
	return v, true, nil
}

// UpdateOption stores value under name, creating the option if needed.
//
// Returns false without writing when the stored value is already equal to
// value (compared as canonical JSON).
func (s *Store) UpdateOption(ctx context.Context, name string, value any) (bool, error) {
	if name == "" {
		return false, ErrEmptyName
	}
	data, err := canon.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("update option %q: %w", name, err)
	}

	var current string
	err = s.db.QueryRowContext(ctx, `SELECT value FROM options WHERE name = ?`, name).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return false, fmt.Errorf("update option %q: %w", name, err)
	case bytes.Equal([]byte(current), data):
		return false, nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO options (name, value, autoload, updated_seq)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_seq = excluded.updated_seq
	`, name, string(data), s.seq.Add(1))
	if err != nil {
		return false, fmt.Errorf("update option %q: %w", name, err)
	}
	return true, nil
}

// AddOption creates a new option. Returns ErrOptionExists if name is taken.
func (s *Store) AddOption(ctx context.Context, name string, value any, autoload bool) error {
	if name == "" {
		return ErrEmptyName
	}
	data, err := canon.Marshal(value)
	if err != nil {
		return fmt.Errorf("add option %q: %w", name, err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO options (name, value, autoload, updated_seq)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`, name, string(data), boolToInt(autoload), s.seq.Add(1))
	if err != nil {
		return fmt.Errorf("add option %q: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("add option %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("add option %q: %w", name, ErrOptionExists)
	}
	return nil
}

// DeleteOption removes name. Returns false if it did not exist.
func (s *Store) DeleteOption(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM options WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("delete option %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete option %q: %w", name, err)
	}
	return n > 0, nil
}

// ListOptions returns every stored option ordered by name.
func (s *Store) ListOptions(ctx context.Context) ([]Option, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, value, autoload, updated_seq
		FROM options
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	defer rows.Close()

	var out []Option
	for rows.Next() {
		var (
			opt      Option
			raw      string
			autoload int
		)
		if err := rows.Scan(&opt.Name, &raw, &autoload, &opt.Seq); err != nil {
			return nil, fmt.Errorf("list options: %w", err)
		}
		opt.Value, err = canon.Unmarshal([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("list options: %q: %w", opt.Name, err)
		}
		opt.Autoload = autoload != 0
		out = append(out, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
