package settings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// OptionStore is the persisted key/value store settings are kept in.
type OptionStore interface {
	GetOption(ctx context.Context, name string) (any, bool, error)
	UpdateOption(ctx context.Context, name string, value any) (bool, error)
}

// Registry holds registered settings in registration order.
type Registry struct {
	mu       sync.RWMutex
	store    OptionStore
	order    []string
	settings map[string]Setting
}

// NewRegistry creates an empty registry backed by store.
func NewRegistry(store OptionStore) *Registry {
	return &Registry{
		store:    store,
		settings: make(map[string]Setting),
	}
}

// Register adds s. Registering an existing name replaces its metadata but
// keeps its original position.
func (r *Registry) Register(s Setting) error {
	if s.Name == "" {
		return ErrEmptyName
	}
	if !s.Type.Valid() {
		return fmt.Errorf("register %s: %w: %q", s.Name, ErrInvalidType, s.Type)
	}
	if s.Default != nil {
		if err := s.Check(s.Default); err != nil {
			return fmt.Errorf("register %s: default: %w", s.Name, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.settings[s.Name]; !exists {
		r.order = append(r.order, s.Name)
	} else {
		slog.Debug("setting re-registered", "setting", s.Name)
	}
	r.settings[s.Name] = s
	return nil
}

// Lookup returns the setting registered under name.
func (r *Registry) Lookup(name string) (Setting, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.settings[name]
	return s, ok
}

// All returns every registered setting in registration order.
func (r *Registry) All() []Setting {
	return r.filter(func(Setting) bool { return true })
}

// Group returns the settings registered under group.
func (r *Registry) Group(group string) []Setting {
	return r.filter(func(s Setting) bool { return s.Group == group })
}

// REST returns the settings exposed through the REST settings view.
func (r *Registry) REST() []Setting {
	return r.filter(func(s Setting) bool { return s.ShowInREST })
}

func (r *Registry) filter(keep func(Setting) bool) []Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Setting, 0, len(r.order))
	for _, name := range r.order {
		if s := r.settings[name]; keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// Value returns the stored value of name, or its default if none is stored.
func (r *Registry) Value(ctx context.Context, name string) (any, error) {
	s, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, name)
	}

	v, found, err := r.store.GetOption(ctx, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return s.Default, nil
	}
	return v, nil
}

// String returns the value of a string setting.
func (r *Registry) String(ctx context.Context, name string) (string, error) {
	v, err := r.Value(ctx, name)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: stored value is %T, not string", name, v)
	}
	return str, nil
}

// Bool returns the value of a boolean setting.
func (r *Registry) Bool(ctx context.Context, name string) (bool, error) {
	v, err := r.Value(ctx, name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s: stored value is %T, not bool", name, v)
	}
	return b, nil
}

// Update sanitizes raw, checks it against the setting type and stores it.
// Returns false if the stored value was already equal.
func (r *Registry) Update(ctx context.Context, name string, raw any) (bool, error) {
	s, ok := r.Lookup(name)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownSetting, name)
	}

	value := raw
	if s.Sanitize != nil {
		value = s.Sanitize(raw)
	}
	if err := s.Check(value); err != nil {
		return false, err
	}

	changed, err := r.store.UpdateOption(ctx, name, value)
	if err != nil {
		return false, err
	}
	if changed {
		slog.Debug("setting updated", "setting", name)
	}
	return changed, nil
}
