// Package i18n loads translation files for text domains.
//
// A text domain is a named set of translations. Translation files are YAML
// maps from source message to translated message and live at
// <dir>/<domain>-<locale>.yaml, where locale uses the host's form ("de_DE").
// When the regional file is missing, the base language file ("de") is used.
package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// Loader keeps one message catalog per loaded text domain.
type Loader struct {
	mu      sync.RWMutex
	domains map[string]*domain
}

type domain struct {
	tag     language.Tag
	file    string
	count   int
	catalog *catalog.Builder
}

// NewLoader creates a loader with no domains.
func NewLoader() *Loader {
	return &Loader{domains: make(map[string]*domain)}
}

// ParseLocale converts a host locale ("pt_BR") to a language tag.
func ParseLocale(locale string) (language.Tag, error) {
	if locale == "" {
		return language.Und, errors.New("empty locale")
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return tag, nil
}

// LoadTextDomain loads translations for name from dir.
//
// Returns false with a nil error when no translation file exists for the
// locale; the domain then stays untranslated. A previously loaded domain is
// replaced.
func (l *Loader) LoadTextDomain(name, dir, locale string) (bool, error) {
	tag, err := ParseLocale(locale)
	if err != nil {
		return false, err
	}

	path, data, err := readFirst(candidates(name, dir, locale, tag))
	if err != nil {
		return false, fmt.Errorf("load text domain %q: %w", name, err)
	}
	if path == "" {
		slog.Debug("no translations found", "domain", name, "locale", locale, "dir", dir)
		return false, nil
	}

	var messages map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return false, fmt.Errorf("load text domain %q: parse %s: %w", name, path, err)
	}

	b := catalog.NewBuilder()
	for key, msg := range messages {
		if msg == "" {
			continue
		}
		if err := b.SetString(tag, key, msg); err != nil {
			return false, fmt.Errorf("load text domain %q: %s: %w", name, key, err)
		}
	}

	l.mu.Lock()
	l.domains[name] = &domain{tag: tag, file: path, count: len(messages), catalog: b}
	l.mu.Unlock()

	slog.Debug("text domain loaded", "domain", name, "locale", locale, "file", path, "messages", len(messages))
	return true, nil
}

func candidates(name, dir, locale string, tag language.Tag) []string {
	paths := []string{filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", name, locale))}
	if base, conf := tag.Base(); conf != language.No && base.String() != locale {
		paths = append(paths, filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", name, base.String())))
	}
	return paths
}

func readFirst(paths []string) (string, []byte, error) {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", nil, err
		}
		return p, data, nil
	}
	return "", nil, nil
}

// Unload drops a loaded domain. Returns false if it was not loaded.
func (l *Loader) Unload(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.domains[name]
	delete(l.domains, name)
	return ok
}

// IsLoaded reports whether translations for name are loaded.
func (l *Loader) IsLoaded(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.domains[name]
	return ok
}

// Printer returns a printer for name. Unloaded domains get an untranslated
// English printer.
func (l *Loader) Printer(name string) *message.Printer {
	l.mu.RLock()
	d, ok := l.domains[name]
	l.mu.RUnlock()

	if !ok {
		return message.NewPrinter(language.English, message.Catalog(catalog.NewBuilder()))
	}
	return message.NewPrinter(d.tag, message.Catalog(d.catalog))
}

// Translate formats msgid in domain name, falling back to msgid itself.
func (l *Loader) Translate(name, msgid string, args ...any) string {
	return l.Printer(name).Sprintf(msgid, args...)
}
