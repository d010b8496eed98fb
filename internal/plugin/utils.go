package plugin

import (
	"log/slog"
	"path/filepath"
)

// Utils is the shared helper handle collaborators reach through the Plugin.
type Utils struct {
	dir    string
	logger *slog.Logger
}

func newUtils(dir string, logger *slog.Logger) *Utils {
	return &Utils{dir: dir, logger: logger}
}

// Dir returns the plugin directory.
func (u *Utils) Dir() string {
	return u.dir
}

// Path joins elem onto the plugin directory.
func (u *Utils) Path(elem ...string) string {
	return filepath.Join(append([]string{u.dir}, elem...)...)
}

// LanguagesDir returns the directory translation files are loaded from.
func (u *Utils) LanguagesDir() string {
	return u.Path("languages")
}

// AssetPath returns the path of a built asset under dist/.
func (u *Utils) AssetPath(name string) string {
	return u.Path("dist", name)
}

// Logger returns the plugin logger.
func (u *Utils) Logger() *slog.Logger {
	return u.logger
}
