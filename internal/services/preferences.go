package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrInvalidTheme is returned for themes other than light and dark.
var ErrInvalidTheme = errors.New("invalid theme")

// Preferences are the display settings handed to the presentation layer at
// startup.
type Preferences struct {
	Theme       string
	DisplayName string
}

// Dark reports whether the dark palette is active.
func (p Preferences) Dark() bool {
	return p.Theme == ThemeDark
}

// PreferenceStore persists plain-text preferences.
type PreferenceStore interface {
	Preference(ctx context.Context, key string) (string, bool)
	SetPreference(ctx context.Context, key, value string) error
}

type PreferencesService struct {
	store    PreferenceStore
	defaults Preferences
	logger   *log.Logger
}

// NewPreferencesService uses defaults for values never saved. An invalid
// default theme falls back to light.
func NewPreferencesService(store PreferenceStore, defaults Preferences, logger *log.Logger) *PreferencesService {
	if logger == nil {
		logger = log.Discard()
	}
	if !validTheme(defaults.Theme) {
		defaults.Theme = ThemeLight
	}
	return &PreferencesService{store: store, defaults: defaults, logger: logger.WithComponent(log.ComponentSettings)}
}

// Load returns the saved preferences merged over the defaults. Unknown saved
// themes are ignored.
func (s *PreferencesService) Load(ctx context.Context) Preferences {
	p := s.defaults
	if theme, ok := s.store.Preference(ctx, storage.ThemeKey); ok {
		if validTheme(theme) {
			p.Theme = theme
		} else {
			s.logger.WarnContext(ctx, "Ignoring unknown saved theme", log.FieldKey, storage.ThemeKey, "theme", theme)
		}
	}
	if name, ok := s.store.Preference(ctx, storage.UserNameKey); ok && strings.TrimSpace(name) != "" {
		p.DisplayName = name
	}
	return p
}

func (s *PreferencesService) SetTheme(ctx context.Context, theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if !validTheme(theme) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	if err := s.store.SetPreference(ctx, storage.ThemeKey, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// ToggleTheme switches between light and dark and returns the new theme.
func (s *PreferencesService) ToggleTheme(ctx context.Context) (string, error) {
	next := ThemeDark
	if s.Load(ctx).Dark() {
		next = ThemeLight
	}
	return next, s.SetTheme(ctx, next)
}

func (s *PreferencesService) SetDisplayName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrEmptyName
	}
	if err := s.store.SetPreference(ctx, storage.UserNameKey, name); err != nil {
		return fmt.Errorf("save display name: %w", err)
	}
	return nil
}

func validTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}
