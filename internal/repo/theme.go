package repo

import (
	"github.com/tgienger/focusdash/internal/models"
)

// Themes persists the colour scheme as a bare string, not JSON
type Themes struct {
	store Store
	theme models.Theme
}

// OpenThemes loads the stored theme, defaulting to dark
func OpenThemes(s Store) (*Themes, error) {
	r := &Themes{store: s, theme: models.ThemeDark}
	raw, ok, err := s.Get(KeyTheme)
	if err != nil {
		return nil, err
	}
	if ok && models.Theme(raw) == models.ThemeLight {
		r.theme = models.ThemeLight
	}
	return r, nil
}

// Get returns the current theme
func (r *Themes) Get() models.Theme {
	return r.theme
}

// Set stores t
func (r *Themes) Set(t models.Theme) error {
	if t != models.ThemeDark && t != models.ThemeLight {
		return &ValidationError{Field: "theme", Message: "want dark or light"}
	}
	if err := r.store.Set(KeyTheme, string(t)); err != nil {
		return &PersistError{Key: KeyTheme, Err: err}
	}
	r.theme = t
	return nil
}

// Toggle switches between dark and light and returns the new theme
func (r *Themes) Toggle() (models.Theme, error) {
	next := r.theme.Opposite()
	if err := r.Set(next); err != nil {
		return r.theme, err
	}
	return next, nil
}
