// Package services – SettingsService
//
// SettingsService keeps the accent theme chosen by the client. It lives
// beside the contact store rather than inside it and is persisted under its
// own blob key with the same best-effort semantics.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/tbourn/neolink-backend/internal/repo"
)

// Theme is the active accent: a preset name and its color.
type Theme struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

// ThemeCustom is the preset name of a user-picked color.
const ThemeCustom = "custom"

var presets = []Theme{
	{Type: "aqua", Color: "#00ffff"},
	{Type: "purple", Color: "#bc13fe"},
	{Type: "pink", Color: "#ff007f"},
	{Type: "emerald", Color: "#50ffb1"},
	{Type: ThemeCustom, Color: "#ffffff"},
}

var hexColorRE = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Presets returns the selectable themes in display order.
func Presets() []Theme {
	return append([]Theme(nil), presets...)
}

// DefaultTheme is the theme used before anything is chosen.
func DefaultTheme() Theme { return presets[0] }

// SettingsService stores the theme.
type SettingsService struct {
	Blobs BlobStore
	Key   string

	mu    sync.RWMutex
	theme Theme
}

// NewSettingsService returns a service with the default theme.
func NewSettingsService(blobs BlobStore, key string) *SettingsService {
	return &SettingsService{Blobs: blobs, Key: key, theme: DefaultTheme()}
}

// Load reads the persisted theme. Absent or invalid values keep the default.
func (s *SettingsService) Load(ctx context.Context) error {
	raw, err := s.Blobs.Get(ctx, s.Key)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var t Theme
	if json.Unmarshal(raw, &t) != nil {
		return nil
	}
	if t, err = resolve(t.Type, t.Color); err != nil {
		return nil
	}
	s.mu.Lock()
	s.theme = t
	s.mu.Unlock()
	return nil
}

// Theme returns the active theme.
func (s *SettingsService) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetPreset activates a named preset. "custom" keeps the current custom
// color when one is active.
func (s *SettingsService) SetPreset(ctx context.Context, name string) (Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == ThemeCustom {
		if cur := s.Theme(); cur.Type == ThemeCustom {
			return s.set(ctx, cur)
		}
	}
	t, err := resolve(name, "")
	if err != nil {
		return Theme{}, err
	}
	return s.set(ctx, t)
}

// SetCustom activates a custom #rrggbb color.
func (s *SettingsService) SetCustom(ctx context.Context, color string) (Theme, error) {
	if strings.TrimSpace(color) == "" {
		return Theme{}, fmt.Errorf("%w: color is required", ErrInvalidTheme)
	}
	t, err := resolve(ThemeCustom, color)
	if err != nil {
		return Theme{}, err
	}
	return s.set(ctx, t)
}

func (s *SettingsService) set(ctx context.Context, t Theme) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t

	b, err := json.Marshal(t)
	if err != nil {
		return t, fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}
	if err := s.Blobs.Put(ctx, s.Key, b); err != nil {
		return t, fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return t, nil
}

// resolve validates a (type, color) pair. Presets other than custom always
// use their fixed color; custom requires a #rrggbb color unless color is
// empty, in which case the custom default is used.
func resolve(typ, color string) (Theme, error) {
	typ = strings.ToLower(strings.TrimSpace(typ))
	color = strings.TrimSpace(color)
	for _, p := range presets {
		if p.Type != typ {
			continue
		}
		if typ != ThemeCustom || color == "" {
			return p, nil
		}
		if !hexColorRE.MatchString(color) {
			return Theme{}, fmt.Errorf("%w: color %q is not #rrggbb", ErrInvalidTheme, color)
		}
		return Theme{Type: ThemeCustom, Color: strings.ToLower(color)}, nil
	}
	return Theme{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidTheme, typ)
}
