// Package theme defines the dashboard's light and dark color palettes. Dark
// mode is the only display preference; switching it swaps the palette.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Built-in theme names.
const (
	Light = "light"
	Dark  = "dark"
)

// Theme defines the complete color palette for the dashboard.
type Theme struct {
	Name string
	Dark bool

	// Base colors
	Background string // hex color e.g. "#1a1b26"
	Foreground string
	Dim        string // secondary text
	Accent     string // logo, headings, focused input

	// Section colors
	Border string // section borders
	Title  string // section headings
	Card   string // schedule card borders

	// Stage colors
	StageNone string // stage 0: no loadshedding
	StageLow  string // stages 1-3
	StageHigh string // stage 4 and above

	// Alert colors
	Error string
	Info  string

	// Special
	Cursor         string // result list cursor
	ButtonFG       string
	ButtonBG       string
	ButtonDisabled string
	HelpKey        string // keybinding highlight color
	HelpDesc       string // help description color
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegisterBuiltins()
}

// Get returns a named theme, falling back to Light if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry[Light]
}

// ForMode returns the registered palette for the dark mode flag.
func ForMode(dark bool) Theme {
	if dark {
		return Get(Dark)
	}
	return Get(Light)
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a theme under its lowercase name. Registering a
// theme named "light" or "dark" overrides that built-in.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}

// Reset restores the built-in registry, dropping registered overrides.
func Reset() {
	mu.Lock()
	registry = map[string]Theme{}
	mu.Unlock()
	thRegisterBuiltins()
}

// StageColor returns the color used to render a national or event stage.
func (t Theme) StageColor(stage int) string {
	switch {
	case stage <= 0:
		return t.StageNone
	case stage < 4:
		return t.StageLow
	default:
		return t.StageHigh
	}
}
