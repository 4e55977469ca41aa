package theme

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme. Sections
// left out of a file keep the colors of the base palette named by Mode.
type thTOMLTheme struct {
	Name    string        `toml:"name"`
	Mode    string        `toml:"mode"` // "light" or "dark"
	Base    thTOMLBase    `toml:"base"`
	Section thTOMLSection `toml:"section"`
	Stage   thTOMLStage   `toml:"stage"`
	Alert   thTOMLAlert   `toml:"alert"`
	Special thTOMLSpecial `toml:"special"`
}

type thTOMLBase struct {
	Background string `toml:"background,omitempty"`
	Foreground string `toml:"foreground,omitempty"`
	Dim        string `toml:"dim,omitempty"`
	Accent     string `toml:"accent,omitempty"`
}

type thTOMLSection struct {
	Border string `toml:"border,omitempty"`
	Title  string `toml:"title,omitempty"`
	Card   string `toml:"card,omitempty"`
}

type thTOMLStage struct {
	None string `toml:"none,omitempty"`
	Low  string `toml:"low,omitempty"`
	High string `toml:"high,omitempty"`
}

type thTOMLAlert struct {
	Error string `toml:"error,omitempty"`
	Info  string `toml:"info,omitempty"`
}

type thTOMLSpecial struct {
	Cursor         string `toml:"cursor,omitempty"`
	ButtonFG       string `toml:"button_fg,omitempty"`
	ButtonBG       string `toml:"button_bg,omitempty"`
	ButtonDisabled string `toml:"button_disabled,omitempty"`
	HelpKey        string `toml:"help_key,omitempty"`
	HelpDesc       string `toml:"help_desc,omitempty"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a TOML theme definition from raw bytes. The result
// starts from the built-in palette for its mode and overrides whatever the
// file sets.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt thTOMLTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	var t Theme
	switch tt.Mode {
	case Dark:
		t = thDarkTheme()
	case Light, "":
		t = thLightTheme()
	default:
		return Theme{}, fmt.Errorf("theme: invalid mode %q (expected light or dark)", tt.Mode)
	}
	if tt.Name != "" {
		t.Name = tt.Name
	}

	thOverride(&t.Background, tt.Base.Background)
	thOverride(&t.Foreground, tt.Base.Foreground)
	thOverride(&t.Dim, tt.Base.Dim)
	thOverride(&t.Accent, tt.Base.Accent)

	thOverride(&t.Border, tt.Section.Border)
	thOverride(&t.Title, tt.Section.Title)
	thOverride(&t.Card, tt.Section.Card)

	thOverride(&t.StageNone, tt.Stage.None)
	thOverride(&t.StageLow, tt.Stage.Low)
	thOverride(&t.StageHigh, tt.Stage.High)

	thOverride(&t.Error, tt.Alert.Error)
	thOverride(&t.Info, tt.Alert.Info)

	thOverride(&t.Cursor, tt.Special.Cursor)
	thOverride(&t.ButtonFG, tt.Special.ButtonFG)
	thOverride(&t.ButtonBG, tt.Special.ButtonBG)
	thOverride(&t.ButtonDisabled, tt.Special.ButtonDisabled)
	thOverride(&t.HelpKey, tt.Special.HelpKey)
	thOverride(&t.HelpDesc, tt.Special.HelpDesc)

	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadFile reads a TOML theme from path.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	return LoadFromTOML(data)
}

// SaveToTOML serializes a theme to TOML bytes.
func SaveToTOML(t Theme) ([]byte, error) {
	mode := Light
	if t.Dark {
		mode = Dark
	}
	tt := thTOMLTheme{
		Name: t.Name,
		Mode: mode,
		Base: thTOMLBase{
			Background: t.Background,
			Foreground: t.Foreground,
			Dim:        t.Dim,
			Accent:     t.Accent,
		},
		Section: thTOMLSection{
			Border: t.Border,
			Title:  t.Title,
			Card:   t.Card,
		},
		Stage: thTOMLStage{
			None: t.StageNone,
			Low:  t.StageLow,
			High: t.StageHigh,
		},
		Alert: thTOMLAlert{
			Error: t.Error,
			Info:  t.Info,
		},
		Special: thTOMLSpecial{
			Cursor:         t.Cursor,
			ButtonFG:       t.ButtonFG,
			ButtonBG:       t.ButtonBG,
			ButtonDisabled: t.ButtonDisabled,
			HelpKey:        t.HelpKey,
			HelpDesc:       t.HelpDesc,
		},
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tt); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

func thOverride(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// thValidateTheme checks that every color is a #RRGGBB hex value.
func thValidateTheme(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}
	colorFields := map[string]string{
		"base.background":         t.Background,
		"base.foreground":         t.Foreground,
		"base.dim":                t.Dim,
		"base.accent":             t.Accent,
		"section.border":          t.Border,
		"section.title":           t.Title,
		"section.card":            t.Card,
		"stage.none":              t.StageNone,
		"stage.low":               t.StageLow,
		"stage.high":              t.StageHigh,
		"alert.error":             t.Error,
		"alert.info":              t.Info,
		"special.cursor":          t.Cursor,
		"special.button_fg":       t.ButtonFG,
		"special.button_bg":       t.ButtonBG,
		"special.button_disabled": t.ButtonDisabled,
		"special.help_key":        t.HelpKey,
		"special.help_desc":       t.HelpDesc,
	}
	for field, value := range colorFields {
		if !thHexColorRegex.MatchString(value) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", value, field)
		}
	}
	return nil
}
