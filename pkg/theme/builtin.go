package theme

// thRegisterBuiltins registers the light and dark palettes.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		thLightTheme(),
		thDarkTheme(),
	} {
		Register(t)
	}
}

// thLightTheme is the default palette: dark text on white with the
// lightning-yellow accent.
func thLightTheme() Theme {
	return Theme{
		Name:       Light,
		Dark:       false,
		Background: "#ffffff",
		Foreground: "#1f2937",
		Dim:        "#6b7280",
		Accent:     "#d97706",

		Border: "#d1d5db",
		Title:  "#111827",
		Card:   "#e5e7eb",

		StageNone: "#059669",
		StageLow:  "#d97706",
		StageHigh: "#dc2626",

		Error: "#dc2626",
		Info:  "#2563eb",

		Cursor:         "#d97706",
		ButtonFG:       "#ffffff",
		ButtonBG:       "#d97706",
		ButtonDisabled: "#9ca3af",
		HelpKey:        "#d97706",
		HelpDesc:       "#6b7280",
	}
}

// thDarkTheme is the dark mode palette.
func thDarkTheme() Theme {
	return Theme{
		Name:       Dark,
		Dark:       true,
		Background: "#121212",
		Foreground: "#e5e7eb",
		Dim:        "#9ca3af",
		Accent:     "#fbbf24",

		Border: "#374151",
		Title:  "#f9fafb",
		Card:   "#1f2937",

		StageNone: "#34d399",
		StageLow:  "#fbbf24",
		StageHigh: "#f87171",

		Error: "#f87171",
		Info:  "#60a5fa",

		Cursor:         "#fbbf24",
		ButtonFG:       "#121212",
		ButtonBG:       "#fbbf24",
		ButtonDisabled: "#4b5563",
		HelpKey:        "#fbbf24",
		HelpDesc:       "#9ca3af",
	}
}
