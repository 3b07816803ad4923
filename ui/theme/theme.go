package theme

// Palette and style setup for the SnapFFT window. InitStyles activates the
// base theme; SetDark switches between the light and dark palette.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
	_ "modernc.org/tk9.0/themes/azure" // registers "azure light" and "azure dark"
)

// Light palette.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, cards
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // image source buttons
	ColorDanger    = "#dc2626" // cancel
	ColorAccent    = "#10b981" // mode label
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:     "#0f172a",
			Surface:   "#1e293b",
			Border:    "#334155",
			Primary:   "#3b82f6",
			Danger:    "#ef4444",
			Accent:    "#10b981",
			Text:      "#f1f5f9",
			TextMuted: "#94a3b8",
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Border:    ColorBorder,
		Primary:   ColorPrimary,
		Danger:    ColorDanger,
		Accent:    ColorAccent,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// Style names for ttk widgets.
const (
	StyleCombobox = "snap.TCombobox"
)

var darkMode bool

// InitStyles (re)applies styles for the current darkMode value.
func InitStyles() { applyStyles(darkMode) }

// SetDark selects the palette and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(darkMode)
	return darkMode
}

func applyStyles(dark bool) {
	_ = ActivateTheme(themeName(dark))
	pal := CurrentPalette()
	App.Configure(Background(pal.AppBg))
	StyleConfigure(StyleCombobox,
		Foreground(pal.Text),
		Padding("2p 1p"),
	)
}

func themeName(dark bool) string {
	if dark {
		return "azure dark"
	}
	return "azure light"
}
