package theme

import "testing"

func TestThemeNameFollowsMode(t *testing.T) {
	if got := themeName(true); got != "azure dark" {
		t.Fatalf("dark: %q", got)
	}
	if got := themeName(false); got != "azure light" {
		t.Fatalf("light: %q", got)
	}
}

func TestCurrentPaletteFollowsMode(t *testing.T) {
	defer func(old bool) { darkMode = old }(darkMode)
	darkMode = false
	light := CurrentPalette()
	if light.AppBg != ColorBg || light.Text != ColorText {
		t.Fatalf("light palette %+v", light)
	}
	darkMode = true
	if dark := CurrentPalette(); dark.AppBg == light.AppBg || dark.Text == light.Text {
		t.Fatalf("dark palette matches light: %+v", dark)
	}
}
