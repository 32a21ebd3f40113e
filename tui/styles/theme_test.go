package styles

import (
	"testing"
)

func TestGetThemeByName(t *testing.T) {
	theme := GetThemeByName("solarized-dark")
	if theme == nil {
		t.Fatal("GetThemeByName('solarized-dark') returned nil")
	}
	if theme.Name != "Solarized Dark" {
		t.Errorf("expected name 'Solarized Dark', got %q", theme.Name)
	}
}

func TestGetThemeByNameMissing(t *testing.T) {
	theme := GetThemeByName("nonexistent")
	if theme != nil {
		t.Error("expected nil for nonexistent theme")
	}
}

func TestListThemes(t *testing.T) {
	themes := ListThemes()
	if len(themes) < 8 {
		t.Errorf("expected at least 8 themes, got %d", len(themes))
	}
}

func TestNewStylesUsesTheme(t *testing.T) {
	theme := *GetThemeByName("nord")
	sty := NewStyles(theme)
	if got := sty.StatusDown.GetForeground(); got != theme.Base08 {
		t.Errorf("expected StatusDown foreground %v, got %v", theme.Base08, got)
	}
}

func TestListThemesSorted(t *testing.T) {
	themes := ListThemes()
	for i := 1; i < len(themes); i++ {
		if themes[i-1] >= themes[i] {
			t.Errorf("expected sorted slugs, got %q before %q", themes[i-1], themes[i])
		}
	}
}
