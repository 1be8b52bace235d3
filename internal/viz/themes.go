package viz

import (
	"image/color"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colours used for the track, the car and text. The same
// colours drive the terminal and GIF output.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Track      lipgloss.Color
	OnTrack    lipgloss.Color
	OffTrack   lipgloss.Color
	Trail      lipgloss.Color
	Text       lipgloss.Color
}

var (
	// ThemeClassic draws a blue track and a green or red car on black.
	ThemeClassic = Theme{
		Name:       "classic",
		Background: lipgloss.Color("#000000"),
		Track:      lipgloss.Color("#0000ff"),
		OnTrack:    lipgloss.Color("#00ff00"),
		OffTrack:   lipgloss.Color("#ff0000"),
		Trail:      lipgloss.Color("#888888"),
		Text:       lipgloss.Color("#ffffff"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Background: lipgloss.Color("#001100"),
		Track:      lipgloss.Color("#00cc00"),
		OnTrack:    lipgloss.Color("#88ff88"),
		OffTrack:   lipgloss.Color("#ffff00"),
		Trail:      lipgloss.Color("#005500"),
		Text:       lipgloss.Color("#00ff00"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Background: lipgloss.Color("#000000"),
		Track:      lipgloss.Color("#cccccc"),
		OnTrack:    lipgloss.Color("#0088ff"),
		OffTrack:   lipgloss.Color("#ffaa00"),
		Trail:      lipgloss.Color("#888888"),
		Text:       lipgloss.Color("#ffffff"),
	}
)

var themes = map[string]Theme{
	ThemeClassic.Name:    ThemeClassic,
	ThemeRetroGreen.Name: ThemeRetroGreen,
	ThemeMinimal.Name:    ThemeMinimal,
}

func GetTheme(name string) (Theme, bool) {
	th, ok := themes[name]
	return th, ok
}

func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextTheme cycles through themes in name order.
func NextTheme(current string) Theme {
	names := ThemeNames()
	for i, name := range names {
		if name == current {
			return themes[names[(i+1)%len(names)]]
		}
	}
	return themes[names[0]]
}

func (t Theme) InkColor(ink Ink) lipgloss.Color {
	switch ink {
	case InkTrack:
		return t.Track
	case InkOnTrack:
		return t.OnTrack
	case InkOffTrack:
		return t.OffTrack
	case InkTrail:
		return t.Trail
	default:
		return t.Background
	}
}

func (t Theme) InkStyle(ink Ink) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.InkColor(ink))
}

// Palette returns GIF colours indexed by Ink.
func (t Theme) Palette() color.Palette {
	inks := []Ink{InkNone, InkTrack, InkOnTrack, InkOffTrack, InkTrail}
	p := make(color.Palette, len(inks))
	for i, ink := range inks {
		r, g, b := parseHex(string(t.InkColor(ink)))
		p[i] = color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
	}
	return p
}
