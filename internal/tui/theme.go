package tui

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed themes.toml
var themesTOML []byte

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Palette is one named color set.
type Palette struct {
	Description string `toml:"description"`
	Primary     string `toml:"primary"`
	Secondary   string `toml:"secondary"`
	Accent      string `toml:"accent"`
	Text        string `toml:"text"`
	Muted       string `toml:"muted"`
	Surface     string `toml:"surface"`
	Success     string `toml:"success"`
	Warn        string `toml:"warn"`
	Error       string `toml:"error"`
	Bar         string `toml:"bar"`
}

// ThemesConfig holds all palette definitions
type ThemesConfig struct {
	Themes map[string]Palette `toml:"themes"`
}

// LoadPalettes parses the built-in palettes and overlays userFile, if set.
// Colors missing from the user file keep their built-in value.
func LoadPalettes(userFile string) (map[string]Palette, error) {
	var builtin ThemesConfig
	if err := toml.Unmarshal(themesTOML, &builtin); err != nil {
		return nil, fmt.Errorf("parsing themes.toml: %w", err)
	}
	if userFile == "" {
		return builtin.Themes, nil
	}

	data, err := os.ReadFile(userFile)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	var user ThemesConfig
	if err := toml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", userFile, err)
	}
	for name, p := range user.Themes {
		builtin.Themes[name] = builtin.Themes[name].merge(p)
	}
	return builtin.Themes, nil
}

func (p Palette) merge(o Palette) Palette {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	return Palette{
		Description: pick(p.Description, o.Description),
		Primary:     pick(p.Primary, o.Primary),
		Secondary:   pick(p.Secondary, o.Secondary),
		Accent:      pick(p.Accent, o.Accent),
		Text:        pick(p.Text, o.Text),
		Muted:       pick(p.Muted, o.Muted),
		Surface:     pick(p.Surface, o.Surface),
		Success:     pick(p.Success, o.Success),
		Warn:        pick(p.Warn, o.Warn),
		Error:       pick(p.Error, o.Error),
		Bar:         pick(p.Bar, o.Bar),
	}
}

// Styles are the lipgloss styles derived from one palette.
type Styles struct {
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	Error     lipgloss.Color
	Highlight lipgloss.Color

	Title       lipgloss.Style
	Header      lipgloss.Style
	Help        lipgloss.Style
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	Bar         lipgloss.Style
	BarLabel    lipgloss.Style
	Box         lipgloss.Style
	Separator   lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusOK    lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusError lipgloss.Style
	Spinner     lipgloss.Style
}

// PaletteFor picks the dark or light palette, falling back to any loaded
// one when the wanted theme is missing.
func PaletteFor(palettes map[string]Palette, dark bool) Palette {
	if p, ok := palettes[themeName(dark)]; ok {
		return p
	}
	for _, fallback := range palettes {
		return fallback
	}
	return Palette{}
}

func NewStyles(p Palette) Styles {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	return Styles{
		Muted:     c(p.Muted),
		Accent:    c(p.Accent),
		Error:     c(p.Error),
		Highlight: c(p.Warn),

		Title: lipgloss.NewStyle().
			Foreground(c(p.Text)).
			Background(c(p.Surface)).
			Bold(true).
			Padding(0, 2),
		Header:    lipgloss.NewStyle().Foreground(c(p.Secondary)).Bold(true),
		Help:      lipgloss.NewStyle().Foreground(c(p.Muted)).Italic(true),
		Text:      lipgloss.NewStyle().Foreground(c(p.Text)),
		MutedText: lipgloss.NewStyle().Foreground(c(p.Muted)),
		Bar:       lipgloss.NewStyle().Foreground(c(p.Bar)),
		BarLabel:  lipgloss.NewStyle().Foreground(c(p.Text)),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(p.Muted)).
			Padding(0, 1),
		Separator:   lipgloss.NewStyle().Foreground(c(p.Muted)),
		StatusInfo:  lipgloss.NewStyle().Foreground(c(p.Muted)),
		StatusOK:    lipgloss.NewStyle().Foreground(c(p.Success)),
		StatusWarn:  lipgloss.NewStyle().Foreground(c(p.Warn)),
		StatusError: lipgloss.NewStyle().Foreground(c(p.Error)).Bold(true),
		Spinner:     lipgloss.NewStyle().Foreground(c(p.Primary)),
	}
}

// themeName maps the dark flag to a palette name.
func themeName(dark bool) string {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}
