package usecase

import (
	"fmt"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

// ThemeCatalog is the static registry of background themes. Iteration order
// is fixed so users always see the same offer sequence.
type ThemeCatalog struct {
	themes []domain.Theme
	index  map[string]int
}

func NewThemeCatalog() *ThemeCatalog {
	themes := []domain.Theme{
		{ID: "gradient_blue", Start: domain.RGB{R: 25, G: 118, B: 210}, End: domain.RGB{R: 66, G: 165, B: 245}, Label: "🔵 Osmon Ko'k"},
		{ID: "gradient_purple", Start: domain.RGB{R: 123, G: 31, B: 162}, End: domain.RGB{R: 206, G: 147, B: 216}, Label: "💜 Binafshayi Qizg'in"},
		{ID: "gradient_ocean", Start: domain.RGB{R: 0, G: 150, B: 136}, End: domain.RGB{R: 0, G: 188, B: 212}, Label: "🌊 Okean Suv"},
		{ID: "gradient_sunset", Start: domain.RGB{R: 255, G: 87, B: 34}, End: domain.RGB{R: 255, G: 193, B: 7}, Label: "🌅 Quyosh Botish"},
		{ID: "gradient_forest", Start: domain.RGB{R: 27, G: 94, B: 32}, End: domain.RGB{R: 76, G: 175, B: 80}, Label: "🌲 O'rmon Sabz"},
		{ID: "gradient_night", Start: domain.RGB{R: 33, G: 33, B: 33}, End: domain.RGB{R: 97, G: 97, B: 97}, Label: "🌙 Tun Qorasi"},
		{ID: "gradient_pink", Start: domain.RGB{R: 233, G: 30, B: 99}, End: domain.RGB{R: 244, G: 67, B: 54}, Label: "💗 Qizg'in Pushti"},
		{ID: "gradient_gold", Start: domain.RGB{R: 184, G: 134, B: 11}, End: domain.RGB{R: 255, G: 215, B: 0}, Label: "✨ Oltin Nur"},
	}

	index := make(map[string]int, len(themes))
	for i, theme := range themes {
		index[theme.ID] = i
	}
	return &ThemeCatalog{themes: themes, index: index}
}

// List returns every theme in catalog order. The returned slice is shared;
// callers must not modify it.
func (c *ThemeCatalog) List() []domain.Theme {
	return c.themes
}

func (c *ThemeCatalog) Get(id string) (domain.Theme, error) {
	const op = "usecase.ThemeCatalog.Get"

	i, ok := c.index[id]
	if !ok {
		return domain.Theme{}, fmt.Errorf("%s: %q: %w", op, id, domain.ErrUnknownTheme)
	}
	return c.themes[i], nil
}
