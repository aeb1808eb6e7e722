package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

func TestThemeCatalog_ListIsOrdered(t *testing.T) {
	catalog := NewThemeCatalog()

	themes := catalog.List()
	require.Len(t, themes, 8)
	assert.Equal(t, "gradient_blue", themes[0].ID)
	assert.Equal(t, "gradient_gold", themes[len(themes)-1].ID)

	// Order must be stable between calls.
	again := catalog.List()
	for i := range themes {
		assert.Equal(t, themes[i].ID, again[i].ID)
	}
}

func TestThemeCatalog_Get(t *testing.T) {
	catalog := NewThemeCatalog()

	theme, err := catalog.Get("gradient_ocean")
	require.NoError(t, err)
	assert.Equal(t, "gradient_ocean", theme.ID)
	assert.Equal(t, domain.RGB{R: 0, G: 150, B: 136}, theme.Start)

	_, err = catalog.Get("gradient_lava")
	require.ErrorIs(t, err, domain.ErrUnknownTheme)
}
