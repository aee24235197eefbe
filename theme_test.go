package main

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeJsonRoundTrip(t *testing.T) {
	table := ThemeColors
	table[ColorFishBody] = color.NRGBA{1, 2, 3, 4}

	jsonBytes, err := ThemeToJson(table)
	require.NoError(t, err)

	back, err := ThemeFromJson(jsonBytes)
	require.NoError(t, err)

	assert.Equal(t, table, back)
}

func TestThemeFromJsonAcceptsCssColors(t *testing.T) {
	back, err := ThemeFromJson([]byte(`{
        "Bg": "rebeccapurple",
        "FishBody": "rgb(10, 20, 30)",
        "NoSuchColor": "#FFFFFF"
    }`))
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{102, 51, 153, 255}, back[ColorBg])
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, back[ColorFishBody])
	// unknown names are skipped, known ones not present keep defaults
	assert.Equal(t, ThemeColors[ColorOverlayText], back[ColorOverlayText])
}

func TestThemeFromJsonSkipsBadColors(t *testing.T) {
	back, err := ThemeFromJson([]byte(`{"Bg": "not a color"}`))
	require.NoError(t, err)
	assert.Equal(t, ThemeColors[ColorBg], back[ColorBg],
		"an unparsable color must leave the default in place")
}

func TestThemeColorIndexNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := ThemeColorIndex(0); i < ThemeColorSize; i++ {
		name := i.String()
		require.NotEqual(t, "Unknown", name, "index %v has no name", int(i))
		require.False(t, seen[name], "duplicate name %v", name)
		seen[name] = true
	}
}
