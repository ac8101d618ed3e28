package concierge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractThemes(t *testing.T) {
	t.Run("matches keywords onto catalog labels", func(t *testing.T) {
		themes := ExtractThemes("we love design and some sauna time")
		assert.Equal(t, []string{ThemeDesign, ThemeNature}, themes)
	})

	t.Run("matches the full label verbatim", func(t *testing.T) {
		themes := ExtractThemes("Culinary & Storytelling please")
		assert.Equal(t, []string{ThemeCulinary}, themes)
	})

	t.Run("is case insensitive", func(t *testing.T) {
		themes := ExtractThemes("ART and NIGHTLIFE")
		assert.Equal(t, []string{ThemeArt, ThemeNightlife}, themes)
	})

	t.Run("selection follows catalog order not input order", func(t *testing.T) {
		themes := ExtractThemes("wellness first, then design")
		assert.Equal(t, []string{ThemeDesign, ThemeNature}, themes)
	})

	t.Run("selects each theme at most once", func(t *testing.T) {
		themes := ExtractThemes("spa, sauna, forest, lake")
		assert.Equal(t, []string{ThemeNature}, themes)
	})

	t.Run("falls back to splitting unmatched input", func(t *testing.T) {
		themes := ExtractThemes("volcanoes, glaciers and geysers")
		assert.Equal(t, []string{"volcanoes", "glaciers", "geysers"}, themes)
	})

	t.Run("splits on slashes and ampersands too", func(t *testing.T) {
		themes := ExtractThemes("fjords / auroras & puffins")
		assert.Equal(t, []string{"fjords", "auroras", "puffins"}, themes)
	})

	t.Run("returns unmatched unsplittable input as a single element", func(t *testing.T) {
		themes := ExtractThemes("birdwatching")
		assert.Equal(t, []string{"birdwatching"}, themes)
	})

	t.Run("returns nil for whitespace-only input", func(t *testing.T) {
		assert.Nil(t, ExtractThemes("   "))
		assert.Nil(t, ExtractThemes(""))
	})
}
