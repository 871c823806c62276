package components

import (
	"fmt"
	"strings"

	"github.com/atlaschat/atlaschat/internal/locale"
	"github.com/atlaschat/atlaschat/internal/mapview"
	"github.com/atlaschat/atlaschat/internal/models"
	"github.com/atlaschat/atlaschat/ui/styles"
)

// RenderMap draws the map pane: the surface viewport inside a border, with
// a numbered legend matching the plotted marker glyphs. Until the surface
// is mounted only the placeholder is shown.
func RenderMap(surface mapview.Surface, view models.MapView, copy locale.Copy, width, height int, focused bool) string {
	pane := styles.MapPaneStyle(focused).Width(width - 2).Height(height - 2)

	if surface == nil || !surface.Mounted() {
		placeholder := styles.MapPlaceholderStyle().
			Width(width - 2).
			Height(height - 2).
			Render(copy.MapPlaceholder)
		return pane.Render(placeholder)
	}

	return pane.Render(surface.Render())
}

// RenderLegend lists the plotted markers under the map, numbered the same
// way the surface plots them.
func RenderLegend(view models.MapView, width int) string {
	legend := styles.MapLegendStyle()
	var b strings.Builder

	b.WriteString(legend.Render(view.Center.Label))
	for i, marker := range view.Markers {
		glyph := "•"
		if i < 9 {
			glyph = fmt.Sprintf("%d", i+1)
		}
		line := fmt.Sprintf("%s %s", glyph, truncate(marker.Name, width-6))
		b.WriteString("\n" + legend.Render(line))
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
