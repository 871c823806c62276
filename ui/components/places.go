package components

import (
	"fmt"
	"strings"

	"github.com/atlaschat/atlaschat/internal/locale"
	"github.com/atlaschat/atlaschat/internal/models"
	"github.com/atlaschat/atlaschat/ui/styles"
)

// RenderPlaces lists every place from the latest response, including the
// ones without coordinates; those are dimmed and annotated instead of
// dropped, only the map excludes them.
func RenderPlaces(places []models.Place, copy locale.Copy, width, maxRows int) string {
	if len(places) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.PlacesTitleStyle().Render(copy.PlacesTitle))

	rows := len(places)
	if maxRows > 0 && rows > maxRows {
		rows = maxRows
	}
	for i := 0; i < rows; i++ {
		p := places[i]
		line := truncate(p.Name, width-8)
		if p.Renderable() {
			b.WriteString("\n" + styles.PlaceStyle().Render(line))
		} else {
			b.WriteString("\n" + styles.PlaceDimStyle().Render(
				fmt.Sprintf("%s (%s)", line, copy.PlaceNoCoords)))
		}
	}
	if rows < len(places) {
		b.WriteString("\n" + styles.PlaceDimStyle().Render(
			fmt.Sprintf("… +%d", len(places)-rows)))
	}
	return b.String()
}
