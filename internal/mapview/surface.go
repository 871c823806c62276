// Package mapview hosts the interactive map surface. The session controller
// only depends on the Surface contract: hand over a view, get a redraw.
package mapview

import "github.com/atlaschat/atlaschat/internal/models"

// Surface is the capability interface for a map rendering environment.
//
// A surface has a two-phase lifecycle: it is constructed unmounted and must
// not draw anything real until the hosting framework signals the interactive
// context is ready (Mount). A surface is mounted at most once; a logical
// session restart swaps in a whole new surface under a fresh token instead
// of re-targeting this one.
type Surface interface {
	// Mount attaches the surface to an interactive context of the given
	// size. Calling Mount on an already-mounted surface only resizes it.
	Mount(width, height int)
	Mounted() bool

	// Token identifies this surface instance. A changed token means the
	// widget must be rebuilt, never updated in place.
	Token() string

	// SetView hands over the resolved view for the latest response. The
	// surface re-centers only when epoch changes (edge-triggered), so
	// repeated renders of the same response never fight user panning.
	SetView(view models.MapView, epoch int)

	Resize(width, height int)
	Pan(dcols, drows int)
	Zoom(factor float64)
	Recenter()

	// Render draws the current viewport as terminal lines.
	Render() string
}
