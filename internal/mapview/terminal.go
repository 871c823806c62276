package mapview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atlaschat/atlaschat/internal/models"
)

const (
	defaultSpanLat = 0.08
	minSpanLat     = 0.002
	maxSpanLat     = 20.0
	// A terminal cell is roughly twice as tall as wide, so one row covers
	// about two columns worth of degrees.
	cellAspect = 0.5
)

var (
	markerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	crosshairStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	latticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
)

// TerminalMap draws markers on a character grid using an equirectangular
// projection around the view center. It is the Surface adapter for the
// terminal rendering environment.
type TerminalMap struct {
	token   string
	mounted bool
	width   int
	height  int

	view      models.MapView
	lastEpoch int

	// Viewport, degrees. centerLat/centerLon include user panning and are
	// reset when a new epoch arrives.
	centerLat float64
	centerLon float64
	spanLat   float64
}

func NewTerminalMap(token string) *TerminalMap {
	return &TerminalMap{
		token:     token,
		lastEpoch: -1,
		spanLat:   defaultSpanLat,
	}
}

func (m *TerminalMap) Mount(width, height int) {
	if m.mounted {
		m.Resize(width, height)
		return
	}
	m.mounted = true
	m.width = width
	m.height = height
}

func (m *TerminalMap) Mounted() bool { return m.mounted }

func (m *TerminalMap) Token() string { return m.token }

func (m *TerminalMap) SetView(view models.MapView, epoch int) {
	m.view = view
	if epoch != m.lastEpoch {
		m.lastEpoch = epoch
		m.Recenter()
	}
}

func (m *TerminalMap) Resize(width, height int) {
	if width > 0 {
		m.width = width
	}
	if height > 0 {
		m.height = height
	}
}

// Pan shifts the viewport by grid cells.
func (m *TerminalMap) Pan(dcols, drows int) {
	latPerRow, lonPerCol := m.degreesPerCell()
	m.centerLat += float64(drows) * latPerRow
	m.centerLon += float64(dcols) * lonPerCol
	m.centerLat = clamp(m.centerLat, -85, 85)
}

func (m *TerminalMap) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	m.spanLat = clamp(m.spanLat*factor, minSpanLat, maxSpanLat)
}

// Recenter snaps the viewport back onto the view center and widens the span
// until every marker fits.
func (m *TerminalMap) Recenter() {
	m.centerLat = m.view.Center.Lat
	m.centerLon = m.view.Center.Lon
	m.spanLat = defaultSpanLat

	for _, marker := range m.view.Markers {
		needLat := math.Abs(marker.Lat-m.centerLat) * 2.4
		needLon := math.Abs(marker.Lon-m.centerLon) * 2.4 *
			cellAspect * math.Cos(m.centerLat*math.Pi/180)
		if needLat > m.spanLat {
			m.spanLat = needLat
		}
		if needLon > m.spanLat {
			m.spanLat = needLon
		}
	}
	m.spanLat = clamp(m.spanLat, minSpanLat, maxSpanLat)
}

func (m *TerminalMap) degreesPerCell() (latPerRow, lonPerCol float64) {
	h := m.height
	if h < 1 {
		h = 1
	}
	latPerRow = m.spanLat / float64(h)
	cosLat := math.Cos(m.centerLat * math.Pi / 180)
	if cosLat < 0.05 {
		cosLat = 0.05
	}
	lonPerCol = latPerRow * cellAspect / cosLat
	return latPerRow, lonPerCol
}

// Render draws the viewport. Unmounted surfaces draw nothing; the hosting
// component shows its placeholder instead.
func (m *TerminalMap) Render() string {
	if !m.mounted || m.width < 3 || m.height < 2 {
		return ""
	}

	type cell struct {
		r     rune
		style *lipgloss.Style
	}
	grid := make([][]cell, m.height)
	for row := range grid {
		grid[row] = make([]cell, m.width)
		for col := range grid[row] {
			grid[row][col] = cell{r: ' '}
			if row%3 == 1 && col%6 == 2 {
				grid[row][col] = cell{r: '·', style: &latticeStyle}
			}
		}
	}

	// Crosshair at the view center, drawn under the markers.
	if row, col, ok := m.project(m.centerLat, m.centerLon); ok {
		grid[row][col] = cell{r: '+', style: &crosshairStyle}
	}

	for i, marker := range m.view.Markers {
		row, col, ok := m.project(marker.Lat, marker.Lon)
		if !ok {
			continue
		}
		glyph := '•'
		if i < 9 {
			glyph = rune('1' + i)
		}
		grid[row][col] = cell{r: glyph, style: &markerStyle}
	}

	var b strings.Builder
	for row := range grid {
		for col := range grid[row] {
			c := grid[row][col]
			if c.style != nil {
				b.WriteString(c.style.Render(string(c.r)))
			} else {
				b.WriteRune(c.r)
			}
		}
		if row < m.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// project maps a coordinate to a grid position, reporting visibility.
func (m *TerminalMap) project(lat, lon float64) (row, col int, ok bool) {
	latPerRow, lonPerCol := m.degreesPerCell()
	row = m.height/2 - int(math.Round((lat-m.centerLat)/latPerRow))
	col = m.width/2 + int(math.Round((lon-m.centerLon)/lonPerCol))
	if row < 0 || row >= m.height || col < 0 || col >= m.width {
		return 0, 0, false
	}
	return row, col, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
