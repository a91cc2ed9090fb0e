package selection

import (
	"math"

	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// Geometry is the slice of the coordinate mapper the navigator needs.
type Geometry interface {
	// VisibleWindow returns the [fromTick, toTick) range currently on screen.
	VisibleWindow() (int, int)
	// EventPoint returns the display coordinates of an event, ok=false when
	// the event has no on-screen position.
	EventPoint(ev *song.Event) (x, y int, ok bool)
}

// Navigator moves the selection in a screen direction using angular/distance
// scoring. It is stateless: every call reads the current selection and the
// visible slice of the document.
type Navigator struct {
	sel *Manager
	geo Geometry
}

// NewNavigator creates a navigator over the given selection.
func NewNavigator(sel *Manager, geo Geometry) *Navigator {
	return &Navigator{sel: sel, geo: geo}
}

// Screen-convention direction angles in degrees.
const (
	angleRight = 0
	angleUp    = 90
	angleLeft  = 180
	angleDown  = 270
)

func (n *Navigator) Up(s *song.Song) bool    { return n.Navigate(s, angleUp) }
func (n *Navigator) Down(s *song.Song) bool  { return n.Navigate(s, angleDown) }
func (n *Navigator) Left(s *song.Song) bool  { return n.Navigate(s, angleLeft) }
func (n *Navigator) Right(s *song.Song) bool { return n.Navigate(s, angleRight) }

// Navigate moves the selection toward directionDeg (screen convention: 0 is
// right, 90 is up). The origin is the first selected event; candidates of a
// different kind or with zero display distance are skipped; the remaining
// candidates are scored by pixel distance weighted with an angular penalty,
// and the minimum-score candidate is selected exclusively. Returns false when
// nothing qualifies.
func (n *Navigator) Navigate(s *song.Song, directionDeg float64) bool {
	origin := n.sel.First()
	if origin == nil {
		return false
	}
	ox, oy, ok := n.geo.EventPoint(origin)
	if !ok {
		return false
	}

	from, to := n.geo.VisibleWindow()
	target := directionDeg * math.Pi / 180

	var best *song.Event
	bestScore := math.Inf(1)

	for _, cand := range s.EventsBetween(from, to) {
		if cand == origin || cand.Kind != origin.Kind {
			continue
		}
		x, y, ok := n.geo.EventPoint(cand)
		if !ok {
			continue
		}
		dx := float64(x - ox)
		dy := float64(oy - y) // screen y grows downward, flip to math convention
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			continue
		}

		diff := angularDiff(math.Atan2(dy, dx), target)
		if diff > math.Pi/4 {
			// off-axis or behind; every direction keeps its own quadrant
			continue
		}
		score := dist * (1 + 4*diff*diff)
		if score < bestScore {
			bestScore = score
			best = cand
		}
	}

	if best == nil {
		return false
	}
	n.sel.Add(best, true)
	return true
}

// angularDiff returns the absolute difference between two angles in [0, pi].
func angularDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
