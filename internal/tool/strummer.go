package tool

import (
	"math"
	"sort"

	"github.com/Meowchestra/MidiEditor-sub001/internal/core/history"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// StrummerTool spreads simultaneous notes into strums. Selected notes are
// grouped into time-overlap clusters (chords); within each cluster the notes
// are ordered by pitch and each gets a time and velocity offset following
//
//	offset = strength * (index/(count-1))^(2^tension)
//
// Tension 0 is linear, positive tension accelerates toward the end of the
// cluster, negative decelerates. The sign of the strength picks the strum
// direction (positive strums upward). A single-shot batch operator: a press
// applies the configured parameters as one action.
type StrummerTool struct {
	eventTool
	strengthMs     float64 // signed, milliseconds
	tension        float64
	velocitySpread int  // added to the last note of each cluster, ramped
	alternate      bool // flip direction on every other cluster
}

// NewStrummerTool creates a strummer with a gentle upward default.
func NewStrummerTool(env *Env) *StrummerTool {
	return &StrummerTool{eventTool: newEventTool(env, "strummer"), strengthMs: 30}
}

// Configure sets the strum parameters.
func (t *StrummerTool) Configure(strengthMs, tension float64, velocitySpread int, alternate bool) {
	t.strengthMs = strengthMs
	t.tension = tension
	t.velocitySpread = velocitySpread
	t.alternate = alternate
}

func (t *StrummerTool) Press(primary bool, x, y int) bool {
	return t.Apply() > 0
}

// Apply strums the selected notes and returns how many were shifted.
func (t *StrummerTool) Apply() int {
	notes := t.selectedNotes()
	if len(notes) < 2 {
		return 0
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].Tick < notes[j].Tick })

	t.env.History.StartAction("strum chords")
	changed := 0

	up := t.strengthMs >= 0
	exponent := math.Pow(2, t.tension)

	for ci, cluster := range clusters(notes) {
		if len(cluster) < 2 {
			continue
		}
		ascending := up
		if t.alternate && ci%2 == 1 {
			ascending = !ascending
		}
		sort.SliceStable(cluster, func(i, j int) bool {
			if ascending {
				return cluster[i].Note < cluster[j].Note
			}
			return cluster[i].Note > cluster[j].Note
		})

		n := len(cluster)
		for i, on := range cluster {
			factor := math.Pow(float64(i)/float64(n-1), exponent)
			dt := t.env.Song.MsToTicks(math.Abs(t.strengthMs)*factor, on.Tick)
			dv := int(math.Round(float64(t.velocitySpread) * factor))
			if dt == 0 && dv == 0 {
				continue
			}
			t.captureWithTrack(on)
			if dt != 0 {
				newTick := on.Tick + dt
				if newTick >= on.Partner.Tick {
					newTick = on.Partner.Tick - 1
				}
				on.Tick = newTick
			}
			if dv != 0 {
				vel := int(on.Velocity) + dv
				if vel < 1 {
					vel = 1
				}
				if vel > 127 {
					vel = 127
				}
				on.Velocity = uint8(vel)
			}
			changed++
		}
	}

	if changed > 0 {
		t.resortTracks()
		t.env.Song.SetModified(true)
	}
	t.env.History.EndAction()
	return changed
}

// clusters groups tick-sorted notes into time-overlap chords: a note joins
// the current cluster while it starts before the cluster's running end.
func clusters(notes []*song.Event) [][]*song.Event {
	var out [][]*song.Event
	var cur []*song.Event
	end := math.MinInt

	for _, on := range notes {
		if len(cur) > 0 && on.Tick >= end {
			out = append(out, cur)
			cur = nil
			end = math.MinInt
		}
		cur = append(cur, on)
		if off := on.Partner.Tick; off > end {
			end = off
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Snapshot captures the strum parameters.
func (t *StrummerTool) Snapshot() history.Snapshot {
	return &strummerSnapshot{
		target:         t,
		strengthMs:     t.strengthMs,
		tension:        t.tension,
		velocitySpread: t.velocitySpread,
		alternate:      t.alternate,
	}
}

type strummerSnapshot struct {
	target         *StrummerTool
	strengthMs     float64
	tension        float64
	velocitySpread int
	alternate      bool
}

func (s *strummerSnapshot) Restore() {
	s.target.strengthMs = s.strengthMs
	s.target.tension = s.tension
	s.target.velocitySpread = s.velocitySpread
	s.target.alternate = s.alternate
	s.target.reset()
}
