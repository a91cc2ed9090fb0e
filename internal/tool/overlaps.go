package tool

import (
	"fmt"
	"sort"

	"github.com/Meowchestra/MidiEditor-sub001/internal/core/history"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// OverlapMode selects which overlap-deletion algorithm runs.
type OverlapMode int

const (
	OverlapMono    OverlapMode = iota // equal pitch: keep the longer, clip or delete the shorter
	OverlapPoly                       // any pitch: clip so the set becomes monophonic
	OverlapDoubles                    // remove exact duplicates
)

func (m OverlapMode) String() string {
	switch m {
	case OverlapMono:
		return "mono"
	case OverlapPoly:
		return "poly"
	case OverlapDoubles:
		return "doubles"
	}
	return "unknown"
}

// DeleteOverlapsTool is a single-shot batch operator: a press applies the
// configured mode to the selected notes (or the whole song when nothing is
// selected) as one action. Mode and scoping flags are undoable tool
// configuration.
type DeleteOverlapsTool struct {
	eventTool
	mode        OverlapMode
	sameChannel bool
	sameTrack   bool
}

// NewDeleteOverlapsTool creates the tool in mono mode with scoping off.
func NewDeleteOverlapsTool(env *Env) *DeleteOverlapsTool {
	return &DeleteOverlapsTool{eventTool: newEventTool(env, "remove overlaps")}
}

// Configure sets the mode and scoping flags.
func (t *DeleteOverlapsTool) Configure(mode OverlapMode, sameChannel, sameTrack bool) {
	t.mode = mode
	t.sameChannel = sameChannel
	t.sameTrack = sameTrack
}

// Mode returns the configured overlap mode.
func (t *DeleteOverlapsTool) Mode() OverlapMode { return t.mode }

func (t *DeleteOverlapsTool) Press(primary bool, x, y int) bool {
	return t.Apply() > 0
}

// Apply runs the configured algorithm and returns how many notes were
// deleted or clipped.
func (t *DeleteOverlapsTool) Apply() int {
	notes := t.selectedNotes()
	if len(notes) == 0 {
		notes = t.env.Song.Notes()
	}

	t.env.History.StartAction("remove overlaps")
	var changed int
	switch t.mode {
	case OverlapMono:
		changed = t.applyMono(notes)
	case OverlapPoly:
		changed = t.applyPoly(notes)
	case OverlapDoubles:
		changed = t.applyDoubles(notes)
	}
	if changed > 0 {
		t.resortTracks()
		t.env.Song.SetModified(true)
	}
	t.env.History.EndAction()
	return changed
}

// groupKey buckets notes according to the mode and scoping flags.
func (t *DeleteOverlapsTool) groupKey(on *song.Event, withPitch bool) string {
	key := ""
	if withPitch {
		key = fmt.Sprintf("p%d", on.Note)
	}
	if t.sameChannel {
		key += fmt.Sprintf("c%d", on.Channel)
	}
	if t.sameTrack {
		key += fmt.Sprintf("t%d", on.Track)
	}
	return key
}

func (t *DeleteOverlapsTool) groups(notes []*song.Event, withPitch bool) [][]*song.Event {
	byKey := make(map[string][]*song.Event)
	var order []string
	for _, on := range notes {
		k := t.groupKey(on, withPitch)
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], on)
	}
	out := make([][]*song.Event, 0, len(order))
	for _, k := range order {
		g := byKey[k]
		sort.SliceStable(g, func(i, j int) bool { return g[i].Tick < g[j].Tick })
		out = append(out, g)
	}
	return out
}

func (t *DeleteOverlapsTool) deleteNote(on *song.Event) {
	if trk := t.env.Song.TrackOf(on); trk != nil {
		t.env.History.Capture(trk)
		trk.Remove(on)
		if on.Partner != nil {
			trk.Remove(on.Partner)
		}
	}
	t.env.Selection.Remove(on)
	if on.Partner != nil {
		t.env.Selection.Remove(on.Partner)
	}
}

// applyMono keeps the longer of two overlapping equal-pitch notes and clips
// or deletes the shorter.
func (t *DeleteOverlapsTool) applyMono(notes []*song.Event) int {
	changed := 0
	for _, group := range t.groups(notes, true) {
		var cur *song.Event
		for _, n := range group {
			if cur == nil || n.Tick >= cur.Partner.Tick {
				cur = n
				continue
			}
			longer, shorter := cur, n
			if n.Duration() > cur.Duration() {
				longer, shorter = n, cur
			}
			if shorter.Tick >= longer.Tick && shorter.Partner.Tick <= longer.Partner.Tick {
				// fully contained
				t.deleteNote(shorter)
			} else if shorter.Tick < longer.Tick {
				// shorter sticks out on the left, clip its tail
				t.env.History.Capture(shorter.Partner)
				shorter.Partner.Tick = longer.Tick
				if shorter.Partner.Tick <= shorter.Tick {
					t.deleteNote(shorter)
				}
			} else {
				// shorter sticks out on the right, clip its head
				t.env.History.Capture(shorter)
				shorter.Tick = longer.Partner.Tick
				if shorter.Tick >= shorter.Partner.Tick {
					t.deleteNote(shorter)
				}
			}
			changed++
			cur = longer
		}
	}
	return changed
}

// applyPoly clips every note at the start of the next one so the scoped set
// becomes monophonic in time.
func (t *DeleteOverlapsTool) applyPoly(notes []*song.Event) int {
	changed := 0
	for _, group := range t.groups(notes, false) {
		for i := 0; i+1 < len(group); i++ {
			a, b := group[i], group[i+1]
			if a.Partner.Tick <= b.Tick {
				continue
			}
			t.env.History.Capture(a.Partner)
			a.Partner.Tick = b.Tick
			if a.Partner.Tick <= a.Tick {
				t.deleteNote(a)
			}
			changed++
		}
	}
	return changed
}

// applyDoubles removes exact duplicates: same pitch, start and end, plus the
// scoped channel/track equality.
func (t *DeleteOverlapsTool) applyDoubles(notes []*song.Event) int {
	changed := 0
	seen := make(map[string]struct{})
	for _, on := range notes {
		key := fmt.Sprintf("%s|%d|%d", t.groupKey(on, true), on.Tick, on.Partner.Tick)
		if _, dup := seen[key]; dup {
			t.deleteNote(on)
			changed++
			continue
		}
		seen[key] = struct{}{}
	}
	return changed
}

// Snapshot captures the mode and scoping configuration.
func (t *DeleteOverlapsTool) Snapshot() history.Snapshot {
	return &overlapsSnapshot{target: t, mode: t.mode, sameChannel: t.sameChannel, sameTrack: t.sameTrack}
}

type overlapsSnapshot struct {
	target      *DeleteOverlapsTool
	mode        OverlapMode
	sameChannel bool
	sameTrack   bool
}

func (s *overlapsSnapshot) Restore() {
	s.target.mode = s.mode
	s.target.sameChannel = s.sameChannel
	s.target.sameTrack = s.sameTrack
	s.target.reset()
}
