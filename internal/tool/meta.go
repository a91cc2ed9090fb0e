package tool

import (
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/history"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

// TempoTool places tempo-change events on the meta track. The BPM it writes
// is undoable tool configuration, adjusted with the +/- keys.
type TempoTool struct {
	eventTool
	bpm float64
}

// NewTempoTool creates a tempo tool at 120 BPM.
func NewTempoTool(env *Env) *TempoTool {
	return &TempoTool{eventTool: newEventTool(env, "tempo"), bpm: song.DefaultBPM}
}

// BPM returns the tempo the next press will write.
func (t *TempoTool) BPM() float64 { return t.bpm }

func (t *TempoTool) Press(primary bool, x, y int) bool {
	meta := t.env.Song.MetaTrack()
	if meta == nil {
		return false
	}
	_, tick := t.RasteredX(x)

	t.env.History.StartAction("insert tempo change")
	if existing := metaEventAt(meta, song.KindTempo, tick); existing != nil {
		t.env.History.Capture(existing)
		existing.BPM = t.bpm
	} else {
		t.env.History.Capture(meta)
		meta.Insert(&song.Event{Tick: tick, Kind: song.KindTempo, BPM: t.bpm})
	}
	t.env.Song.SetModified(true)
	t.env.History.EndAction()
	return true
}

// PressKey adjusts the configured BPM; the change is itself one action so
// undoing past it restores the old tool setting.
func (t *TempoTool) PressKey(r rune) bool {
	var delta float64
	switch r {
	case '+':
		delta = 5
	case '-':
		delta = -5
	default:
		return false
	}
	t.env.History.StartAction("change tempo setting")
	t.env.History.Capture(t)
	t.bpm += delta
	if t.bpm < 10 {
		t.bpm = 10
	}
	if t.bpm > 400 {
		t.bpm = 400
	}
	t.env.History.EndAction()
	return true
}

func (t *TempoTool) Snapshot() history.Snapshot {
	return &tempoToolSnapshot{target: t, bpm: t.bpm}
}

type tempoToolSnapshot struct {
	target *TempoTool
	bpm    float64
}

func (s *tempoToolSnapshot) Restore() {
	s.target.bpm = s.bpm
	s.target.reset()
}

// TimeSignatureTool places time-signature events at the start of the clicked
// measure. Numerator/denominator are undoable tool configuration.
type TimeSignatureTool struct {
	eventTool
	numerator   uint8
	denominator uint8
}

// NewTimeSignatureTool creates a 4/4 time-signature tool.
func NewTimeSignatureTool(env *Env) *TimeSignatureTool {
	return &TimeSignatureTool{eventTool: newEventTool(env, "time signature"), numerator: 4, denominator: 4}
}

// SetSignature changes what the next press writes.
func (t *TimeSignatureTool) SetSignature(num, den uint8) {
	if num == 0 || den == 0 {
		return
	}
	t.numerator, t.denominator = num, den
}

// Signature returns the configured meter.
func (t *TimeSignatureTool) Signature() (uint8, uint8) { return t.numerator, t.denominator }

func (t *TimeSignatureTool) Press(primary bool, x, y int) bool {
	meta := t.env.Song.MetaTrack()
	if meta == nil {
		return false
	}
	tick := t.env.Matrix.XToTick(x)
	start, _ := t.env.Song.MeasureBounds(tick)

	t.env.History.StartAction("insert time signature")
	if existing := metaEventAt(meta, song.KindTimeSignature, start); existing != nil {
		t.env.History.Capture(existing)
		existing.Numerator = t.numerator
		existing.Denominator = t.denominator
	} else {
		t.env.History.Capture(meta)
		meta.Insert(&song.Event{Tick: start, Kind: song.KindTimeSignature, Numerator: t.numerator, Denominator: t.denominator})
	}
	t.env.Song.SetModified(true)
	t.env.History.EndAction()
	return true
}

func (t *TimeSignatureTool) Snapshot() history.Snapshot {
	return &timeSigToolSnapshot{target: t, num: t.numerator, den: t.denominator}
}

type timeSigToolSnapshot struct {
	target   *TimeSignatureTool
	num, den uint8
}

func (s *timeSigToolSnapshot) Restore() {
	s.target.numerator = s.num
	s.target.denominator = s.den
	s.target.reset()
}

// MeasureTool selects whole measures: press in one measure, release in
// another, and every event inside the spanned measures becomes the
// selection. Selection-only, so no action is opened.
type MeasureTool struct {
	eventTool
	startTick int
}

// NewMeasureTool creates a measure-selection tool.
func NewMeasureTool(env *Env) *MeasureTool {
	return &MeasureTool{eventTool: newEventTool(env, "measure")}
}

func (t *MeasureTool) Press(primary bool, x, y int) bool {
	t.begin(x, y)
	t.startTick = t.env.Matrix.XToTick(x)
	return false
}

func (t *MeasureTool) Release() bool {
	if !t.pressed {
		return false
	}
	endTick := t.env.Matrix.XToTick(t.lastX)
	t.reset()

	from, to := t.startTick, endTick
	if to < from {
		from, to = to, from
	}
	lo, _ := t.env.Song.MeasureBounds(from)
	_, hi := t.env.Song.MeasureBounds(to)
	t.env.Selection.Set(t.env.Song.EventsBetween(lo, hi))
	return true
}

func (t *MeasureTool) ReleaseOnly() bool {
	return t.Release()
}

// metaEventAt finds an event of the given kind at exactly the given tick.
func metaEventAt(trk *song.Track, kind song.Kind, tick int) *song.Event {
	for _, e := range trk.Events() {
		if e.Tick > tick {
			break
		}
		if e.Tick == tick && e.Kind == kind {
			return e
		}
	}
	return nil
}
