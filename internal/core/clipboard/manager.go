// Package clipboard serializes selected events to a text representation and
// clones them back on paste. The transport is either an in-process buffer or
// the system clipboard, so copied events can travel between editor instances.
package clipboard

import (
	"fmt"
	"strconv"
	"strings"

	sysclip "github.com/atotto/clipboard"

	"github.com/Meowchestra/MidiEditor-sub001/internal/core/history"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core/selection"
	"github.com/Meowchestra/MidiEditor-sub001/internal/logger"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
)

const clipHeader = "midiroll-clip 1"

// Manager handles clipboard operations.
type Manager struct {
	songFn    func() *song.Song
	history   *history.Manager
	sel       *selection.Manager
	useSystem bool
	local     string
}

// NewManager creates a clipboard manager. songFn returns the currently open
// document so the manager survives document replacement.
func NewManager(songFn func() *song.Song, hist *history.Manager, sel *selection.Manager, useSystem bool) *Manager {
	return &Manager{songFn: songFn, history: hist, sel: sel, useSystem: useSystem}
}

// Copy serializes the selected events. No selection is not an error, just
// nothing to copy.
func (m *Manager) Copy() error {
	text := m.serializeSelection()
	if text == "" {
		return nil
	}
	if m.useSystem {
		if err := sysclip.WriteAll(text); err != nil {
			return fmt.Errorf("failed to write system clipboard: %w", err)
		}
	} else {
		m.local = text
	}
	logger.Debugf("Clipboard: copied %d selected event(s)", m.sel.Len())
	return nil
}

// Paste clones the clipboard events back into the song, each call wrapped in
// its own action. offsetTicks shifts every pasted event; trackRemap and
// channelRemap override the stored track/channel when >= 0. The pasted
// events become the new selection.
func (m *Manager) Paste(offsetTicks int, trackRemap int, channelRemap int) error {
	text := m.local
	if m.useSystem {
		var err error
		text, err = sysclip.ReadAll()
		if err != nil {
			return fmt.Errorf("failed to read system clipboard: %w", err)
		}
	}
	events, err := parse(text)
	if err != nil || len(events) == 0 {
		return err
	}

	s := m.songFn()
	m.history.StartAction("paste events")
	var pasted []*song.Event
	captured := make(map[*song.Track]struct{})

	for _, ev := range events {
		trackIdx := ev.Track
		if trackRemap >= 0 {
			trackIdx = trackRemap
		}
		trk := s.Track(trackIdx)
		if trk == nil {
			// clamp onto the last track rather than dropping the event
			tracks := s.Tracks()
			if len(tracks) == 0 {
				continue
			}
			trackIdx = len(tracks) - 1
			trk = tracks[trackIdx]
		}
		if _, ok := captured[trk]; !ok {
			captured[trk] = struct{}{}
			m.history.Capture(trk)
		}

		channel := ev.Channel
		if channelRemap >= 0 {
			channel = uint8(channelRemap)
		}

		if ev.Kind == song.KindNoteOn {
			on, off := song.NewNotePair(ev.Tick+offsetTicks, ev.Duration(), ev.Note, ev.Velocity, channel, trackIdx)
			trk.Insert(on)
			trk.Insert(off)
			pasted = append(pasted, on)
			continue
		}
		clone := *ev
		clone.Tick += offsetTicks
		clone.Channel = channel
		clone.Track = trackIdx
		clone.Partner = nil
		trk.Insert(&clone)
		pasted = append(pasted, &clone)
	}

	s.SetModified(true)
	m.history.EndAction()
	m.sel.Set(pasted)
	logger.Debugf("Clipboard: pasted %d event(s)", len(pasted))
	return nil
}

// serializeSelection renders the selection in the line format parse reads.
// Note pairs are written once, from their on side.
func (m *Manager) serializeSelection() string {
	events := m.sel.Events()
	if len(events) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(clipHeader)
	b.WriteByte('\n')
	written := 0

	for _, ev := range events {
		switch ev.Kind {
		case song.KindNoteOn:
			if ev.Partner == nil {
				continue
			}
			fmt.Fprintf(&b, "note %d %d %d %d %d %d\n", ev.Tick, ev.Duration(), ev.Note, ev.Velocity, ev.Channel, ev.Track)
		case song.KindNoteOff:
			continue // carried by the on side
		case song.KindController:
			fmt.Fprintf(&b, "ctrl %d %d %d %d %d\n", ev.Tick, ev.Channel, ev.Controller, ev.Value, ev.Track)
		case song.KindTempo:
			fmt.Fprintf(&b, "tempo %d %s %d\n", ev.Tick, strconv.FormatFloat(ev.BPM, 'f', -1, 64), ev.Track)
		case song.KindTimeSignature:
			fmt.Fprintf(&b, "timesig %d %d %d %d\n", ev.Tick, ev.Numerator, ev.Denominator, ev.Track)
		case song.KindKeySignature:
			fmt.Fprintf(&b, "keysig %d %d %d %d %d %d\n", ev.Tick, ev.Key, ev.KeyNum, boolInt(ev.KeyMajor), boolInt(ev.KeyFlat), ev.Track)
		case song.KindProgramChange:
			fmt.Fprintf(&b, "prog %d %d %d %d\n", ev.Tick, ev.Channel, ev.Value, ev.Track)
		case song.KindPitchBend:
			fmt.Fprintf(&b, "bend %d %d %d %d\n", ev.Tick, ev.Channel, ev.Value, ev.Track)
		default:
			continue
		}
		written++
	}
	if written == 0 {
		return ""
	}
	return b.String()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parse reads the clipboard text back into detached events. Unknown lines
// and foreign clipboard content are skipped without error.
func parse(text string) ([]*song.Event, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != clipHeader {
		return nil, nil
	}

	var out []*song.Event
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		nums := make([]float64, 0, len(fields)-1)
		ok := true
		for _, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				ok = false
				break
			}
			nums = append(nums, v)
		}
		if !ok {
			continue
		}

		switch fields[0] {
		case "note":
			if len(nums) != 6 {
				continue
			}
			on, _ := song.NewNotePair(int(nums[0]), int(nums[1]), uint8(nums[2]), uint8(nums[3]), uint8(nums[4]), int(nums[5]))
			out = append(out, on)
		case "ctrl":
			if len(nums) != 5 {
				continue
			}
			out = append(out, &song.Event{Kind: song.KindController, Tick: int(nums[0]), Channel: uint8(nums[1]), Controller: uint8(nums[2]), Value: int(nums[3]), Track: int(nums[4])})
		case "tempo":
			if len(nums) != 3 {
				continue
			}
			out = append(out, &song.Event{Kind: song.KindTempo, Tick: int(nums[0]), BPM: nums[1], Track: int(nums[2])})
		case "timesig":
			if len(nums) != 4 {
				continue
			}
			out = append(out, &song.Event{Kind: song.KindTimeSignature, Tick: int(nums[0]), Numerator: uint8(nums[1]), Denominator: uint8(nums[2]), Track: int(nums[3])})
		case "keysig":
			if len(nums) != 6 {
				continue
			}
			out = append(out, &song.Event{Kind: song.KindKeySignature, Tick: int(nums[0]), Key: uint8(nums[1]), KeyNum: uint8(nums[2]), KeyMajor: nums[3] != 0, KeyFlat: nums[4] != 0, Track: int(nums[5])})
		case "prog":
			if len(nums) != 4 {
				continue
			}
			out = append(out, &song.Event{Kind: song.KindProgramChange, Tick: int(nums[0]), Channel: uint8(nums[1]), Value: int(nums[2]), Track: int(nums[3])})
		case "bend":
			if len(nums) != 4 {
				continue
			}
			out = append(out, &song.Event{Kind: song.KindPitchBend, Tick: int(nums[0]), Channel: uint8(nums[1]), Value: int(nums[2]), Track: int(nums[3])})
		}
	}
	return out, nil
}
