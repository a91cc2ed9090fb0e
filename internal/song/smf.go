package song

import (
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Meowchestra/MidiEditor-sub001/internal/logger"
)

// Load reads a Standard MIDI File into a Song, pairing note on/off events
// into linked pairs. Unterminated notes are closed one tick after the last
// event of their track.
func Load(path string) (*Song, error) {
	data, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read midi file '%s': %w", path, err)
	}

	resolution := 960
	if mt, ok := data.TimeFormat.(smf.MetricTicks); ok && int(mt) > 0 {
		resolution = int(mt)
	}

	s := &Song{TicksPerQuarter: resolution, FilePath: path}

	for ti, tr := range data.Tracks {
		track := s.AddTrack(fmt.Sprintf("track %d", ti), 0)
		abs := 0
		// pending note-ons per (channel, key), matched FIFO
		pending := make(map[[2]uint8][]*Event)

		for _, ev := range tr {
			abs += int(ev.Delta)
			msg := ev.Message

			var ch, key, vel, cc, val, prog, num, den uint8
			var bend int16
			var bendAbs uint16
			var bpm float64
			var text string
			var isMajor, isFlat bool

			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				on := &Event{Tick: abs, Kind: KindNoteOn, Channel: ch, Track: ti, Note: key, Velocity: vel}
				k := [2]uint8{ch, key}
				pending[k] = append(pending[k], on)
				track.Insert(on)
			case msg.GetNoteEnd(&ch, &key):
				k := [2]uint8{ch, key}
				stack := pending[k]
				if len(stack) == 0 {
					logger.Debugf("SMF: unmatched note off (ch %d key %d) at tick %d", ch, key, abs)
					continue
				}
				on := stack[0]
				pending[k] = stack[1:]
				off := &Event{Tick: abs, Kind: KindNoteOff, Channel: ch, Track: ti, Note: key, Partner: on}
				if off.Tick <= on.Tick {
					off.Tick = on.Tick + 1
				}
				on.Partner = off
				track.Insert(off)
			case msg.GetControlChange(&ch, &cc, &val):
				track.Insert(&Event{Tick: abs, Kind: KindController, Channel: ch, Track: ti, Controller: cc, Value: int(val)})
			case msg.GetProgramChange(&ch, &prog):
				track.Insert(&Event{Tick: abs, Kind: KindProgramChange, Channel: ch, Track: ti, Value: int(prog)})
			case msg.GetPitchBend(&ch, &bend, &bendAbs):
				track.Insert(&Event{Tick: abs, Kind: KindPitchBend, Channel: ch, Track: ti, Value: int(bend)})
			case msg.GetMetaTempo(&bpm):
				track.Insert(&Event{Tick: abs, Kind: KindTempo, Track: ti, BPM: bpm})
			case msg.GetMetaMeter(&num, &den):
				track.Insert(&Event{Tick: abs, Kind: KindTimeSignature, Track: ti, Numerator: num, Denominator: den})
			case msg.GetMetaKeySig(&key, &num, &isMajor, &isFlat):
				track.Insert(&Event{Tick: abs, Kind: KindKeySignature, Track: ti, Key: key, KeyNum: num, KeyMajor: isMajor, KeyFlat: isFlat})
			case msg.GetMetaTrackName(&text):
				track.Name = text
			case msg.GetMetaText(&text):
				track.Insert(&Event{Tick: abs, Kind: KindText, Track: ti, Text: text})
			}
		}

		// Close anything still sounding at end of track.
		for k, stack := range pending {
			for _, on := range stack {
				off := &Event{Tick: abs + 1, Kind: KindNoteOff, Channel: k[0], Track: ti, Note: k[1], Partner: on}
				on.Partner = off
				track.Insert(off)
			}
		}
	}

	logger.Infof("SMF: loaded '%s' (%d tracks, resolution %d)", path, len(s.tracks), resolution)
	return s, nil
}

// Save writes the song as a format-1 Standard MIDI File.
func (s *Song) Save(path string) error {
	data := smf.New()
	data.TimeFormat = smf.MetricTicks(s.TicksPerQuarter)

	for _, t := range s.tracks {
		var tr smf.Track
		tr.Add(0, smf.MetaTrackSequenceName(t.Name))

		type timed struct {
			tick int
			msg  []byte
		}
		var msgs []timed
		for _, e := range t.events {
			switch e.Kind {
			case KindNoteOn:
				msgs = append(msgs, timed{e.Tick, midi.NoteOn(e.Channel, e.Note, e.Velocity)})
			case KindNoteOff:
				msgs = append(msgs, timed{e.Tick, midi.NoteOff(e.Channel, e.Note)})
			case KindController:
				msgs = append(msgs, timed{e.Tick, midi.ControlChange(e.Channel, e.Controller, uint8(e.Value))})
			case KindProgramChange:
				msgs = append(msgs, timed{e.Tick, midi.ProgramChange(e.Channel, uint8(e.Value))})
			case KindPitchBend:
				msgs = append(msgs, timed{e.Tick, midi.Pitchbend(e.Channel, int16(e.Value))})
			case KindTempo:
				msgs = append(msgs, timed{e.Tick, smf.MetaTempo(e.BPM)})
			case KindTimeSignature:
				msgs = append(msgs, timed{e.Tick, smf.MetaMeter(e.Numerator, e.Denominator)})
			case KindKeySignature:
				msgs = append(msgs, timed{e.Tick, smf.MetaKey(e.Key, e.KeyMajor, e.KeyNum, e.KeyFlat)})
			case KindText:
				msgs = append(msgs, timed{e.Tick, smf.MetaText(e.Text)})
			}
		}
		sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].tick < msgs[j].tick })

		last := 0
		for _, m := range msgs {
			tr.Add(uint32(m.tick-last), m.msg)
			last = m.tick
		}
		tr.Close(0)
		data.Add(tr)
	}

	if err := data.WriteFile(path); err != nil {
		return fmt.Errorf("failed to write midi file '%s': %w", path, err)
	}
	s.FilePath = path
	s.SetModified(false)
	logger.Infof("SMF: saved '%s'", path)
	return nil
}
