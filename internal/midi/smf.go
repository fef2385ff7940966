package midi

import (
	"io"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/schollz/engrave/internal/concept"
)

const ticksPerQuarter = 960

// timedMessage is one track event at an absolute tick, before the
// delta-time encoding smf.Track.Add expects.
type timedMessage struct {
	tick uint32
	msg  midi.Message
	off  bool // note-offs sort before note-ons at the same tick
}

// wholeToTicks converts a whole-note-relative duration (1 = whole note)
// into SMF ticks at ticksPerQuarter resolution.
func wholeToTicks(d concept.Duration) uint32 {
	f, _ := d.Float64()
	ticks := f * 4 * ticksPerQuarter
	if ticks < 0 {
		ticks = 0
	}
	return uint32(math.Round(ticks))
}

// WriteSMF writes a Standard MIDI File (§6.5): one track per part, a
// tempo meta-event at time 0, and a program-change per track, grounded on
// the teacher's internal/midiplayer (note-on/note-off pairing per
// channel) but targeting gitlab.com/gomidi/midi/v2/smf's file encoder
// instead of the teacher's live rtmididrv output — there's no device to
// open when the destination is a byte stream.
func WriteSMF(w io.Writer, events []Event, partCount int, tempoBPM float64, programs []int) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	byPart := make([][]Event, partCount)
	for _, e := range events {
		if e.Part >= 0 && e.Part < partCount {
			byPart[e.Part] = append(byPart[e.Part], e)
		}
	}

	for p := 0; p < partCount; p++ {
		var tr smf.Track

		program := uint8(0)
		if p < len(programs) && programs[p] >= 0 && programs[p] < 128 {
			program = uint8(programs[p])
		}

		channel := uint8(0)
		if len(byPart[p]) > 0 {
			channel = uint8(byPart[p][0].Channel)
		}

		if p == 0 {
			tr.Add(0, smf.MetaTempo(tempoBPM))
		}
		tr.Add(0, midi.ProgramChange(channel, program))

		var timeline []timedMessage
		for _, e := range byPart[p] {
			onTick := wholeToTicks(e.Onset)
			offTick := wholeToTicks(durAdd(e.Onset, e.Duration))
			timeline = append(timeline,
				timedMessage{tick: onTick, msg: midi.NoteOn(uint8(e.Channel), uint8(e.Key), uint8(e.Velocity))},
				timedMessage{tick: offTick, msg: midi.NoteOff(uint8(e.Channel), uint8(e.Key)), off: true},
			)
		}
		sort.SliceStable(timeline, func(i, j int) bool {
			if timeline[i].tick != timeline[j].tick {
				return timeline[i].tick < timeline[j].tick
			}
			return timeline[i].off && !timeline[j].off
		})

		var last uint32
		for _, tm := range timeline {
			tr.Add(tm.tick-last, tm.msg)
			last = tm.tick
		}
		tr.Close(0)
		s.Add(tr)
	}

	_, err := s.WriteTo(w)
	return err
}
