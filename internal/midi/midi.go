// Package midi implements the MIDI projection (§4.16): one sink of the
// engraving model that walks the rhythm matrix independently of any
// rendered stamp, aligning tied notes into compound durations and
// emitting onset/duration/pitch/velocity events per part.
package midi

import (
	"math"
	"math/big"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/engrave"
	"github.com/schollz/engrave/internal/geometry"
	"github.com/schollz/engrave/internal/graph"
)

// Event is one sounding note: onset and duration are whole-note-relative
// (1 = a whole note), matching concept.Duration's unit elsewhere in the
// graph.
type Event struct {
	Part     int
	Onset    concept.Duration
	Duration concept.Duration
	Key      int
	Channel  int
	Velocity int
}

// durAdd does plain rational addition on concept.Duration without going
// through Duration's Mul/Quo (which implement a different algebra):
// concept.Duration embeds *big.Rat, so its promoted Add is big.Rat's own.
func durAdd(a, b concept.Duration) concept.Duration {
	return concept.Duration{Rat: new(big.Rat).Add(a.Rat, b.Rat)}
}

// chordWrittenDuration reads a chord's own NoteValue/Dots attributes
// (§6.1) and expands the dotted value: dotted = base * (2 - 2^-dots).
func chordWrittenDuration(g *graph.Graph, chord graph.NodeIndex) concept.Duration {
	base := concept.NewDuration(1, 4)
	if v, ok := g.Node(chord).Label.Get("NoteValue"); ok && v.Kind == concept.KindRational {
		base = concept.Duration{Rat: v.Rat}
	}
	dots := 0
	if v, ok := g.Node(chord).Label.Get("Dots"); ok && v.Kind == concept.KindInt {
		dots = v.Int
	}
	pow := new(big.Int).Lsh(big.NewInt(1), uint(dots))
	num := new(big.Int).Lsh(big.NewInt(1), uint(dots+1))
	num.Sub(num, big.NewInt(1))
	factor := new(big.Rat).SetFrac(num, pow)
	return concept.Duration{Rat: new(big.Rat).Mul(base.Rat, factor)}
}

// chordActualDuration applies §8's invariant
// RhythmicDurationOfChord(C) = IntrinsicDuration(C) / ∏ TupletScalars(C).
func chordActualDuration(g *graph.Graph, chord graph.NodeIndex) concept.Duration {
	written := chordWrittenDuration(g, chord)
	return written.Quo(engrave.ChordTupletScalar(g, chord))
}

// beamStarts reports whether chord opens a beam group: it has an outgoing
// Beam edge but no incoming one.
func beamStarts(g *graph.Graph, chord graph.NodeIndex) bool {
	return g.OutOne(chord, graph.EdgeBeam) != nil && g.InOne(chord, graph.EdgeBeam) == nil
}

// velocityFor modulates a base velocity by log-duration (longer notes
// speak louder) and gives beam-group onsets a small accent, matching
// §4.16's "modulated by log-duration and whether the chord begins a beam
// group."
func velocityFor(compound concept.Duration, beamStart bool) int {
	f, _ := compound.Rat.Float64()
	v := 52.0 + 18.0*math.Log2(f*16+1)
	if beamStart {
		v += 10
	}
	iv := int(math.Round(v))
	if iv < 1 {
		iv = 1
	}
	if iv > 127 {
		iv = 127
	}
	return iv
}

// pitchOf reads a note's Pitch attribute.
func pitchOf(g *graph.Graph, note graph.NodeIndex) (concept.Pitch, bool) {
	v, ok := g.Node(note).Label.Get("Pitch")
	if !ok || v.Kind != concept.KindString {
		return concept.Pitch{}, false
	}
	p, err := concept.ParsePitch(v.Str)
	return p, err == nil
}

// compoundDuration follows a note's outgoing tie chain, summing each
// tied-to chord's actual duration onto the first note's own, per §4.16's
// "tied-sequence durations are summed from the first un-tied note."
func compoundDuration(g *graph.Graph, note graph.NodeIndex, own concept.Duration) concept.Duration {
	total := own
	cur := note
	for {
		e := g.OutOne(cur, graph.EdgeTie)
		if e == nil {
			break
		}
		nxt := e.To
		owner := g.InOne(nxt, graph.EdgeNote)
		if owner == nil {
			break
		}
		total = durAdd(total, chordActualDuration(g, owner.From))
		cur = nxt
	}
	return total
}

// Project walks every part's island chain in partwise order (§4.16),
// summing each island's duration into a running onset and emitting one
// Event per note that isn't itself the target of an incoming tie (a tied-
// to note contributes its duration to its predecessor's compound Event
// rather than sounding again). channels gives each part's MIDI channel
// (0-15); a part beyond len(channels) defaults to channel 0. startup is a
// small fixed offset added to every onset, keeping the very first event
// off of tick zero.
func Project(g *graph.Graph, geo *geometry.Geometry, channels []int, startup concept.Duration) []Event {
	var events []Event

	for p := 0; p < geo.PartCount; p++ {
		channel := 0
		if p < len(channels) {
			channel = channels[p]
		}

		onset := startup
		island := geo.PartStarts[p]
		for island != graph.NoNode {
			chords := g.Chords(island)
			advance := concept.NewDuration(0, 1)

			for _, chord := range chords {
				dur := chordActualDuration(g, chord)
				if dur.Cmp(advance) > 0 {
					advance = dur
				}
				beamStart := beamStarts(g, chord)

				for _, note := range g.Notes(chord) {
					if g.InOne(note, graph.EdgeTie) != nil {
						continue // sounds as part of an earlier note's compound duration
					}
					pitch, ok := pitchOf(g, note)
					if !ok {
						continue
					}
					compound := compoundDuration(g, note, dur)
					events = append(events, Event{
						Part:     p,
						Onset:    onset,
						Duration: compound,
						Key:      pitch.MIDI(),
						Channel:  channel,
						Velocity: velocityFor(compound, beamStart),
					})
				}
			}

			onset = durAdd(onset, advance)
			island = g.NextPartwise(island)
		}
	}

	return events
}

// TotalWhole returns the score-wide duration in whole notes spanned by
// the given events (the latest note-off), useful for sizing a fixed-
// length render or sanity-checking a projection.
func TotalWhole(events []Event) concept.Duration {
	max := concept.NewDuration(0, 1)
	for _, e := range events {
		end := durAdd(e.Onset, e.Duration)
		if end.Cmp(max) > 0 {
			max = end
		}
	}
	return max
}
