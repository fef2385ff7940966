package state

import (
	"math"
	"sync"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/geometry"
	"github.com/schollz/engrave/internal/graph"
)

// partAccumulator runs passes A and C of §4.2 for every part: first a
// forward fold of clef/key/accidental state and each chord's raw
// Highest/Lowest staff-position substate (pass A), then — after the
// caller has run the Voicing sub-pass in between — a second forward walk
// that resolves the single-voice stem-direction rule and its context
// overrides for every chord Voicing didn't already claim (pass C).
type partAccumulator struct {
	g   *graph.Graph
	geo *geometry.Geometry
}

// partResult is one part's independent share of passA's output: the
// clef/key/accidental cascade only ever reads state local to its own
// part, so every part's fold can run in isolation and be merged
// afterward in part order.
type partResult struct {
	snapshots map[graph.NodeIndex]PartSnapshot
	chords    map[graph.NodeIndex]ChordInfo
	notes     map[graph.NodeIndex]NoteDecision
	order     []graph.NodeIndex
}

// passA folds clef/key/accidental state along every part's partwise
// chain, producing one PartSnapshot per island and one ChordInfo (with
// Highest/Lowest/StemHasBeam filled in, StrandID=-1, StemDirection
// unresolved) per chord, plus the accidental-emission decision for every
// note. islandOrder lists every visited island, needed by the Voicing
// pass that runs between passA and passC. When parallel is true (§5:
// "PartState accumulation may parallelize per part"), each part's fold
// runs in its own goroutine; the merge below still walks parts 0..N-1 in
// order, so the result is byte-identical to the sequential run.
func (pa *partAccumulator) passA(parallel bool) (map[graph.NodeIndex]PartSnapshot, map[graph.NodeIndex]ChordInfo, map[graph.NodeIndex]NoteDecision, []graph.NodeIndex) {
	results := make([]partResult, pa.geo.PartCount)

	if parallel && pa.geo.PartCount > 1 {
		var wg sync.WaitGroup
		wg.Add(pa.geo.PartCount)
		for p := 0; p < pa.geo.PartCount; p++ {
			go func(p int) {
				defer wg.Done()
				results[p] = pa.passAPart(p)
			}(p)
		}
		wg.Wait()
	} else {
		for p := 0; p < pa.geo.PartCount; p++ {
			results[p] = pa.passAPart(p)
		}
	}

	snapshots := map[graph.NodeIndex]PartSnapshot{}
	chords := map[graph.NodeIndex]ChordInfo{}
	notes := map[graph.NodeIndex]NoteDecision{}
	var islandOrder []graph.NodeIndex
	for _, r := range results {
		for isl, snap := range r.snapshots {
			snapshots[isl] = snap
		}
		for chord, info := range r.chords {
			chords[chord] = info
		}
		for note, dec := range r.notes {
			notes[note] = dec
		}
		islandOrder = append(islandOrder, r.order...)
	}

	return snapshots, chords, notes, islandOrder
}

// passAPart runs passA's fold for a single part; foldChord records note
// decisions into this call's own result map, on the sequential path as
// well, so that concurrent calls from passA never touch the same map.
func (pa *partAccumulator) passAPart(p int) partResult {
	r := partResult{
		snapshots: map[graph.NodeIndex]PartSnapshot{},
		chords:    map[graph.NodeIndex]ChordInfo{},
		notes:     map[graph.NodeIndex]NoteDecision{},
	}

	clefActive := concept.ClefTreble
	keyActive := concept.KeySignature{}
	var altered []AlteredEntry

	for isl := pa.geo.PartStarts[p]; isl != graph.NoNode; isl = pa.g.NextPartwise(isl) {
		r.order = append(r.order, isl)

		for _, tok := range pa.g.Tokens(isl) {
			n := pa.g.Node(tok)
			switch n.TokenKind {
			case graph.TokenClef:
				if v, ok := n.Label.Get("Clef"); ok {
					if c, found := concept.ClefByName(v.Str); found {
						clefActive = c
					}
				}
			case graph.TokenKeySignature:
				if v, ok := n.Label.Get("Sharps"); ok {
					keyActive = concept.KeySignature{Sharps: v.Int}
					altered = nil
				}
			case graph.TokenBarline:
				altered = ageAltered(altered)
			case graph.TokenChord:
				info, chordAltered := pa.foldChord(tok, clefActive, keyActive, altered, r.notes)
				altered = chordAltered
				r.chords[tok] = info
			}
		}

		r.snapshots[isl] = PartSnapshot{Clef: clefActive, Key: keyActive, Altered: append([]AlteredEntry(nil), altered...)}
	}

	return r
}

// foldChord processes one chord token's notes against the accidental
// cascade and returns its ChordInfo plus the updated Altered list.
func (pa *partAccumulator) foldChord(chord graph.NodeIndex, clef concept.Clef, key concept.KeySignature, altered []AlteredEntry, notes map[graph.NodeIndex]NoteDecision) (ChordInfo, []AlteredEntry) {
	noteNodes := pa.g.Notes(chord)
	info := ChordInfo{StrandID: -1}
	first := true

	for _, note := range noteNodes {
		v, ok := pa.g.Node(note).Label.Get("Pitch")
		if !ok {
			continue
		}
		pitch, err := concept.ParsePitch(v.Str)
		if err != nil {
			continue
		}
		pos := clef.StaffPosition(pitch.Diatonic)
		if first {
			info.HighestPos, info.LowestPos = pos, pos
			first = false
		} else {
			if pos > info.HighestPos {
				info.HighestPos = pos
			}
			if pos < info.LowestPos {
				info.LowestPos = pos
			}
		}

		emit := decideAccidental(altered, pitch.Diatonic.Letter, pos, pitch.Accidental, key)
		hasIncomingTie := pa.g.InOne(note, graph.EdgeTie) != nil
		if emit || hasIncomingTie {
			altered = append(altered, AlteredEntry{Accidental: pitch.Accidental, Diatonic: pitch.Diatonic, StaffPosition: pos, MeasuresAgo: 0})
		}
		notes[note] = NoteDecision{Pitch: pitch, StaffPosition: pos, Emit: emit && !hasIncomingTie}
	}

	info.StemHasBeam = len(pa.g.Out(chord, graph.EdgeBeam)) > 0 || len(pa.g.In(chord, graph.EdgeBeam)) > 0
	return info, altered
}

// passC resolves the single-voice stem-direction rule (and its beam- and
// near-middle-inheritance overrides) for every chord the Voicing pass
// left untouched, walking each part's chords again in partwise order.
func (pa *partAccumulator) passC(chords map[graph.NodeIndex]ChordInfo, resolved map[graph.NodeIndex]bool) {
	for p := 0; p < pa.geo.PartCount; p++ {
		var prevChord graph.NodeIndex = graph.NoNode
		var prevStem concept.StemDirection
		var prevAvg float64

		for isl := pa.geo.PartStarts[p]; isl != graph.NoNode; isl = pa.g.NextPartwise(isl) {
			for _, chord := range pa.g.Chords(isl) {
				info := chords[chord]
				avg := chordAverage(info.HighestPos, info.LowestPos)

				beamContinuation := false
				if prevChord != graph.NoNode {
					for _, e := range pa.g.Out(prevChord, graph.EdgeBeam) {
						if e.To == chord {
							beamContinuation = true
						}
					}
				}
				nearMiddle := prevChord != graph.NoNode && math.Abs(avg) <= 1 && math.Abs(prevAvg) <= 2

				info.StemDirectionSingleVoice = defaultStemDirection(info.HighestPos, info.LowestPos)
				if beamContinuation {
					info.StemDirectionSingleVoiceBeamed = prevStem
				} else {
					info.StemDirectionSingleVoiceBeamed = info.StemDirectionSingleVoice
				}

				if !resolved[chord] {
					var manual *concept.StemDirection
					if v, ok := pa.g.Node(chord).Label.Get("StemDirection"); ok && v.Kind == concept.KindString {
						if dir, ok := parseStemDirection(v.Str); ok {
							manual = &dir
						}
					}
					info.StemDirection = resolveStemDirection(info.HighestPos, info.LowestPos, stemContext{
						ManualOverride:    manual,
						BeamContinuation:  beamContinuation,
						PredecessorStem:   prevStem,
						NearMiddleInherit: nearMiddle,
					})
				}

				chords[chord] = info
				prevChord, prevStem, prevAvg = chord, info.StemDirection, avg
			}
		}
	}
}
