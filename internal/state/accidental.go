package state

import "github.com/schollz/engrave/internal/concept"

// decideAccidental runs §4.2's "Accidental decision (for each note)"
// cascade: each rule is consulted only if the previous one found nothing.
//
//  1. a prior Altered entry at the same letter+staff-position but a
//     *different* accidental always forces an emission (a correction or
//     courtesy accidental);
//  2. otherwise, an exact (letter, staff-position, accidental) match
//     already in effect this measure (MeasuresAgo == 0) suppresses it;
//  3. otherwise, the note is emitted iff its accidental differs from what
//     the active key signature already implies for that letter.
//
// altered is PartState's current Accidentals.Altered list; it is not
// mutated here — the caller appends the resulting entry.
func decideAccidental(altered []AlteredEntry, letter byte, pos int, candidate concept.Accidental, key concept.KeySignature) bool {
	for _, a := range altered {
		if a.Diatonic.Letter == letter && a.StaffPosition == pos && a.Accidental != candidate {
			return true
		}
	}
	for _, a := range altered {
		if a.Diatonic.Letter == letter && a.StaffPosition == pos && a.Accidental == candidate && a.MeasuresAgo == 0 {
			return false
		}
	}
	return candidate != key.ImpliedAccidental(letter)
}

// ageAltered advances every entry's MeasuresAgo by one (called when a
// barline token is crossed) and drops entries two or more measures stale.
func ageAltered(altered []AlteredEntry) []AlteredEntry {
	out := altered[:0:0]
	for _, a := range altered {
		a.MeasuresAgo++
		if a.MeasuresAgo < 2 {
			out = append(out, a)
		}
	}
	return out
}
