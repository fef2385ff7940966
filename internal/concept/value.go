// Package concept implements the finite music-information algebra that
// backs every node and edge label in the score graph: tagged concept
// tokens (pitches, clefs, accidentals, barline styles, ...), the algebraic
// maps between them, and the few numeric/string/bool value kinds an
// attribute can otherwise hold.
package concept

import (
	"fmt"
	"math/big"
)

// Kind tags which alternative of Value is populated.
type Kind int

const (
	KindConcept Kind = iota
	KindRational
	KindInt
	KindString
	KindBool
)

// Value is the closed set of attribute-value alternatives a node or edge
// label entry may hold. Only one field is meaningful, selected by Kind.
type Value struct {
	Kind    Kind
	Concept Token
	Rat     *big.Rat
	Int     int
	Str     string
	Bool    bool
}

func Of(t Token) Value           { return Value{Kind: KindConcept, Concept: t} }
func OfRational(r *big.Rat) Value { return Value{Kind: KindRational, Rat: r} }
func OfInt(i int) Value          { return Value{Kind: KindInt, Int: i} }
func OfString(s string) Value    { return Value{Kind: KindString, Str: s} }
func OfBool(b bool) Value        { return Value{Kind: KindBool, Bool: b} }

func (v Value) String() string {
	switch v.Kind {
	case KindConcept:
		return v.Concept.Name
	case KindRational:
		if v.Rat == nil {
			return "<nil>"
		}
		return v.Rat.RatString()
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindString:
		return v.Str
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	}
	return "<invalid>"
}

// Token is a symbol drawn from a fixed finite vocabulary (the
// music-information algebra): pitches, clefs, durations, accidentals,
// barline styles, and the rest. Vocabularies are declared as package-level
// tables (see pitch.go, clef.go, barline.go, keysignature.go), most with a
// Go type of their own; a Token lets generic graph code hold a symbol from
// any of them uniformly, and the algebra (map(Pitch, DiatonicPitch), ...)
// stays a constant lookup, per spec.
type Token struct {
	Vocabulary string
	Name       string
}

func (t Token) String() string { return t.Name }

func (t Token) IsZero() bool { return t.Vocabulary == "" && t.Name == "" }
