// Package engraveerr defines the engraving core's error kinds (§7). The
// engraver itself never raises these from inside per-island engraving — it
// degrades (placeholder glyph, red-colored element, or silent omission)
// and continues. Hard errors are reserved for graph-construction
// validation (§8 invariants 1-2) and the (unimplemented, §6.3) MusicXML
// import boundary, matching the teacher's fmt.Errorf("...: %w", ...)
// wrapping idiom (internal/midiconnector, internal/getbpm).
package engraveerr

import (
	"errors"
	"fmt"
)

// Kind is one of the five error kinds from §7.
type Kind error

var (
	// InvalidGraph: structural invariants violated (no root, dangling
	// edge, chord with no owning island).
	InvalidGraph Kind = errors.New("invalid graph")

	// UnsupportedFeature: MusicXML input used a rejected feature
	// (cross-staff beam, time modification).
	UnsupportedFeature Kind = errors.New("unsupported feature")

	// UnboundedDuration: rhythm could not be expressed in notation.
	// Unreachable by construction in well-formed graphs.
	UnboundedDuration Kind = errors.New("unbounded duration")

	// GeometryIncomplete: a part's instant is missing a required event;
	// recovered by inserting empty islands.
	GeometryIncomplete Kind = errors.New("geometry incomplete")

	// GlyphMissing: font lacks a SMuFL codepoint; renders a
	// question-mark placeholder.
	GlyphMissing Kind = errors.New("glyph missing")
)

// Wrap annotates a sentinel Kind with context, staying errors.Is-compatible.
func Wrap(kind Kind, format string, args ...any) error {
	return &wrapped{kind: kind, msg: fmt.Sprintf(format, args...)}
}

type wrapped struct {
	kind Kind
	msg  string
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.kind }
