package xmlio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
)

// shorthandLine is one parsed `part,instant;Key:Val,...;Note1,Note2,...`
// line (§6.2), before it's folded into the graph.
type shorthandLine struct {
	part, instant int
	keyvals       map[string]string
	notes         []string
}

// parseShorthandLine parses one line in the style of the teacher's
// internal/midiplayer.Parse: strings.Fields/strings.Split plus positional
// field validation and a named, wrapped error on any malformed field —
// never a panic on bad input.
func parseShorthandLine(line string) (shorthandLine, error) {
	fields := strings.Split(line, ";")
	if len(fields) != 3 {
		return shorthandLine{}, fmt.Errorf("xmlio: shorthand line %q: expected 3 ';'-separated fields, got %d", line, len(fields))
	}

	coord := strings.Split(strings.TrimSpace(fields[0]), ",")
	if len(coord) != 2 {
		return shorthandLine{}, fmt.Errorf("xmlio: shorthand line %q: expected 'part,instant', got %q", line, fields[0])
	}
	part, err := strconv.Atoi(strings.TrimSpace(coord[0]))
	if err != nil {
		return shorthandLine{}, fmt.Errorf("xmlio: shorthand line %q: invalid part %q: %w", line, coord[0], err)
	}
	instant, err := strconv.Atoi(strings.TrimSpace(coord[1]))
	if err != nil {
		return shorthandLine{}, fmt.Errorf("xmlio: shorthand line %q: invalid instant %q: %w", line, coord[1], err)
	}

	out := shorthandLine{part: part, instant: instant, keyvals: map[string]string{}}

	if kv := strings.TrimSpace(fields[1]); kv != "" {
		for _, pair := range strings.Split(kv, ",") {
			kv2 := strings.SplitN(pair, ":", 2)
			if len(kv2) != 2 {
				return shorthandLine{}, fmt.Errorf("xmlio: shorthand line %q: malformed Key:Val %q", line, pair)
			}
			out.keyvals[strings.TrimSpace(kv2[0])] = strings.TrimSpace(kv2[1])
		}
	}

	if notes := strings.TrimSpace(fields[2]); notes != "" {
		for _, n := range strings.Split(notes, ",") {
			out.notes = append(out.notes, strings.TrimSpace(n))
		}
	}

	return out, nil
}

// ParseShorthand converts §6.2's shorthand notation into a graph: one
// island per (part, instant) pair, instants in ascending order within
// each part, and Instantwise edges linking same-instant islands top-down
// by ascending part index (part 0 is the topmost staff).
func ParseShorthand(lines []string) (*graph.Graph, error) {
	var parsed []shorthandLine
	maxPart, maxInstant := -1, -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sl, err := parseShorthandLine(line)
		if err != nil {
			return nil, fmt.Errorf("xmlio: line %d: %w", i+1, err)
		}
		parsed = append(parsed, sl)
		if sl.part > maxPart {
			maxPart = sl.part
		}
		if sl.instant > maxInstant {
			maxInstant = sl.instant
		}
	}

	g := graph.New()
	if maxPart < 0 {
		return g, nil
	}

	byPartInstant := map[[2]int]graph.NodeIndex{}
	lastIsland := make([]graph.NodeIndex, maxPart+1)
	for p := range lastIsland {
		lastIsland[p] = graph.NoNode
	}

	for _, sl := range parsed {
		isl := g.NewIsland(lastIsland[sl.part])
		lastIsland[sl.part] = isl
		byPartInstant[[2]int{sl.part, sl.instant}] = isl
		if g.Root == graph.NoNode {
			g.Root = isl
		}

		if err := applyShorthandTokens(g, isl, sl); err != nil {
			return nil, err
		}
	}

	for instant := 0; instant <= maxInstant; instant++ {
		var prev graph.NodeIndex = graph.NoNode
		for p := 0; p <= maxPart; p++ {
			isl, ok := byPartInstant[[2]int{p, instant}]
			if !ok {
				continue
			}
			if prev != graph.NoNode {
				g.LinkInstantwise(prev, isl)
			}
			prev = isl
		}
	}

	return g, nil
}

// applyShorthandTokens adds the island's clef/key/barline/chord tokens
// from its Key:Val pairs and note list.
func applyShorthandTokens(g *graph.Graph, isl graph.NodeIndex, sl shorthandLine) error {
	if v, ok := sl.keyvals["Clef"]; ok {
		c, found := concept.ClefByName(v)
		if !found {
			return fmt.Errorf("xmlio: shorthand part %d instant %d: unknown Clef %q", sl.part, sl.instant, v)
		}
		g.AddClef(isl, c)
	}

	if v, ok := sl.keyvals["KeySig"]; ok {
		sharps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("xmlio: shorthand part %d instant %d: invalid KeySig %q: %w", sl.part, sl.instant, v, err)
		}
		g.AddKeySignature(isl, concept.KeySignature{Sharps: sharps})
	}

	if v, ok := sl.keyvals["Barline"]; ok {
		style, found := concept.BarlineStyleByName(v)
		if !found {
			return fmt.Errorf("xmlio: shorthand part %d instant %d: unknown Barline %q", sl.part, sl.instant, v)
		}
		g.AddBarline(isl, style)
	}

	_, hasNoteValue := sl.keyvals["NoteValue"]
	if hasNoteValue || len(sl.notes) > 0 {
		value := concept.NewDuration(1, 4)
		if v, ok := sl.keyvals["NoteValue"]; ok {
			num, den, err := parseFraction(v)
			if err != nil {
				return fmt.Errorf("xmlio: shorthand part %d instant %d: invalid NoteValue %q: %w", sl.part, sl.instant, v, err)
			}
			value = concept.NewDuration(num, den)
		}
		chord := g.AddChord(isl, value)

		if v, ok := sl.keyvals["Dots"]; ok {
			dots, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("xmlio: shorthand part %d instant %d: invalid Dots %q: %w", sl.part, sl.instant, v, err)
			}
			g.Node(chord).Label.Set("Dots", concept.OfInt(dots))
		}

		for _, ns := range sl.notes {
			pitch, err := concept.ParsePitch(ns)
			if err != nil {
				return fmt.Errorf("xmlio: shorthand part %d instant %d: invalid note %q: %w", sl.part, sl.instant, ns, err)
			}
			g.AddNote(chord, pitch)
		}
	}

	return nil
}

// parseFraction parses a "num/den" duration literal; a bare integer
// numerator (no slash) is read as that many whole notes over 1.
func parseFraction(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "/", 2)
	num, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	if len(parts) == 1 {
		return num, 1, nil
	}
	den, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return num, den, nil
}
