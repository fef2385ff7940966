// Command engrave is a thin developer harness (§1.1): it exercises the
// engraving core end to end for manual testing, the way the teacher's
// own main.go wired together internal/model, internal/midiconnector, and
// internal/storage. None of the library's modules or invariants live
// behind this command — it is a harness, not a collaborator the library
// depends on.
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/schollz/engrave/internal/autocorrect"
	"github.com/schollz/engrave/internal/browse"
	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/engrave"
	"github.com/schollz/engrave/internal/geometry"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
	"github.com/schollz/engrave/internal/midi"
	"github.com/schollz/engrave/internal/stamp"
	"github.com/schollz/engrave/internal/state"
	"github.com/schollz/engrave/internal/typeset"
	"github.com/schollz/engrave/internal/xmlio"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "engrave",
		Short: "Developer harness for the engraving core",
	}
	root.AddCommand(renderCmd(), midiCmd(), roundtripCmd(), browseCmd())
	return root
}

// loadGraph reads and autocorrects a §6.1 graph XML file — every
// subcommand needs a repaired graph before doing anything else with it.
func loadGraph(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engrave: reading %s: %w", path, err)
	}
	g, err := xmlio.Import(data)
	if err != nil {
		return nil, fmt.Errorf("engrave: importing %s: %w", path, err)
	}
	autocorrect.Run(g, housestyle.Default())
	return g, nil
}

// engraveSystem engraves every island of geo, then runs the cross-island
// passes (§4.13's typesetter, then §4.6's beam engraver) over the whole
// thing as one system. Errors are keyed by island so a single bad island
// doesn't stop the rest from rendering.
func engraveSystem(g *graph.Graph, acc *state.Accumulated, house *housestyle.HouseStyle, geo *geometry.Geometry) (map[graph.NodeIndex]*stamp.Stamp, typeset.Positions, map[graph.NodeIndex]error) {
	stamps := map[graph.NodeIndex]*stamp.Stamp{}
	errs := map[graph.NodeIndex]error{}
	instants := make([]int, geo.InstantCount)
	for t := range instants {
		instants[t] = t
	}

	for p := 0; p < geo.PartCount; p++ {
		for t := 0; t < geo.InstantCount; t++ {
			isl := geo.At(p, t)
			if isl == graph.NoNode {
				continue
			}
			s, err := engrave.EngraveIsland(g, isl, acc, house)
			if err != nil {
				errs[isl] = err
				continue
			}
			stamps[isl] = s
		}
	}

	positions := typeset.TypesetSystem(geo, stamps, instants)
	typeset.EngraveBeams(g, acc, house, stamps, positions)
	typeset.EngraveFloatSpans(g, house, stamps, positions)
	return stamps, positions, errs
}

func renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <graph.xml>",
		Short: "Engrave every island and dump its bounds and placement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			house := housestyle.Default()
			acc := state.Accumulate(g, house)
			geo := geometry.Parse(g)
			stamps, positions, errs := engraveSystem(g, acc, house, geo)

			for p := 0; p < geo.PartCount; p++ {
				for t := 0; t < geo.InstantCount; t++ {
					island := geo.At(p, t)
					if island == graph.NoNode {
						continue
					}
					if err, ok := errs[island]; ok {
						fmt.Fprintf(cmd.OutOrStdout(), "part %d instant %d island %d: error: %v\n", p, t, island, err)
						continue
					}
					s := stamps[island]
					b := s.Bounds()
					fmt.Fprintf(cmd.OutOrStdout(), "part %d instant %d island %d: bounds=[%.3f %.3f %.3f %.3f] graphics=%d x=%.3f\n",
						p, t, island, b.Left, b.Bottom, b.Right, b.Top, len(s.Graphics), positions.IslandX[island])
				}
			}
			return nil
		},
	}
}

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <graph.xml>",
		Short: "Interactively step through a graph's geometry matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			house := housestyle.Default()
			acc := state.Accumulate(g, house)
			geo := geometry.Parse(g)
			stamps, _, errs := engraveSystem(g, acc, house, geo)

			bounds := map[graph.NodeIndex]stamp.Bounds{}
			for isl, s := range stamps {
				bounds[isl] = s.Bounds()
			}

			m := browse.New(geo, bounds, errs)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
}

func midiCmd() *cobra.Command {
	var tempo float64
	cmd := &cobra.Command{
		Use:   "midi <graph.xml> <out.mid>",
		Short: "Project a graph's rhythm onto a Standard MIDI File",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			geo := geometry.Parse(g)

			channels := make([]int, geo.PartCount)
			for p := range channels {
				channels[p] = p % 16
			}
			events := midi.Project(g, geo, channels, concept.NewDuration(0, 1))

			out, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("engrave: creating %s: %w", args[1], err)
			}
			defer out.Close()

			programs := make([]int, geo.PartCount)
			if err := midi.WriteSMF(out, events, geo.PartCount, tempo, programs); err != nil {
				return fmt.Errorf("engrave: writing %s: %w", args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d events spanning %s whole notes to %s\n", len(events), midi.TotalWhole(events).RatString(), args[1])
			return nil
		},
	}
	cmd.Flags().Float64Var(&tempo, "tempo", 120, "tempo in beats per minute")
	return cmd
}

func roundtripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip <graph.xml>",
		Short: "Import, export, and re-import a graph, asserting attribute equivalence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("engrave: reading %s: %w", args[0], err)
			}
			g1, err := xmlio.Import(data)
			if err != nil {
				return fmt.Errorf("engrave: importing %s: %w", args[0], err)
			}
			reexported, err := xmlio.Export(g1)
			if err != nil {
				return fmt.Errorf("engrave: re-exporting: %w", err)
			}
			g2, err := xmlio.Import(reexported)
			if err != nil {
				return fmt.Errorf("engrave: re-importing: %w", err)
			}
			if err := assertEquivalent(g1, g2); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "roundtrip OK: %d nodes, %d edges\n", len(g1.Nodes), len(g1.Edges))
			return nil
		},
	}
}

// assertEquivalent compares two graphs node-for-node (kind, token kind and
// every attribute) and checks that their edge counts match; edges are not
// compared one by one. It fails on the first mismatch.
func assertEquivalent(g1, g2 *graph.Graph) error {
	if len(g1.Nodes) != len(g2.Nodes) {
		return fmt.Errorf("engrave: roundtrip mismatch: %d nodes vs %d", len(g1.Nodes), len(g2.Nodes))
	}
	if len(g1.Edges) != len(g2.Edges) {
		return fmt.Errorf("engrave: roundtrip mismatch: %d edges vs %d", len(g1.Edges), len(g2.Edges))
	}
	for i := range g1.Nodes {
		a, b := g1.Nodes[i], g2.Nodes[i]
		if a.Kind != b.Kind || a.TokenKind != b.TokenKind {
			return fmt.Errorf("engrave: roundtrip mismatch: node %d kind changed", i)
		}
		if len(a.Label.Attrs) != len(b.Label.Attrs) {
			return fmt.Errorf("engrave: roundtrip mismatch: node %d attribute count changed", i)
		}
		for k, v := range a.Label.Attrs {
			v2, ok := b.Label.Get(k)
			if !ok || v.String() != v2.String() {
				return fmt.Errorf("engrave: roundtrip mismatch: node %d attribute %q: %q vs %q", i, k, v.String(), v2.String())
			}
		}
	}
	return nil
}
