package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/Faultbox/stemforge/internal/config"
	"github.com/Faultbox/stemforge/internal/logger"
	"github.com/Faultbox/stemforge/internal/mesh"
	"github.com/Faultbox/stemforge/internal/plant"
	"github.com/Faultbox/stemforge/pkg/math"
	"github.com/Faultbox/stemforge/pkg/relation"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7fd35b"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
)

func runBuild(cmd *cobra.Command, args []string) error {
	defer logger.Sync()
	cfg, p, err := setup()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("plant: %d stems, %s mode", p.Hierarchy().Len(), cfg.Plant.Mode)))
	if err := printStems(out, p); err != nil {
		return err
	}
	m := p.Mesh()
	fmt.Fprintf(out, "%s %d vertices, %d faces\n", labelStyle.Render("mesh:"), m.VertexCount(), m.FaceCount())
	return nil
}

// printStems writes one row per stem in hierarchy order.
func printStems(w io.Writer, p *plant.Plant) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEM\tPARENT\tDEPTH\tLENGTH\tSIZE\tPOSITION")

	var werr error
	err := p.Hierarchy().Traverse(func(v plant.Visit) relation.Control {
		parent := "-"
		if v.HasParent {
			parent = strconv.Itoa(int(v.Parent))
		}
		particle, err := p.StemParticle(v.ID)
		if err != nil {
			werr = err
			return relation.Close
		}
		pos, err := p.Particles().Position(particle)
		if err != nil {
			werr = err
			return relation.Close
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.3f\t%.3f\t(%.3f, %.3f, %.3f)\n",
			v.ID, parent, v.Depth, v.Stem.Length, v.Stem.Size, pos.X, pos.Y, pos.Z)
		return relation.Continue
	})
	if err != nil {
		return err
	}
	if werr != nil {
		return werr
	}
	return tw.Flush()
}

func runRelax(cmd *cobra.Command, args []string) error {
	defer logger.Sync()
	_, p, err := setup()
	if err != nil {
		return err
	}
	if err := pullTip(p, pull); err != nil {
		return err
	}
	series, err := relaxSeries(p, ticks)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(series) == 0 {
		fmt.Fprintln(out, labelStyle.Render("no ticks run"))
		return nil
	}
	fmt.Fprintln(out, asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("max |stress| per tick"),
	))
	fmt.Fprintf(out, "%s %.4f -> %.4f\n", labelStyle.Render("stress:"), series[0], series[len(series)-1])
	return printStems(out, p)
}

func runExport(cmd *cobra.Command, args []string) error {
	defer logger.Sync()
	_, p, err := setup()
	if err != nil {
		return err
	}
	if err := settle(p, exportPull, exportTicks); err != nil {
		return err
	}
	return exportMesh(cmd.OutOrStdout(), p.Mesh(), format, output)
}

// settle applies the pull, runs the ticks and rebuilds the mesh from wherever
// the particles ended up.
func settle(p *plant.Plant, pull string, ticks int) error {
	if err := pullTip(p, pull); err != nil {
		return err
	}
	if _, err := relaxSeries(p, ticks); err != nil {
		return err
	}
	_, err := p.Refresh()
	return err
}

func exportMesh(stdout io.Writer, m *mesh.MeshMap, format, path string) (err error) {
	if format == "stl" {
		if path == "" {
			return fmt.Errorf("stl export needs --output")
		}
		return mesh.WriteSTL(path, m)
	}

	w := stdout
	if path != "" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("creating %s: %w", path, cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing %s: %w", path, cerr)
			}
		}()
		w = f
	}

	switch format {
	case "obj":
		return mesh.WriteOBJ(w, m.Export())
	case "json":
		return mesh.WriteJSON(w, m.Export())
	default:
		return fmt.Errorf("unknown format %q (want obj, json or stl)", format)
	}
}

// relaxSeries ticks the plant n times and returns the max stress after each.
func relaxSeries(p *plant.Plant, n int) ([]float64, error) {
	series := make([]float64, 0, n)
	for i := range n {
		rep, err := p.Tick()
		if err != nil {
			return series, fmt.Errorf("tick %d: %w", i, err)
		}
		series = append(series, float64(rep.MaxStress))
	}
	return series, nil
}

// pullTip moves the tip stem's particle; an empty target leaves it alone.
func pullTip(p *plant.Plant, target string) error {
	if target == "" {
		return nil
	}
	pos, err := parseVec3(target)
	if err != nil {
		return err
	}
	id, err := p.StemParticle(0)
	if err != nil {
		return err
	}
	return p.Particles().SetPosition(id, pos)
}

func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("invalid vector %q: want x,y,z", s)
	}
	var xyz [3]float32
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("invalid vector %q: %w", s, err)
		}
		xyz[i] = float32(f)
	}
	return math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func printPresets(w io.Writer) error {
	fmt.Fprintln(w, titleStyle.Render("presets:"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range config.ListPresets() {
		p, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "  %s\t%s\t%v\n", name, p.Mode, p.Lengths)
	}
	return tw.Flush()
}
