package plot

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"github.com/hscells/boato/pipeline"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
)

// grid is a matrix of scores. Row r is drawn at the top when r is zero.
type grid struct {
	rows, cols []string
	values     [][]float64
}

func (g grid) Dims() (c, r int) { return len(g.cols), len(g.rows) }
func (g grid) Z(c, r int) float64 { return g.values[len(g.rows)-1-r][c] }
func (g grid) X(c int) float64   { return float64(c) }
func (g grid) Y(r int) float64   { return float64(r) }

func (g grid) Min() float64 {
	return g.extreme(func(a, b float64) bool { return a < b })
}

func (g grid) Max() float64 {
	return g.extreme(func(a, b float64) bool { return a > b })
}

func (g grid) extreme(better func(a, b float64) bool) float64 {
	e := g.values[0][0]
	for _, row := range g.values {
		for _, v := range row {
			if better(v, e) {
				e = v
			}
		}
	}
	return e
}

// heatmapGrid lays out one row per classifier and representation, sorted by label, and one column per base.
// Missing scores are 0.
func heatmapGrid(reps []Representation, metric string, bases int) grid {
	type rowKey struct{ label, rep, clf string }
	var keys []rowKey
	for _, rep := range reps {
		for _, clf := range Classifiers() {
			keys = append(keys, rowKey{fmt.Sprintf("%s_%s", clf, label(heatmapLabel, rep.Key)), rep.Key, clf})
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].label < keys[j].label })

	results := make(map[string]Representation, len(reps))
	for _, rep := range reps {
		results[rep.Key] = rep
	}

	g := grid{values: make([][]float64, len(keys))}
	for i := 1; i <= bases; i++ {
		g.cols = append(g.cols, pipeline.BaseName(i))
	}
	for r, k := range keys {
		g.rows = append(g.rows, k.label)
		g.values[r] = make([]float64, len(g.cols))
		for c, base := range g.cols {
			v, _ := results[k.rep].Results.Lookup(base, k.rep, k.clf, metric)
			g.values[r][c] = v
		}
	}
	return g
}

// Heatmap draws a classifier and representation by base heatmap of a metric, annotating every cell with its score,
// and saves it as heatmap_vertical_<metric>.png in dir.
func Heatmap(reps []Representation, metric, dir string, bases int) (string, error) {
	if len(reps) == 0 || bases < 1 {
		return "", errors.New("nothing to plot")
	}
	g := heatmapGrid(reps, metric, bases)

	pal, err := brewer.GetPalette(brewer.TypeSequential, "YlGnBu", 9)
	if err != nil {
		return "", err
	}
	h := plotter.NewHeatMap(g, pal)
	if h.Max == h.Min {
		h.Max = h.Min + 1
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Vertical Heatmap of %s by Base and Model", metric)
	p.X.Label.Text = "Dataset"
	p.Y.Label.Text = "Model + Representation"
	p.Add(h)

	var annotations plotter.XYLabels
	for r := range g.rows {
		for c := range g.cols {
			annotations.XYs = append(annotations.XYs, plotter.XY{X: float64(c), Y: float64(len(g.rows) - 1 - r)})
			annotations.Labels = append(annotations.Labels, fmt.Sprintf("%.3f", g.values[r][c]))
		}
	}
	labels, err := plotter.NewLabels(annotations)
	if err != nil {
		return "", err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)

	yNames := make([]string, len(g.rows))
	for i, name := range g.rows {
		yNames[len(g.rows)-1-i] = name
	}
	p.NominalX(g.cols...)
	p.NominalY(yNames...)

	path := filepath.Join(dir, fmt.Sprintf("heatmap_vertical_%s.png", metric))
	if err := save(p, 10, 10, path); err != nil {
		return "", errors.Wrapf(err, "saving heatmap of %s", metric)
	}
	log.Printf("heatmap for %s saved to %s\n", metric, path)
	return path, nil
}
