package plot

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"path/filepath"
	"strings"

	"github.com/hscells/boato/output"
	"github.com/hscells/boato/pipeline"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Radial range of the radar charts.
const (
	radarMin = 0.5
	radarMax = 1.05
)

var radarRings = []float64{0.5, 0.6, 0.7, 0.8, 0.9, 1.0}

// radius maps a score onto the chart, where scores below radarMin sit at the centre.
func radius(v float64) float64 {
	r := (v - radarMin) / (radarMax - radarMin)
	if r < 0 {
		return 0
	}
	return r
}

// spoke is the angle of the k-th of n spokes, counter-clockwise from the east.
func spoke(k, n int) float64 {
	return 2 * math.Pi * float64(k) / float64(n)
}

func polar(r, theta float64) plotter.XY {
	return plotter.XY{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

func validMetric(metric string) bool {
	for _, m := range output.Metrics() {
		if m == metric {
			return true
		}
	}
	return false
}

// Radar draws, for each base, a radar chart of a metric with one spoke per classifier and one polygon per
// representation, saving each as radar_<metric>_<base>.png in dir.
func Radar(reps []Representation, metric, dir string, bases int) ([]string, error) {
	if !validMetric(metric) {
		return nil, errors.Errorf("invalid metric %q, choose from %s", metric, strings.Join(output.Metrics(), ", "))
	}

	var paths []string
	for i := 1; i <= bases; i++ {
		base := pipeline.BaseName(i)
		p, err := radar(reps, metric, base)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, fmt.Sprintf("radar_%s_%s.png", metric, strings.ReplaceAll(base, " ", "_")))
		if err := save(p, 7, 6, path); err != nil {
			return nil, errors.Wrapf(err, "saving radar chart of %s for %s", metric, base)
		}
		log.Printf("radar chart for %s (%s) saved to %s\n", metric, base, path)
		paths = append(paths, path)
	}
	return paths, nil
}

func radar(reps []Representation, metric, base string) (*plot.Plot, error) {
	clfs := Classifiers()
	n := len(clfs)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Radar Plot - %s", base)
	p.HideAxes()
	p.Legend.Top = true

	grey := color.Gray{Y: 180}
	for _, ring := range radarRings {
		var xys plotter.XYs
		for s := 0; s <= 72; s++ {
			xys = append(xys, polar(radius(ring), 2*math.Pi*float64(s)/72))
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		l.Color = grey
		l.Width = vg.Points(0.5)
		l.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(l)
	}

	var annotations plotter.XYLabels
	for k, clf := range clfs {
		l, err := plotter.NewLine(plotter.XYs{{}, polar(radius(1), spoke(k, n))})
		if err != nil {
			return nil, err
		}
		l.Color = grey
		l.Width = vg.Points(0.5)
		p.Add(l)
		annotations.XYs = append(annotations.XYs, polar(1.12, spoke(k, n)))
		annotations.Labels = append(annotations.Labels, clf)
	}
	for _, ring := range radarRings {
		annotations.XYs = append(annotations.XYs, polar(radius(ring), spoke(1, 2*n)))
		annotations.Labels = append(annotations.Labels, fmt.Sprintf("%.1f", ring))
	}
	labels, err := plotter.NewLabels(annotations)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)

	for i, rep := range reps {
		var xys plotter.XYs
		for k, clf := range clfs {
			v, _ := rep.Results.Lookup(base, rep.Key, clf, metric)
			xys = append(xys, polar(radius(v), spoke(k, n)))
		}
		c := plotutil.Color(i)
		r, g, b, _ := c.RGBA()
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return nil, err
		}
		poly.Color = color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 26}
		poly.LineStyle.Color = c
		poly.LineStyle.Width = vg.Points(1.5)
		p.Add(poly)
		p.Legend.Add(label(radarLabel, rep.Key), poly)
	}

	lim := radius(1) * 1.25
	p.X.Min, p.X.Max = -lim, lim
	p.Y.Min, p.Y.Max = -lim, lim
	return p, nil
}
