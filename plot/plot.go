// Package plot renders heatmaps and radar charts of experiment results.
package plot

import (
	"os"
	"path/filepath"

	"github.com/hscells/boato/learning"
	"github.com/hscells/boato/output"
	"github.com/hscells/boato/represent"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DPI of every saved chart.
const DPI = 300

// Representation is the results of one representation, with the names it is shown under.
type Representation struct {
	Key     string
	Results output.Results
}

// heatmapLabel and radarLabel name a representation in chart labels and legends.
var (
	heatmapLabel = map[string]string{represent.BOWKey: "BoW", represent.TFIDFKey: "TFIDF", represent.Word2VecKey: "Word2Vec"}
	radarLabel   = map[string]string{represent.BOWKey: "BoW", represent.TFIDFKey: "TF-IDF", represent.Word2VecKey: "Word2Vec"}
)

// Classifiers are the classifier names charted, in spoke order.
func Classifiers() []string {
	return learning.ClassifierNames()
}

func label(labels map[string]string, key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}

// save draws the plot onto a PNG canvas of the given size in inches.
func save(p *plot.Plot, w, h float64, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return err
	}
	c := vgimg.NewWith(vgimg.UseWH(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch), vgimg.UseDPI(DPI))
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
