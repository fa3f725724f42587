// Package boato runs a text classification experiment over Portuguese fake news corpora, comparing every pairing of
// representation and classifier on nested bases of increasing size.
package boato

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/hscells/boato/corpus"
	"github.com/hscells/boato/eval"
	"github.com/hscells/boato/learning"
	"github.com/hscells/boato/output"
	"github.com/hscells/boato/pipeline"
	"github.com/hscells/boato/plot"
	"github.com/hscells/boato/preprocess"
	"github.com/hscells/boato/represent"
	"github.com/hscells/headway"
	"github.com/pkg/errors"
)

// Mode selects what a pipeline does.
type Mode string

const (
	// Full loads the corpora, runs every experiment, saves the results and charts them.
	Full Mode = "full"
	// Charts only charts results saved by an earlier full run.
	Charts Mode = "charts"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Full, Charts:
		return Mode(s), nil
	}
	return "", errors.Errorf("invalid mode %q, use full or charts", s)
}

// ClassifierFactory creates fresh, untrained classifiers for each experiment.
type ClassifierFactory func() []learning.Classifier

// Pipeline contains everything needed to run the experiment.
type Pipeline struct {
	Config          Config
	Mode            Mode
	Sources         []corpus.Source
	Representations []represent.Representation
	Classifiers     ClassifierFactory
	Evaluations     []eval.Evaluator
	Clone           corpus.CloneFunc

	// err is a configuration error reported when the pipeline is executed.
	err error
}

// Sources sets the corpora bases are composed from, in order.
func Sources(sources ...corpus.Source) func() interface{} {
	return func() interface{} {
		return sources
	}
}

// Representations sets the representations compared.
func Representations(reps ...represent.Representation) func() interface{} {
	return func() interface{} {
		return reps
	}
}

// Classifiers sets how the classifiers compared are created.
func Classifiers(factory ClassifierFactory) func() interface{} {
	return func() interface{} {
		return factory
	}
}

// Evaluation sets the evaluation measures.
func Evaluation(measures ...eval.Evaluator) func() interface{} {
	return func() interface{} {
		return measures
	}
}

// Clone sets how missing corpus repositories are fetched.
func Clone(clone corpus.CloneFunc) func() interface{} {
	return func() interface{} {
		return clone
	}
}

// RunMode sets the mode of the pipeline.
func RunMode(mode Mode) func() interface{} {
	return func() interface{} {
		return mode
	}
}

// NewPipeline creates a new pipeline. Components not provided through the optional functional arguments are built
// from the configuration.
func NewPipeline(config Config, components ...func() interface{}) Pipeline {
	reps, err := config.representations()
	p := Pipeline{
		Config:          config,
		Mode:            Full,
		Sources:         corpus.Sources(),
		Representations: reps,
		Classifiers: func() []learning.Classifier {
			return learning.NewClassifiers(config.Classifiers)
		},
		Evaluations: eval.Measures(),
		err:         err,
	}

	for _, component := range components {
		val := component()
		switch v := val.(type) {
		case []corpus.Source:
			p.Sources = v
		case []represent.Representation:
			p.Representations = v
			p.err = nil
		case ClassifierFactory:
			p.Classifiers = v
		case []eval.Evaluator:
			p.Evaluations = v
		case corpus.CloneFunc:
			p.Clone = v
		case Mode:
			p.Mode = v
		}
	}

	return p
}

// ResultsPath is where the results of a representation are saved.
func ResultsPath(dir, representation string) string {
	return filepath.Join(dir, fmt.Sprintf("results_%s.json", strings.ToLower(representation)))
}

// Execute runs the pipeline, streaming results through c. The channel is closed once a Done or Error result has
// been sent.
func (p Pipeline) Execute(ctx context.Context, c chan pipeline.Result) {
	defer close(c)
	if p.err != nil {
		c <- pipeline.Result{Error: p.err, Type: pipeline.Error}
		return
	}
	log.Println("starting boato pipeline...")

	manifest := output.NewManifest(string(p.Mode), p.Config)

	var hw *headway.Client
	if len(p.Config.HeadwayServer) > 0 {
		hw = headway.NewClient(p.Config.HeadwayServer, fmt.Sprintf("boato pipeline [#%d]", time.Now().Unix()))
	}

	var (
		results map[string]output.Results
		err     error
	)
	switch p.Mode {
	case Full:
		results, err = p.experiment(ctx, c, manifest, hw)
	case Charts:
		results, err = p.load()
	default:
		err = errors.Errorf("invalid mode %q", p.Mode)
	}
	if err != nil {
		if hw != nil {
			_ = hw.Send(0, 1, err.Error())
		}
		c <- pipeline.Result{Error: err, Type: pipeline.Error}
		return
	}

	if err := p.visualise(results, c, manifest); err != nil {
		c <- pipeline.Result{Error: err, Type: pipeline.Error}
		return
	}

	if err := manifest.Save(filepath.Join(p.Config.ResultsDir, "run.json")); err != nil {
		c <- pipeline.Result{Error: err, Type: pipeline.Error}
		return
	}
	if hw != nil {
		_ = hw.Send(1, 1, "done!")
	}

	log.Println("pipeline complete")
	c <- pipeline.Result{Type: pipeline.Done}
}

// bases loads every source and composes them into nested bases.
func (p Pipeline) bases(ctx context.Context) ([]pipeline.Corpus, error) {
	preprocessor, err := preprocess.New(p.Config.Preprocess)
	if err != nil {
		return nil, err
	}
	loader := corpus.Loader{
		Directory: p.Config.RepoDir,
		Processor: preprocessor,
		Clone:     p.Clone,
	}
	if !p.Config.NoCache {
		loader.Cache = corpus.NewCache(p.Config.CacheDir)
	}

	log.Println("loading datasets...")
	splits := make([]corpus.Split, len(p.Sources))
	for i, source := range p.Sources {
		split, err := loader.Load(ctx, source)
		if err != nil {
			return nil, err
		}
		if source.Name() == p.Config.Sample.Source && p.Config.Sample.Fake > 0 {
			split.Fake, err = corpus.Sample(split.Fake, p.Config.Sample.Fake, p.Config.Sample.Seed)
			if err != nil {
				return nil, errors.Wrapf(err, "sampling %s fake news", source.Name())
			}
			log.Printf("sampled %d fake documents from %s\n", len(split.Fake), source.Name())
		}
		splits[i] = split
	}

	bases := corpus.Bases(splits)
	for _, base := range bases {
		log.Printf("%s: %d documents (%d true, %d fake)\n", base.Name, len(base.Documents), base.Count(pipeline.True), base.Count(pipeline.Fake))
	}
	return bases, nil
}

// experiment runs every representation over every base, saving the results of each representation as it completes.
func (p Pipeline) experiment(ctx context.Context, c chan pipeline.Result, manifest *output.Manifest, hw *headway.Client) (map[string]output.Results, error) {
	bases, err := p.bases(ctx)
	if err != nil {
		return nil, err
	}

	total := len(p.Representations) * len(bases)
	bar := pb.StartNew(total)
	defer bar.Finish()

	results := make(map[string]output.Results, len(p.Representations))
	done := 0
	for _, rep := range p.Representations {
		log.Printf("processing representation %s\n", rep.Name())
		r := output.NewResults(len(bases))
		for _, base := range bases {
			outcomes, err := learning.Run(ctx, rep, base, p.Classifiers(), p.Evaluations, p.Config.Split)
			if err != nil {
				return nil, err
			}
			r.Fill(base.Name, rep.Name(), outcomes)
			for _, o := range outcomes {
				c <- pipeline.Result{
					Base:           base.Name,
					Representation: rep.Name(),
					Classifier:     o.Classifier,
					Model:          o.Model,
					Scores:         o.Scores,
					Type:           pipeline.Evaluation,
				}
			}

			done++
			bar.Increment()
			if hw != nil {
				_ = hw.Send(float64(done), float64(total), fmt.Sprintf("%s on %s", rep.Name(), base.Name))
			}
		}

		path := ResultsPath(p.Config.ResultsDir, rep.Name())
		if err := r.Save(path); err != nil {
			return nil, errors.Wrapf(err, "saving %s results", rep.Name())
		}
		log.Printf("results for %s saved to %s\n", rep.Name(), path)
		manifest.Add(path)
		c <- pipeline.Result{Representation: rep.Name(), Path: path, Type: pipeline.Saved}
		results[rep.Name()] = r
	}

	summary, err := output.CsvMeasurementFormatter(results)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.Config.ResultsDir, 0777); err != nil {
		return nil, err
	}
	path := filepath.Join(p.Config.ResultsDir, "summary.csv")
	if err := os.WriteFile(path, []byte(summary), 0644); err != nil {
		return nil, err
	}
	manifest.Add(path)
	c <- pipeline.Result{Path: path, Type: pipeline.Saved}
	return results, nil
}

// load reads the results saved by an earlier full run.
func (p Pipeline) load() (map[string]output.Results, error) {
	log.Println("loading saved results...")
	results := make(map[string]output.Results, len(p.Representations))
	for _, rep := range p.Representations {
		r, err := output.Load(ResultsPath(p.Config.ResultsDir, rep.Name()))
		if err != nil {
			return nil, err
		}
		results[rep.Name()] = r
	}
	return results, nil
}

// visualise renders a heatmap and radar charts for every metric.
func (p Pipeline) visualise(results map[string]output.Results, c chan pipeline.Result, manifest *output.Manifest) error {
	log.Println("generating visualizations...")
	reps := make([]plot.Representation, 0, len(p.Representations))
	bases := 0
	for _, rep := range p.Representations {
		r := results[rep.Name()]
		reps = append(reps, plot.Representation{Key: rep.Name(), Results: r})
		if len(r) > bases {
			bases = len(r)
		}
	}

	heatmapDir := filepath.Join(p.Config.ResultsDir, "heatmap")
	radarDir := filepath.Join(p.Config.ResultsDir, "radar")
	for _, metric := range output.Metrics() {
		path, err := plot.Heatmap(reps, metric, heatmapDir, bases)
		if err != nil {
			return err
		}
		manifest.Add(path)
		c <- pipeline.Result{Path: path, Type: pipeline.Chart}

		paths, err := plot.Radar(reps, metric, radarDir, bases)
		if err != nil {
			return err
		}
		for _, path := range paths {
			manifest.Add(path)
			c <- pipeline.Result{Path: path, Type: pipeline.Chart}
		}
	}
	return nil
}
