package boato_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hscells/boato"
	"github.com/hscells/boato/corpus"
	"github.com/hscells/boato/learning"
	"github.com/hscells/boato/pipeline"
	"github.com/hscells/boato/represent"
)

// memorySource is a corpus that lives in memory.
type memorySource struct {
	name        string
	trueT, fake string
	n           int
}

func (s memorySource) Name() string { return s.name }
func (s memorySource) URL() string  { return "https://example.com/" + s.name + ".git" }

func (s memorySource) Load(dir string, processor corpus.Processor) ([]pipeline.Document, []pipeline.Document, error) {
	var trueDocs, fakeDocs []pipeline.Document
	for i := 0; i < s.n; i++ {
		t, err := processor.Text(fmt.Sprintf("%s número %d", s.trueT, i))
		if err != nil {
			return nil, nil, err
		}
		f, err := processor.Text(fmt.Sprintf("%s número %d", s.fake, i))
		if err != nil {
			return nil, nil, err
		}
		trueDocs = append(trueDocs, pipeline.NewDocument(t, pipeline.True))
		fakeDocs = append(fakeDocs, pipeline.NewDocument(f, pipeline.Fake))
	}
	return trueDocs, fakeDocs, nil
}

func testConfig(dir string) boato.Config {
	c := boato.DefaultConfig()
	c.RepoDir = filepath.Join(dir, "repo")
	c.ResultsDir = filepath.Join(dir, "results")
	c.NoCache = true
	c.Sample = boato.SampleOptions{Source: "Boatos", Fake: 8, Seed: 42}
	c.Word2Vec.Size = 8
	c.Word2Vec.MinCount = 1
	c.Word2Vec.Workers = 1
	c.Word2Vec.Epochs = 2
	c.Classifiers.Forest.Trees = 5
	return c
}

func components(t *testing.T, mode boato.Mode) []func() interface{} {
	return []func() interface{}{
		boato.RunMode(mode),
		boato.Sources(
			memorySource{name: "Jornal", trueT: "governo anuncia investimento em escolas", fake: "urgente vacina contém chip secreto", n: 10},
			memorySource{name: "Boatos", trueT: "prefeitura inaugura hospital regional", fake: "compartilhe antes que apaguem", n: 10},
		),
		boato.Clone(func(ctx context.Context, url, dir string) error {
			return os.MkdirAll(dir, 0755)
		}),
	}
}

func collect(t *testing.T, p boato.Pipeline) []pipeline.Result {
	c := make(chan pipeline.Result)
	go p.Execute(context.Background(), c)
	var results []pipeline.Result
	for r := range c {
		if r.Type == pipeline.Error {
			t.Fatal(r.Error)
		}
		results = append(results, r)
	}
	if len(results) == 0 || results[len(results)-1].Type != pipeline.Done {
		t.Fatal("pipeline did not complete")
	}
	return results
}

func TestPipeline(t *testing.T) {
	dir := t.TempDir()
	config := testConfig(dir)

	results := collect(t, boato.NewPipeline(config, components(t, boato.Full)...))

	evaluations, charts := 0, 0
	for _, r := range results {
		switch r.Type {
		case pipeline.Evaluation:
			evaluations++
			if r.Scores["accuracy"] < 0 || r.Scores["accuracy"] > 1 {
				t.Errorf("unexpected accuracy %v", r.Scores["accuracy"])
			}
		case pipeline.Chart:
			charts++
		}
	}
	// 3 representations, 2 bases, 4 classifiers.
	if evaluations != 24 {
		t.Errorf("expected 24 evaluations, got %d", evaluations)
	}
	// a heatmap and a radar chart per base for each of the 4 metrics.
	if charts != 4*(1+2) {
		t.Errorf("expected 12 charts, got %d", charts)
	}

	for _, name := range []string{
		"results_bow.json", "results_tfidf.json", "results_word2vec.json", "summary.csv", "run.json",
		filepath.Join("heatmap", "heatmap_vertical_f1_score.png"),
		filepath.Join("radar", "radar_recall_Base_2.png"),
	} {
		if _, err := os.Stat(filepath.Join(config.ResultsDir, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}

	b, err := os.ReadFile(filepath.Join(config.ResultsDir, "results_tfidf.json"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"Base 1"`, `"Base 2"`, `"TFIDF"`, `"RandomForest"`, `"f1_score"`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("expected %s in results", want)
		}
	}

	// charts can be redrawn from the saved results alone.
	if err := os.RemoveAll(filepath.Join(config.ResultsDir, "heatmap")); err != nil {
		t.Fatal(err)
	}
	collect(t, boato.NewPipeline(config, components(t, boato.Charts)...))
	if _, err := os.Stat(filepath.Join(config.ResultsDir, "heatmap", "heatmap_vertical_accuracy.png")); err != nil {
		t.Error(err)
	}
}

func TestChartsWithoutResults(t *testing.T) {
	config := testConfig(t.TempDir())
	c := make(chan pipeline.Result)
	go boato.NewPipeline(config, components(t, boato.Charts)...).Execute(context.Background(), c)
	var last pipeline.Result
	for r := range c {
		last = r
	}
	if last.Type != pipeline.Error || !strings.Contains(last.Error.Error(), "--mode full") {
		t.Errorf("expected an error asking for a full run, got %+v", last)
	}
}

func TestSampleTooLarge(t *testing.T) {
	config := testConfig(t.TempDir())
	config.Sample.Fake = 100
	c := make(chan pipeline.Result)
	go boato.NewPipeline(config, components(t, boato.Full)...).Execute(context.Background(), c)
	var last pipeline.Result
	for r := range c {
		last = r
	}
	if last.Type != pipeline.Error {
		t.Errorf("expected an error sampling more documents than exist, got %+v", last)
	}
}

func TestNewPipelineDefaults(t *testing.T) {
	p := boato.NewPipeline(boato.DefaultConfig())
	if p.Mode != boato.Full || len(p.Sources) != 4 || len(p.Representations) != 3 || len(p.Evaluations) != 4 {
		t.Errorf("unexpected defaults %+v", p)
	}
	names := []string{represent.BOWKey, represent.TFIDFKey, represent.Word2VecKey}
	for i, rep := range p.Representations {
		if rep.Name() != names[i] {
			t.Errorf("expected %s, got %s", names[i], rep.Name())
		}
	}
	clfs := p.Classifiers()
	if len(clfs) != 4 || clfs[0].Name() != "SVC" {
		t.Errorf("unexpected classifiers %v", clfs)
	}

	p = boato.NewPipeline(boato.DefaultConfig(), boato.Classifiers(func() []learning.Classifier {
		return []learning.Classifier{learning.NewMultinomialNB(learning.DefaultBayesOptions())}
	}))
	if len(p.Classifiers()) != 1 {
		t.Error("classifier component not applied")
	}
}

func TestNewPipelineRepresentations(t *testing.T) {
	config := boato.DefaultConfig()
	config.Representations = []string{represent.TFIDFKey}
	p := boato.NewPipeline(config)
	if len(p.Representations) != 1 || p.Representations[0].Name() != represent.TFIDFKey {
		t.Fatalf("unexpected representations %v", p.Representations)
	}

	config.Representations = []string{"LSA"}
	c := make(chan pipeline.Result)
	go boato.NewPipeline(config).Execute(context.Background(), c)
	var results []pipeline.Result
	for r := range c {
		results = append(results, r)
	}
	if len(results) != 1 || results[0].Type != pipeline.Error || !strings.Contains(results[0].Error.Error(), "LSA") {
		t.Errorf("expected a single error naming the representation, got %+v", results)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := boato.ParseMode("charts"); err != nil || m != boato.Charts {
		t.Errorf("unexpected %v %v", m, err)
	}
	if _, err := boato.ParseMode("partial"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boato.toml")
	content := `
results_dir = "out"

[split]
seed = 7

[word2vec]
size = 50

[classifiers.random_forest]
trees = 10
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := boato.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.ResultsDir != "out" || c.Split.Seed != 7 || c.Word2Vec.Size != 50 || c.Classifiers.Forest.Trees != 10 {
		t.Errorf("configuration not applied: %+v", c)
	}
	if c.Split.TestSize != 0.2 || c.Word2Vec.Window != 10 || c.Sample.Fake != 1516 || c.Classifiers.Forest.Seed != 42 {
		t.Errorf("defaults not kept: %+v", c)
	}
	if c.RepoDir != "repo" || len(c.Representations) != 3 {
		t.Errorf("defaults not kept: %+v", c)
	}

	if err := os.WriteFile(path, []byte("representations = [\"BOW\", \"Word2Vec\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err = boato.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Representations) != 2 || c.Representations[1] != represent.Word2VecKey {
		t.Errorf("representations not applied: %v", c.Representations)
	}

	if err := os.WriteFile(path, []byte("representations = [\"LSA\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := boato.LoadConfig(path); err == nil {
		t.Error("expected an error for an unknown representation")
	}

	if err := os.WriteFile(path, []byte("unknown = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := boato.LoadConfig(path); err == nil {
		t.Error("expected an error for an unknown key")
	}
}
