package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/alexflint/go-arg"
	"github.com/go-errors/errors"
	"github.com/hscells/boato"
	"github.com/hscells/boato/pipeline"
)

var (
	name    = "boato"
	version = "18.Oct.2026"
	author  = "Harry Scells"
)

type args struct {
	Mode    string `help:"full runs every experiment then charts the results; charts only redraws saved results" arg:"-m,required"`
	Config  string `help:"TOML file overriding the default experiment configuration" arg:"-c"`
	Repos   string `help:"directory corpus repositories are cloned into" arg:"--repos"`
	Results string `help:"directory results and charts are written to" arg:"--results"`
	NoCache bool   `help:"preprocess every corpus again instead of reading cached copies" arg:"--no-cache"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s`, name, author, version)
}

func main() {
	var args args
	p := arg.MustParse(&args)

	mode, err := boato.ParseMode(args.Mode)
	if err != nil {
		p.Fail(err.Error())
	}

	config := boato.DefaultConfig()
	if len(args.Config) > 0 {
		config, err = boato.LoadConfig(args.Config)
		if err != nil {
			log.Fatalln(err)
		}
	}
	if len(args.Repos) > 0 {
		config.RepoDir = args.Repos
	}
	if len(args.Results) > 0 {
		config.ResultsDir = args.Results
	}
	if args.NoCache {
		config.NoCache = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := make(chan pipeline.Result)
	go boato.NewPipeline(config, boato.RunMode(mode)).Execute(ctx, c)

	failed := false
	for result := range c {
		switch result.Type {
		case pipeline.Evaluation:
			log.Printf("%s %s %s accuracy=%.4f f1_score=%.4f\n", result.Base, result.Representation, result.Classifier, result.Scores["accuracy"], result.Scores["f1_score"])
		case pipeline.Error:
			fmt.Println(errors.Wrap(result.Error, 0).ErrorStack())
			failed = true
		case pipeline.Done:
			log.Printf("done; results in %s\n", config.ResultsDir)
		}
	}
	if failed {
		stop()
		os.Exit(1)
	}
}
