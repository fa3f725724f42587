package learning

import (
	"context"
	"log"

	"github.com/hscells/boato/eval"
	"github.com/hscells/boato/pipeline"
	"github.com/hscells/boato/represent"
	"github.com/pkg/errors"
)

// Options hold the parameters of every classifier.
type Options struct {
	SVC      SVCOptions      `toml:"svc"`
	Logistic LogisticOptions `toml:"logistic_regression"`
	Bayes    BayesOptions    `toml:"multinomial_nb"`
	Forest   ForestOptions   `toml:"random_forest"`
}

// DefaultOptions are the default parameters of every classifier.
func DefaultOptions() Options {
	return Options{
		SVC:      DefaultSVCOptions(),
		Logistic: DefaultLogisticOptions(),
		Bayes:    DefaultBayesOptions(),
		Forest:   DefaultForestOptions(),
	}
}

// NewClassifiers creates fresh, untrained classifiers in the order they are reported: SVC, LogisticRegression,
// MultinomialNB, RandomForest.
func NewClassifiers(options Options) []Classifier {
	return []Classifier{
		NewSVC(options.SVC),
		NewLogisticRegression(options.Logistic),
		NewMultinomialNB(options.Bayes),
		NewRandomForest(options.Forest),
	}
}

// ClassifierNames are the names of the classifiers created by NewClassifiers, in the same order.
func ClassifierNames() []string {
	return []string{"SVC", "LogisticRegression", "MultinomialNB", "RandomForest"}
}

// Outcome is the evaluation of one classifier on the held out rows of a base.
type Outcome struct {
	Classifier string
	Model      string
	Scores     map[string]float64
	Confusion  eval.ConfusionMatrix
}

// Run represents the documents of a base, splits them, then trains and evaluates each classifier on the split.
// Outcomes are returned in the order of the classifiers.
func Run(ctx context.Context, rep represent.Representation, base pipeline.Corpus, classifiers []Classifier, evaluators []eval.Evaluator, split SplitOptions) ([]Outcome, error) {
	log.Printf("representing %s (%d documents) with %s\n", base.Name, len(base.Documents), rep.Name())
	X, err := rep.Represent(ctx, base.Texts())
	if err != nil {
		return nil, errors.Wrapf(err, "representing %s with %s", base.Name, rep.Name())
	}

	y := base.Labels()
	train, test, err := StratifiedSplit(y, split.TestSize, split.Seed)
	if err != nil {
		return nil, errors.Wrapf(err, "splitting %s", base.Name)
	}
	XTrain, XTest := X.Subset(train), X.Subset(test)
	yTrain, yTest := subset(y, train), subset(y, test)

	outcomes := make([]Outcome, 0, len(classifiers))
	for _, clf := range classifiers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Printf("training %s on %s/%s\n", clf.Name(), base.Name, rep.Name())
		if err := clf.Fit(XTrain, yTrain); err != nil {
			return nil, errors.Wrapf(err, "fitting %s on %s/%s", clf.Name(), base.Name, rep.Name())
		}
		pred, err := clf.Predict(XTest)
		if err != nil {
			return nil, errors.Wrapf(err, "predicting with %s on %s/%s", clf.Name(), base.Name, rep.Name())
		}

		o := Outcome{
			Classifier: clf.Name(),
			Model:      clf.String(),
			Scores:     eval.Evaluate(evaluators, yTest, pred),
			Confusion:  eval.NewConfusionMatrix(yTest, pred),
		}
		log.Printf("%s on %s/%s: %v\n%s\n", clf.Name(), base.Name, rep.Name(), o.Scores, o.Confusion)
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

func subset(y, rows []int) []int {
	s := make([]int, len(rows))
	for i, r := range rows {
		s[i] = y[r]
	}
	return s
}
