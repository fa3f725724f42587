// Package pipeline contains the types that flow between the stages of an experiment.
package pipeline

// ResultType is the type of result being returned through a pipeline channel.
type ResultType uint8

const (
	// Evaluation is the evaluation of a single classifier on a base under one representation.
	Evaluation ResultType = iota
	// Saved indicates a results file was written.
	Saved
	// Chart indicates a chart was rendered.
	Chart
	// Error indicates an error was raised.
	Error
	// Done indicates the pipeline has completed.
	Done
)

// Result is the output of a boato pipeline.
type Result struct {
	Base           string
	Representation string
	Classifier     string
	Model          string
	Scores         map[string]float64
	Path           string
	Type           ResultType
	Error          error
}
