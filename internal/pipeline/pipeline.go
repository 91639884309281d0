// Package pipeline orchestrates the launch sequence: a fixed ordered list of
// stages, each a fixed ordered list of external operations with a per-
// operation failure policy, executed by a single driver loop.
package pipeline

import (
	"context"
	"fmt"
)

// FailurePolicy decides what an operation failure does to the pipeline.
type FailurePolicy int

const (
	// Abort stops the whole pipeline.
	Abort FailurePolicy = iota

	// WarnContinue records a warning and moves on.
	WarnContinue
)

// Operation is one side-effecting step within a stage.
type Operation struct {
	// Name describes the operation for reporting.
	Name string

	// OnFailure is the stage's policy for this operation.
	OnFailure FailurePolicy

	// Run performs the operation. It blocks until done; later operations
	// depend on the state it leaves behind.
	Run func(ctx context.Context) error
}

// Stage is one ordered phase of the launch pipeline.
type Stage struct {
	Name string
	Ops  []Operation
}

// State is the orchestrator's lifecycle state.
type State string

const (
	// StateNotStarted is the initial state.
	StateNotStarted State = "not started"

	// StateComplete means every stage finished.
	StateComplete State = "complete"

	// StateAborted means a stage operation failed with the Abort policy.
	StateAborted State = "aborted"
)

// OperationResult records one executed operation.
type OperationResult struct {
	Stage     string
	Operation string
	Err       error

	// Warned is true when the operation failed under WarnContinue.
	Warned bool
}

// Report is the structured outcome of a pipeline run. The presentation
// layer renders it; the pipeline itself never prints.
type Report struct {
	State State

	// AbortedStage and AbortedOperation identify the failure point when
	// State is StateAborted.
	AbortedStage     string
	AbortedOperation string

	// Err is the aborting error, if any.
	Err error

	// Results lists every executed operation in order.
	Results []OperationResult

	// Warnings collects WarnContinue failures.
	Warnings []string
}

// Sink receives pipeline progress events. Implementations render them; a nil
// sink is valid and silent.
type Sink interface {
	StageStarted(stage string)
	OperationFinished(stage, op string, err error, warned bool)
}

// Orchestrator drives stages strictly in sequence. No operation is retried:
// the external operations are non-idempotent in ways that make blind retry
// unsafe, so failures surface to the operator instead.
type Orchestrator struct {
	stages []Stage
	sink   Sink
	state  State
}

// NewOrchestrator creates an orchestrator over the given stages.
func NewOrchestrator(stages []Stage, sink Sink) *Orchestrator {
	return &Orchestrator{
		stages: stages,
		sink:   sink,
		state:  StateNotStarted,
	}
}

// State returns the orchestrator's current state.
func (o *Orchestrator) State() State {
	return o.state
}

// Run executes every stage in order and returns the report. A failed
// operation with the Abort policy stops the run; partially created artifacts
// stay in place, with teardown as the designated remedy.
func (o *Orchestrator) Run(ctx context.Context) *Report {
	report := &Report{State: StateNotStarted}

	for _, stage := range o.stages {
		if o.sink != nil {
			o.sink.StageStarted(stage.Name)
		}

		for _, op := range stage.Ops {
			err := op.Run(ctx)

			warned := err != nil && op.OnFailure == WarnContinue
			report.Results = append(report.Results, OperationResult{
				Stage:     stage.Name,
				Operation: op.Name,
				Err:       err,
				Warned:    warned,
			})
			if o.sink != nil {
				o.sink.OperationFinished(stage.Name, op.Name, err, warned)
			}

			if err == nil {
				continue
			}
			if warned {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("%s: %s: %v", stage.Name, op.Name, err))
				continue
			}

			o.state = StateAborted
			report.State = StateAborted
			report.AbortedStage = stage.Name
			report.AbortedOperation = op.Name
			report.Err = err
			return report
		}
	}

	o.state = StateComplete
	report.State = StateComplete
	return report
}
