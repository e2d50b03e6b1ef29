// Package services provides the business logic of the studio back office:
// workflow instantiation, task processing and completion rollup.
package services

import "errors"

// Domain errors surfaced by the workflow engine. They are raised
// synchronously and handled at the request boundary; the engine itself never
// retries.
var (
	// ErrMissingWorkflow is returned when confirming a job that has no
	// workflow definition assigned
	ErrMissingWorkflow = errors.New("job has no workflow assigned")

	// ErrAlreadyInstantiated is returned when instantiation runs for a job
	// that already has its work graph materialized
	ErrAlreadyInstantiated = errors.New("job workflow already instantiated")

	// ErrOutOfSequence is returned when processing a task whose phase is not
	// next in line
	ErrOutOfSequence = errors.New("task phase is not next in sequence")

	// ErrInvoiceNotSettled is returned when processing a task that requires
	// prior payment while the invoice has an outstanding balance
	ErrInvoiceNotSettled = errors.New("invoice is not settled")

	// ErrAlreadyCompleted is returned when re-processing a finished task
	ErrAlreadyCompleted = errors.New("task already completed")

	// ErrInvalidState indicates an impossible combination of task kind and
	// response state reached the transition logic; it points at a data
	// integrity bug, not at caller misuse
	ErrInvalidState = errors.New("invalid task state")
)
