// Package handlers provides HTTP request handling
package handlers

// Common error messages
const (
	ErrMsgInvalidID        = "Invalid id"
	ErrMsgInvalidReqBody   = "Invalid request body"
	ErrMsgInvalidReqFormat = "Invalid request format"
)

// Job error messages
const (
	ErrMsgJobNameRequired  = "Job name is required"
	ErrMsgJobNotFound      = "Job not found"
	ErrMsgJobCreateFailed  = "Failed to create job"
	ErrMsgJobListFailed    = "Failed to list jobs"
	ErrMsgJobConfirmFailed = "Failed to confirm job"
	ErrMsgJobGetFailed     = "Failed to get job"
)

// Task error messages
const (
	ErrMsgTaskNotFound      = "Task not found"
	ErrMsgTaskListFailed    = "Failed to list tasks"
	ErrMsgTaskProcessFailed = "Failed to process task"
)
