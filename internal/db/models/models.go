// Package models defines the database models for the studio back office
package models

// ListOptions provides pagination options for list operations
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultPageSize is the default number of rows returned by list operations
const DefaultPageSize = 50
