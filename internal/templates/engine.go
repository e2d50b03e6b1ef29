// Package templates resolves {field} placeholders in message templates
// against a whitelisted set of job, task, appointment and company attributes.
package templates

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/lenskeep/studio/config"
	"github.com/lenskeep/studio/internal/db/models"
)

// placeholderPattern matches ASCII words wrapped in braces, e.g. {venue}
var placeholderPattern = regexp.MustCompile(`{([A-Za-z]+)}`)

// UnknownPlaceholderError reports a placeholder that is not registered in
// the whitelist. The render is aborted, nothing is partially substituted.
type UnknownPlaceholderError struct {
	Placeholder string
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("template placeholder %q is not registered", e.Placeholder)
}

// Template is the subject and body pair a render operates on
type Template struct {
	Subject string
	Body    string
}

// Context carries the records placeholder paths resolve against. Job is
// always required; Task and Appointment only for paths that reach them.
type Context struct {
	Job         *models.Job
	Task        *models.Task
	Appointment *models.Appointment
	Company     config.Company
}

// resolvers is the closed set of attribute paths templates may reach. A
// whitelist row maps a placeholder to one of these paths; paths outside this
// table are rejected even when whitelisted.
var resolvers = map[string]func(Context) (string, error){
	"job.name":         func(c Context) (string, error) { return c.Job.Name, nil },
	"job.client_name":  func(c Context) (string, error) { return c.Job.ClientName, nil },
	"job.client_email": func(c Context) (string, error) { return c.Job.ClientEmail, nil },
	"job.venue":        func(c Context) (string, error) { return c.Job.Venue, nil },
	"job.venue_notes":  func(c Context) (string, error) { return c.Job.VenueNotes, nil },
	"job.note":         func(c Context) (string, error) { return c.Job.Note, nil },
	"job.start_date":   func(c Context) (string, error) { return formatDate(c.Job.StartDate), nil },
	"job.end_date":     func(c Context) (string, error) { return formatDate(c.Job.EndDate), nil },
	"job.start_time":   func(c Context) (string, error) { return c.Job.StartTime, nil },
	"job.end_time":     func(c Context) (string, error) { return c.Job.EndTime, nil },
	"task.name": func(c Context) (string, error) {
		if c.Task == nil {
			return "", fmt.Errorf("no task in template context")
		}
		return c.Task.Name, nil
	},
	"task.description": func(c Context) (string, error) {
		if c.Task == nil {
			return "", fmt.Errorf("no task in template context")
		}
		return c.Task.Description, nil
	},
	"appointment.venue": func(c Context) (string, error) {
		if c.Appointment == nil {
			return "", fmt.Errorf("no appointment in template context")
		}
		return c.Appointment.Venue, nil
	},
	"appointment.start_date": func(c Context) (string, error) {
		if c.Appointment == nil {
			return "", fmt.Errorf("no appointment in template context")
		}
		return formatDate(c.Appointment.StartDate), nil
	},
	"appointment.start_time": func(c Context) (string, error) {
		if c.Appointment == nil {
			return "", fmt.Errorf("no appointment in template context")
		}
		return c.Appointment.StartTime, nil
	},
	"company.name":    func(c Context) (string, error) { return c.Company.Name, nil },
	"company.email":   func(c Context) (string, error) { return c.Company.Email, nil },
	"company.phone":   func(c Context) (string, error) { return c.Company.Phone, nil },
	"company.website": func(c Context) (string, error) { return c.Company.Website, nil },
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// Engine renders templates against a placeholder whitelist
type Engine struct {
	whitelist map[string]string
}

// NewEngine creates an engine over a whitelist mapping placeholder names to
// dotted attribute paths
func NewEngine(whitelist map[string]string) *Engine {
	return &Engine{whitelist: whitelist}
}

// Fields returns the distinct placeholder names used by a template
func (e *Engine) Fields(tpl Template) []string {
	seen := make(map[string]bool)
	var fields []string
	for _, text := range []string{tpl.Body, tpl.Subject} {
		for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
			if !seen[match[1]] {
				seen[match[1]] = true
				fields = append(fields, match[1])
			}
		}
	}
	return fields
}

// Render substitutes every placeholder in the template's subject and body.
// Any placeholder missing from the whitelist aborts the render with an
// UnknownPlaceholderError naming the offender.
func (e *Engine) Render(tpl Template, ctx Context) (Template, error) {
	replacements := make(map[string]string)
	for _, field := range e.Fields(tpl) {
		path, ok := e.whitelist[field]
		if !ok {
			return Template{}, &UnknownPlaceholderError{Placeholder: field}
		}
		resolve, ok := resolvers[path]
		if !ok {
			return Template{}, fmt.Errorf("whitelisted placeholder %q maps to unresolvable path %q", field, path)
		}
		value, err := resolve(ctx)
		if err != nil {
			return Template{}, fmt.Errorf("resolving placeholder %q: %w", field, err)
		}
		replacements[field] = value
	}

	out := tpl
	for field, value := range replacements {
		token := "{" + field + "}"
		out.Subject = strings.ReplaceAll(out.Subject, token, value)
		out.Body = strings.ReplaceAll(out.Body, token, value)
	}
	return out, nil
}
