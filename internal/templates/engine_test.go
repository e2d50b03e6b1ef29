package templates

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenskeep/studio/config"
	"github.com/lenskeep/studio/internal/db/models"
)

func testContext() Context {
	start := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	return Context{
		Job: &models.Job{
			Name:        "Summer wedding",
			ClientName:  "Ada Client",
			ClientEmail: "ada@example.com",
			Venue:       "Riverside hall",
			StartDate:   &start,
			StartTime:   "14:00",
		},
		Task: &models.Task{
			Name:        "Send brochure",
			Description: "Introductory material",
		},
		Company: config.Company{
			Name:  "Lenskeep Studio",
			Email: "hello@lenskeep.example",
		},
	}
}

func testWhitelist() map[string]string {
	return map[string]string{
		"client":  "job.client_name",
		"venue":   "job.venue",
		"date":    "job.start_date",
		"company": "company.name",
		"task":    "task.name",
	}
}

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	engine := NewEngine(testWhitelist())

	out, err := engine.Render(Template{
		Subject: "Hello {client}",
		Body:    "Dear {client}, see you at {venue} on {date}.\n{company}",
	}, testContext())
	require.NoError(t, err)

	assert.Equal(t, "Hello Ada Client", out.Subject)
	assert.Equal(t, "Dear Ada Client, see you at Riverside hall on 2026-06-20.\nLenskeep Studio", out.Body)
}

func TestRenderRepeatedPlaceholder(t *testing.T) {
	engine := NewEngine(testWhitelist())

	out, err := engine.Render(Template{
		Body: "{client} {client} {client}",
	}, testContext())
	require.NoError(t, err)
	assert.Equal(t, "Ada Client Ada Client Ada Client", out.Body)
}

func TestRenderUnknownPlaceholder(t *testing.T) {
	engine := NewEngine(testWhitelist())

	_, err := engine.Render(Template{
		Body: "Dear {client}, your {bogus} is ready",
	}, testContext())
	require.Error(t, err)

	var unknown *UnknownPlaceholderError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "bogus", unknown.Placeholder)
}

func TestRenderUnresolvablePath(t *testing.T) {
	engine := NewEngine(map[string]string{
		"secret": "job.internal_notes",
	})

	_, err := engine.Render(Template{Body: "{secret}"}, testContext())
	assert.Error(t, err)
}

func TestRenderMissingAppointmentContext(t *testing.T) {
	engine := NewEngine(map[string]string{
		"slot": "appointment.start_date",
	})

	ctx := testContext()
	ctx.Appointment = nil
	_, err := engine.Render(Template{Body: "See you on {slot}"}, ctx)
	assert.Error(t, err)
}

func TestRenderAppointmentFields(t *testing.T) {
	engine := NewEngine(map[string]string{
		"place": "appointment.venue",
		"slot":  "appointment.start_date",
	})

	start := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	ctx := testContext()
	ctx.Appointment = &models.Appointment{
		Venue:     "Studio one",
		StartDate: &start,
	}

	out, err := engine.Render(Template{Body: "{place} on {slot}"}, ctx)
	require.NoError(t, err)
	assert.Equal(t, "Studio one on 2026-05-02", out.Body)
}

func TestFieldsDeduplicates(t *testing.T) {
	engine := NewEngine(nil)

	fields := engine.Fields(Template{
		Subject: "About {client}",
		Body:    "{client} booked {venue}; reply to {client}",
	})
	assert.ElementsMatch(t, []string{"client", "venue"}, fields)
}

func TestFieldsIgnoresMalformedBraces(t *testing.T) {
	engine := NewEngine(nil)

	fields := engine.Fields(Template{
		Body: "literal {not closed and {123} and {}",
	})
	assert.Empty(t, fields)
}
