package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatus(t *testing.T) {
	tests := []struct {
		name          string
		status        JobStatus
		stringValue   string
		jsonValue     string
		validForParse bool
	}{
		{
			name:          "Request status",
			status:        JobStatusRequest,
			stringValue:   "request",
			jsonValue:     `"request"`,
			validForParse: true,
		},
		{
			name:          "Confirmed status",
			status:        JobStatusConfirmed,
			stringValue:   "confirmed",
			jsonValue:     `"confirmed"`,
			validForParse: true,
		},
		{
			name:          "Declined status",
			status:        JobStatusDeclined,
			stringValue:   "declined",
			jsonValue:     `"declined"`,
			validForParse: true,
		},
		{
			name:          "Invalid status",
			status:        JobStatus("cancelled"),
			stringValue:   "cancelled",
			jsonValue:     `"cancelled"`,
			validForParse: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.stringValue, tt.status.String())

			parsed, err := ParseJobStatus(tt.stringValue)
			if tt.validForParse {
				assert.NoError(t, err)
				assert.Equal(t, tt.status, parsed)
			} else {
				assert.Error(t, err)
			}

			var unmarshaled JobStatus
			err = json.Unmarshal([]byte(tt.jsonValue), &unmarshaled)
			if tt.validForParse {
				assert.NoError(t, err)
				assert.Equal(t, tt.status, unmarshaled)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPhaseMarkerForWork(t *testing.T) {
	tests := []struct {
		workName string
		marker   TaskStatus
		known    bool
	}{
		{"Job request", TaskStatusRequestDone, true},
		{"Contract booking", TaskStatusContractBooked, true},
		{"Job confirmation", TaskStatusConfirmed, true},
		{"Pre shoot", TaskStatusPreShoot, true},
		{"Main shoot", TaskStatusMainShoot, true},
		{"Post shoot", TaskStatusPostShoot, true},
		{"Job done", TaskStatusDone, true},
		{"Retouching", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.workName, func(t *testing.T) {
			marker, ok := PhaseMarkerForWork(tt.workName)
			assert.Equal(t, tt.known, ok)
			assert.Equal(t, tt.marker, marker)
		})
	}
}

func TestJobValidate(t *testing.T) {
	workflowID := uint(1)

	t.Run("valid request without workflow", func(t *testing.T) {
		job := Job{Name: "wedding", Status: JobStatusRequest}
		assert.NoError(t, job.Validate())
	})

	t.Run("empty name", func(t *testing.T) {
		job := Job{Status: JobStatusRequest}
		assert.Error(t, job.Validate())
	})

	t.Run("confirmed requires workflow", func(t *testing.T) {
		job := Job{Name: "wedding", Status: JobStatusConfirmed}
		assert.Error(t, job.Validate())

		job.WorkflowID = &workflowID
		assert.NoError(t, job.Validate())
	})
}

func TestJobBeforeCreateDefaultsStatus(t *testing.T) {
	job := Job{Name: "wedding"}
	assert.NoError(t, job.BeforeCreate(nil))
	assert.Equal(t, JobStatusRequest, job.Status)
}
