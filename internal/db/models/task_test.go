package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskKind(t *testing.T) {
	tests := []struct {
		name          string
		kind          TaskKind
		stringValue   string
		jsonValue     string
		validForParse bool
	}{
		{"Simple kind", TaskKindSimple, "simple", `"simple"`, true},
		{"Email kind", TaskKindEmail, "email", `"email"`, true},
		{"Contract kind", TaskKindContract, "contract", `"contract"`, true},
		{"Questionnaire kind", TaskKindQuestionnaire, "questionnaire", `"questionnaire"`, true},
		{"Appointment kind", TaskKindAppointment, "appointment", `"appointment"`, true},
		{"Invalid kind", TaskKind("phone-call"), "phone-call", `"phone-call"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.stringValue, tt.kind.String())

			parsed, err := ParseTaskKind(tt.stringValue)
			if tt.validForParse {
				assert.NoError(t, err)
				assert.Equal(t, tt.kind, parsed)
			} else {
				assert.Error(t, err)
			}

			var unmarshaled TaskKind
			err = json.Unmarshal([]byte(tt.jsonValue), &unmarshaled)
			if tt.validForParse {
				assert.NoError(t, err)
				assert.Equal(t, tt.kind, unmarshaled)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUserResponse(t *testing.T) {
	tests := []struct {
		name          string
		response      UserResponse
		stringValue   string
		validForParse bool
	}{
		{"Pending", UserResponsePending, "pending", true},
		{"Sent to user", UserResponseSent, "sent-to-user", true},
		{"User completed", UserResponseCompleted, "user-completed", true},
		{"Invalid", UserResponse("ignored"), "ignored", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.stringValue, tt.response.String())

			parsed, err := ParseUserResponse(tt.stringValue)
			if tt.validForParse {
				assert.NoError(t, err)
				assert.Equal(t, tt.response, parsed)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTaskValidate(t *testing.T) {
	t.Run("valid simple task", func(t *testing.T) {
		task := Task{WorkID: 1, Name: "Shoot", Kind: TaskKindSimple}
		assert.NoError(t, task.Validate())
	})

	t.Run("missing work", func(t *testing.T) {
		task := Task{Name: "Shoot", Kind: TaskKindSimple}
		assert.Error(t, task.Validate())
	})

	t.Run("user task requires response state", func(t *testing.T) {
		task := Task{WorkID: 1, Name: "Sign", Kind: TaskKindContract, UserTask: true}
		assert.Error(t, task.Validate())

		task.UserCompleted = UserResponsePending
		assert.NoError(t, task.Validate())
	})
}

func TestTaskBeforeCreateDefaultsResponse(t *testing.T) {
	task := Task{WorkID: 1, Name: "Sign", Kind: TaskKindContract, UserTask: true}
	assert.NoError(t, task.BeforeCreate(nil))
	assert.Equal(t, UserResponsePending, task.UserCompleted)
}
