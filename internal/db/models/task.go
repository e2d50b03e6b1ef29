package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// UserResponse tracks the client side of the two-phase handshake on tasks
// that require a client response.
type UserResponse string

// User response constants
const (
	// UserResponsePending indicates nothing has been sent to the client yet
	UserResponsePending UserResponse = "pending"
	// UserResponseSent indicates the request is with the client
	UserResponseSent UserResponse = "sent-to-user"
	// UserResponseCompleted indicates the client has responded
	UserResponseCompleted UserResponse = "user-completed"
)

// String returns the string representation of the user response state
func (r UserResponse) String() string {
	return string(r)
}

// ParseUserResponse converts a string to a UserResponse type
func ParseUserResponse(str string) (UserResponse, error) {
	switch str {
	case string(UserResponsePending):
		return UserResponsePending, nil
	case string(UserResponseSent):
		return UserResponseSent, nil
	case string(UserResponseCompleted):
		return UserResponseCompleted, nil
	default:
		return "", fmt.Errorf("invalid user response state: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for UserResponse
func (r *UserResponse) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	state, err := ParseUserResponse(str)
	if err != nil {
		return err
	}

	*r = state
	return nil
}

// Task is the atomic unit of work under a phase. Its kind selects the side
// effect protocol the processor runs; at most one template link is set.
type Task struct {
	gorm.Model
	WorkID             uint         `json:"work_id" gorm:"not null; index"`
	Name               string       `json:"name" gorm:"not null; index"`
	TaskOrder          int          `json:"task_order" gorm:"not null"`
	Description        string       `json:"description,omitempty" gorm:"type:text"`
	Kind               TaskKind     `json:"kind" gorm:"not null; index"`
	Completed          bool         `json:"completed" gorm:"not null; default:false"`
	CheckInvoice       bool         `json:"check_invoice" gorm:"not null; default:false"`
	UserTask           bool         `json:"user_task" gorm:"not null; default:false"`
	UserCompleted      UserResponse `json:"user_completed,omitempty"`
	EmailTemplateID    *uint        `json:"email_template_id,omitempty"`
	ContractTemplateID *uint        `json:"contract_template_id,omitempty"`
	QuestTemplateID    *uint        `json:"quest_template_id,omitempty"`
	AppointmentID      *uint        `json:"appointment_id,omitempty"`
	JobContractID      *uint        `json:"job_contract_id,omitempty"`
	JobQuestionnaireID *uint        `json:"job_questionnaire_id,omitempty"`
}

// Validate ensures that the task data is valid
func (t *Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	if t.WorkID == 0 {
		return fmt.Errorf("task requires a work")
	}
	if _, err := ParseTaskKind(string(t.Kind)); err != nil {
		return err
	}
	if t.UserTask && t.UserCompleted == "" {
		return fmt.Errorf("user task %q requires a user response state", t.Name)
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new task
func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.UserTask && t.UserCompleted == "" {
		t.UserCompleted = UserResponsePending
	}
	return t.Validate()
}
