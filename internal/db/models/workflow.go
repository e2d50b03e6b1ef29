package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// WorkflowDefinition is a named, reusable template selecting which phases and
// task blueprints apply to a job. Many jobs reference one definition.
type WorkflowDefinition struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null; index"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	Active      bool   `json:"active" gorm:"not null; default:true"`
}

// WorkType is an entry in the global, ordered catalog of phase kinds. The
// ordering is shared across all workflows, not per workflow.
type WorkType struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null; uniqueIndex"`
	WorkOrder   int    `json:"work_order" gorm:"not null; index"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}

// TaskKind identifies the side effect protocol a task follows
type TaskKind string

// Task kind constants
const (
	// TaskKindSimple is a plain to-do with no side effect
	TaskKindSimple TaskKind = "simple"
	// TaskKindEmail sends a templated email when processed
	TaskKindEmail TaskKind = "email"
	// TaskKindContract shares a contract and invoice and waits for a signature
	TaskKindContract TaskKind = "contract"
	// TaskKindQuestionnaire shares a questionnaire and waits for answers
	TaskKindQuestionnaire TaskKind = "questionnaire"
	// TaskKindAppointment books an appointment and waits for confirmation
	TaskKindAppointment TaskKind = "appointment"
)

// String returns the string representation of the task kind
func (k TaskKind) String() string {
	return string(k)
}

// ParseTaskKind converts a string to a TaskKind type
func ParseTaskKind(str string) (TaskKind, error) {
	switch str {
	case string(TaskKindSimple):
		return TaskKindSimple, nil
	case string(TaskKindEmail):
		return TaskKindEmail, nil
	case string(TaskKindContract):
		return TaskKindContract, nil
	case string(TaskKindQuestionnaire):
		return TaskKindQuestionnaire, nil
	case string(TaskKindAppointment):
		return TaskKindAppointment, nil
	default:
		return "", fmt.Errorf("invalid task kind: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for TaskKind
func (k *TaskKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	kind, err := ParseTaskKind(str)
	if err != nil {
		return err
	}

	*k = kind
	return nil
}

// WorkTemplate declares one task blueprint for a workflow definition and work
// type pair. It is consumed exactly once, at instantiation time.
type WorkTemplate struct {
	gorm.Model
	WorkflowID         uint     `json:"workflow_id" gorm:"not null; index"`
	Workflow           WorkflowDefinition
	WorkTypeID         uint     `json:"work_type_id" gorm:"not null; index"`
	WorkType           WorkType
	Kind               TaskKind `json:"kind" gorm:"not null"`
	StepNumber         int      `json:"step_number" gorm:"not null"`
	Name               string   `json:"name" gorm:"not null"`
	Description        string   `json:"description,omitempty" gorm:"type:text"`
	AutoComplete       bool     `json:"auto_complete" gorm:"not null; default:false"`
	CheckInvoice       bool     `json:"check_invoice" gorm:"not null; default:false"`
	EmailTemplateID    *uint    `json:"email_template_id,omitempty"`
	ContractTemplateID *uint    `json:"contract_template_id,omitempty"`
	QuestTemplateID    *uint    `json:"quest_template_id,omitempty"`
}

// Validate ensures the blueprint references the template its kind requires
func (t *WorkTemplate) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("work template name cannot be empty")
	}
	switch t.Kind {
	case TaskKindSimple:
	case TaskKindEmail, TaskKindAppointment:
		if t.EmailTemplateID == nil {
			return fmt.Errorf("%s blueprint %q requires an email template", t.Kind, t.Name)
		}
	case TaskKindContract:
		if t.ContractTemplateID == nil {
			return fmt.Errorf("contract blueprint %q requires a contract template", t.Name)
		}
	case TaskKindQuestionnaire:
		if t.QuestTemplateID == nil {
			return fmt.Errorf("questionnaire blueprint %q requires a questionnaire template", t.Name)
		}
	default:
		return fmt.Errorf("invalid task kind: %s", t.Kind)
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new work template
func (t *WorkTemplate) BeforeCreate(_ *gorm.DB) error {
	return t.Validate()
}
