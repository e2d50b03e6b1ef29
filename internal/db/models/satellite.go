package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Appointment holds the concrete scheduling data for one appointment task,
// prefilled from the job's venue and date fields at creation.
type Appointment struct {
	gorm.Model
	TaskID     uint       `json:"task_id" gorm:"not null; index"`
	Venue      string     `json:"venue,omitempty" gorm:"type:text"`
	VenueNotes string     `json:"venue_notes,omitempty" gorm:"type:text"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	AllDay     bool       `json:"all_day"`
	StartTime  string     `json:"start_time,omitempty"`
	EndTime    string     `json:"end_time,omitempty"`
	Confirmed  bool       `json:"confirmed" gorm:"not null; default:false"`
}

// ContractStatus represents the client's decision on a shared contract
type ContractStatus string

// Contract status constants
const (
	// ContractStatusAccepted indicates the client accepted the contract
	ContractStatusAccepted ContractStatus = "accepted"
	// ContractStatusNotAccepted indicates the contract awaits acceptance
	ContractStatusNotAccepted ContractStatus = "not accepted"
)

// ParseContractStatus converts a string to a ContractStatus type
func ParseContractStatus(str string) (ContractStatus, error) {
	switch str {
	case string(ContractStatusAccepted):
		return ContractStatusAccepted, nil
	case string(ContractStatusNotAccepted):
		return ContractStatusNotAccepted, nil
	default:
		return "", fmt.Errorf("invalid contract status: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for ContractStatus
func (s *ContractStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseContractStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// JobContract holds the rendered contract shared with the client for one
// job. One per job, created when the contract task first fires.
type JobContract struct {
	gorm.Model
	JobID        uint           `json:"job_id" gorm:"not null; uniqueIndex"`
	Body         string         `json:"body" gorm:"not null; type:text"`
	Status       ContractStatus `json:"status" gorm:"not null"`
	ContractDate time.Time      `json:"contract_date"`
}

// JobQuestionnaire holds the client's answers for one job. One per job,
// created when the questionnaire task first fires.
type JobQuestionnaire struct {
	gorm.Model
	JobID             uint      `json:"job_id" gorm:"not null; uniqueIndex"`
	QuestTemplateID   uint      `json:"quest_template_id" gorm:"not null"`
	AnswerOne         string    `json:"answer_one,omitempty" gorm:"type:text"`
	AnswerTwo         string    `json:"answer_two,omitempty" gorm:"type:text"`
	AnswerThree       string    `json:"answer_three,omitempty" gorm:"type:text"`
	AnswerFour        string    `json:"answer_four,omitempty" gorm:"type:text"`
	AnswerFive        string    `json:"answer_five,omitempty" gorm:"type:text"`
	QuestionnaireDate time.Time `json:"questionnaire_date"`
}
