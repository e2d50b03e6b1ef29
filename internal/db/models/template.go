package models

import (
	"fmt"

	"gorm.io/gorm"
)

// EmailTemplate is a reusable email body with {field} placeholders
type EmailTemplate struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null; index"`
	Subject  string `json:"subject" gorm:"not null"`
	Body     string `json:"body" gorm:"not null; type:text"`
	ThankYou string `json:"thank_you,omitempty" gorm:"type:text"`
}

// ContractTemplate is a reusable contract body with {field} placeholders
type ContractTemplate struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null; index"`
	Subject   string `json:"subject" gorm:"not null"`
	Body      string `json:"body" gorm:"not null; type:text"`
	ThankYou  string `json:"thank_you,omitempty" gorm:"type:text"`
	Signature string `json:"signature,omitempty" gorm:"type:text"`
}

// QuestionnaireTemplate is a reusable questionnaire with up to five questions
type QuestionnaireTemplate struct {
	gorm.Model
	Name          string `json:"name" gorm:"not null; index"`
	Subject       string `json:"subject" gorm:"not null"`
	Body          string `json:"body" gorm:"not null; type:text"`
	QuestionOne   string `json:"question_one,omitempty" gorm:"type:text"`
	QuestionTwo   string `json:"question_two,omitempty" gorm:"type:text"`
	QuestionThree string `json:"question_three,omitempty" gorm:"type:text"`
	QuestionFour  string `json:"question_four,omitempty" gorm:"type:text"`
	QuestionFive  string `json:"question_five,omitempty" gorm:"type:text"`
}

// TemplateField whitelists one placeholder name, mapping it to a dotted
// attribute path the template engine knows how to resolve. Placeholders not
// registered here fail the render.
type TemplateField struct {
	gorm.Model
	Field       string `json:"field" gorm:"not null; uniqueIndex"`
	ObjectField string `json:"object_field" gorm:"not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}

// Validate ensures that the template field data is valid
func (f *TemplateField) Validate() error {
	if f.Field == "" {
		return fmt.Errorf("template field name cannot be empty")
	}
	if f.ObjectField == "" {
		return fmt.Errorf("template field %q requires an object field path", f.Field)
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new template field
func (f *TemplateField) BeforeCreate(_ *gorm.DB) error {
	return f.Validate()
}
