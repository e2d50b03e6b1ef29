package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice is the ledger record for one job. Price comes from the selected
// package; TotalPrice applies the discount.
type Invoice struct {
	gorm.Model
	JobID       uint             `json:"job_id" gorm:"not null; uniqueIndex"`
	IssueDate   time.Time        `json:"issue_date"`
	IssueNumber string           `json:"issue_number" gorm:"not null; uniqueIndex"`
	Description string           `json:"description,omitempty" gorm:"type:text"`
	Price       float64          `json:"price"`
	Discount    float64          `json:"discount"`
	TotalPrice  float64          `json:"total_price"`
	Notes       string           `json:"notes,omitempty" gorm:"type:text"`
	Payments    []PaymentHistory `json:"payments,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// Validate ensures that the invoice data is valid
func (i *Invoice) Validate() error {
	if i.Discount < 0 || i.Discount > 1 {
		return fmt.Errorf("invoice discount %v is not within the 0,1 range", i.Discount)
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new invoice
func (i *Invoice) BeforeCreate(_ *gorm.DB) error {
	if i.IssueNumber == "" {
		i.IssueNumber = uuid.NewString()
	}
	if i.IssueDate.IsZero() {
		i.IssueDate = time.Now()
	}
	return i.Validate()
}

// TotalPaid sums the recorded payments. Payments must be preloaded.
func (i *Invoice) TotalPaid() float64 {
	var paid float64
	for _, p := range i.Payments {
		paid += p.Amount
	}
	return paid
}

// ToBePaid returns the outstanding balance on the invoice
func (i *Invoice) ToBePaid() float64 {
	return i.TotalPrice - i.TotalPaid()
}

// Paid reports whether the invoice is fully settled
func (i *Invoice) Paid() bool {
	return i.ToBePaid() <= 0
}

// PaymentMethod identifies how a payment was made
type PaymentMethod string

// Payment method constants
const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCreditCard   PaymentMethod = "credit-card"
	PaymentMethodBankTransfer PaymentMethod = "bank-transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodOther        PaymentMethod = "other"
)

// ParsePaymentMethod converts a string to a PaymentMethod type
func ParsePaymentMethod(str string) (PaymentMethod, error) {
	switch str {
	case string(PaymentMethodCash):
		return PaymentMethodCash, nil
	case string(PaymentMethodCreditCard):
		return PaymentMethodCreditCard, nil
	case string(PaymentMethodBankTransfer):
		return PaymentMethodBankTransfer, nil
	case string(PaymentMethodCheque):
		return PaymentMethodCheque, nil
	case string(PaymentMethodOther):
		return PaymentMethodOther, nil
	default:
		return "", fmt.Errorf("invalid payment method: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for PaymentMethod
func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	method, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}

	*m = method
	return nil
}

// PaymentHistory records one payment against an invoice
type PaymentHistory struct {
	gorm.Model
	InvoiceID   uint          `json:"invoice_id" gorm:"not null; index"`
	PaymentDate time.Time     `json:"payment_date"`
	Amount      float64       `json:"amount" gorm:"not null"`
	Method      PaymentMethod `json:"method" gorm:"not null"`
}
