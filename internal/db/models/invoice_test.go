package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceBalance(t *testing.T) {
	invoice := Invoice{
		JobID:      1,
		Price:      23000,
		TotalPrice: 23000,
	}

	assert.Zero(t, invoice.TotalPaid())
	assert.InDelta(t, 23000, invoice.ToBePaid(), 0.001)
	assert.False(t, invoice.Paid())

	invoice.Payments = []PaymentHistory{
		{InvoiceID: 1, Amount: 10000, Method: PaymentMethodBankTransfer},
		{InvoiceID: 1, Amount: 13000, Method: PaymentMethodCash},
	}

	assert.InDelta(t, 23000, invoice.TotalPaid(), 0.001)
	assert.Zero(t, invoice.ToBePaid())
	assert.True(t, invoice.Paid())
}

func TestInvoiceValidateDiscount(t *testing.T) {
	tests := []struct {
		name     string
		discount float64
		valid    bool
	}{
		{"no discount", 0, true},
		{"ten percent", 0.1, true},
		{"full discount", 1, true},
		{"negative", -0.1, false},
		{"above one", 1.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoice := Invoice{JobID: 1, Discount: tt.discount}
			err := invoice.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestInvoiceBeforeCreateAssignsIssueNumber(t *testing.T) {
	invoice := Invoice{JobID: 1}
	assert.NoError(t, invoice.BeforeCreate(nil))
	assert.NotEmpty(t, invoice.IssueNumber)
	assert.False(t, invoice.IssueDate.IsZero())
}

func TestPackageTotalPrice(t *testing.T) {
	pkg := Package{
		Name: "Wedding essential",
		Products: []PackageLinkProduct{
			{Product: Product{Name: "Album", UnitPrice: 1000}, Units: 3},
			{Product: Product{Name: "Shooting hour", UnitPrice: 5000}, Units: 4},
		},
	}
	assert.InDelta(t, 23000, pkg.TotalPrice(), 0.001)
}

func TestPackageLinkValidate(t *testing.T) {
	link := PackageLinkProduct{PackageID: 1, ProductID: 1, Units: 0}
	assert.Error(t, link.Validate())

	link.Units = 2
	assert.NoError(t, link.Validate())
}
