package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/lenskeep/studio/internal/db/models"
)

// InvoiceRepository handles database operations for invoices and payments
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new instance of InvoiceRepository
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create creates a new invoice in the database
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// GetByJob retrieves a job's invoice with its payment history
func (r *InvoiceRepository) GetByJob(ctx context.Context, jobID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Payments").
		Where("job_id = ?", jobID).
		First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Update updates an existing invoice in the database
func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// AddPayment records a payment against an invoice
func (r *InvoiceRepository) AddPayment(ctx context.Context, payment *models.PaymentHistory) error {
	return r.db.WithContext(ctx).Create(payment).Error
}
