package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/lenskeep/studio/internal/db/models"
)

// CatalogRepository handles database operations for packages and products
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// CreateProduct creates a new product in the database
func (r *CatalogRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// CreatePackage creates a new package in the database
func (r *CatalogRepository) CreatePackage(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

// GetPackage retrieves a package with its product line items
func (r *CatalogRepository) GetPackage(ctx context.Context, id uint) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.WithContext(ctx).
		Preload("Products.Product").
		First(&pkg, id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// LinkProduct adds a product line item to a package
func (r *CatalogRepository) LinkProduct(ctx context.Context, link *models.PackageLinkProduct) error {
	return r.db.WithContext(ctx).Create(link).Error
}
