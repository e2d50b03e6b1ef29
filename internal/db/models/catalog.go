package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Product is one sellable line item (a print run, an album, shooting hours)
type Product struct {
	gorm.Model
	Name        string  `json:"name" gorm:"not null; index"`
	Description string  `json:"description,omitempty" gorm:"type:text"`
	UnitPrice   float64 `json:"unit_price" gorm:"not null"`
}

// TotalPrice returns the price for the given number of units
func (p *Product) TotalPrice(units int) float64 {
	return p.UnitPrice * float64(units)
}

// Package is a priced bundle of products offered to clients
type Package struct {
	gorm.Model
	Name        string               `json:"name" gorm:"not null; index"`
	Description string               `json:"description,omitempty" gorm:"type:text"`
	Price       float64              `json:"price"`
	Products    []PackageLinkProduct `json:"products,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// TotalPrice sums the linked product line items. Products and their product
// records must be preloaded.
func (p *Package) TotalPrice() float64 {
	var total float64
	for _, link := range p.Products {
		total += link.Product.TotalPrice(link.Units)
	}
	return total
}

// PackageLinkProduct links one product with a unit count into a package
type PackageLinkProduct struct {
	gorm.Model
	PackageID uint    `json:"package_id" gorm:"not null; index"`
	ProductID uint    `json:"product_id" gorm:"not null; index"`
	Product   Product
	Units     int     `json:"units" gorm:"not null"`
	Price     float64 `json:"price"`
}

// Validate ensures that the link data is valid
func (l *PackageLinkProduct) Validate() error {
	if l.Units <= 0 {
		return fmt.Errorf("package line requires a positive unit count")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new package line
func (l *PackageLinkProduct) BeforeCreate(_ *gorm.DB) error {
	return l.Validate()
}
