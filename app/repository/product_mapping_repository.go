package repository

import (
	"github.com/pagecove/pagecove/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productMappingRepository implements the ProductMappingRepository interface
type productMappingRepository struct {
	db *gorm.DB
}

// NewProductMappingRepository creates a new product mapping repository instance
func NewProductMappingRepository(db *gorm.DB) ProductMappingRepository {
	return &productMappingRepository{db: db}
}

// FindActive resolves a provider product reference to its plan mapping
func (r *productMappingRepository) FindActive(provider, productRef string) (*models.ProductMapping, error) {
	var m models.ProductMapping
	err := r.db.Where("provider = ? AND product_ref = ? AND is_active = ?", provider, productRef, true).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SeedDefaults inserts the default mapping rows, leaving existing rows alone
// so operators can override plan assignments without fighting the seed.
func (r *productMappingRepository) SeedDefaults(mappings []models.ProductMapping) error {
	if len(mappings) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "product_ref"},
		},
		DoNothing: true,
	}).Create(&mappings).Error
}
