package repository

import (
	"github.com/pagecove/pagecove/app/models"
	"gorm.io/gorm"
)

// pageRepository implements the PageRepository interface
type pageRepository struct {
	db *gorm.DB
}

// NewPageRepository creates a new page repository instance
func NewPageRepository(db *gorm.DB) PageRepository {
	return &pageRepository{db: db}
}

// GetPublishedBySlug retrieves a published page by account and exact slug
func (r *pageRepository) GetPublishedBySlug(accountID uint, slug string) (*models.Page, error) {
	var page models.Page
	err := r.db.Where("account_id = ? AND slug = ? AND published = ?", accountID, slug, true).
		First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ListPublished retrieves the account's published pages, oldest first
func (r *pageRepository) ListPublished(accountID uint, limit int) ([]models.Page, error) {
	var pages []models.Page
	err := r.db.Where("account_id = ? AND published = ?", accountID, true).
		Order("created_at ASC").Limit(limit).Find(&pages).Error
	return pages, err
}

// CountByAccount returns the number of pages an account holds
func (r *pageRepository) CountByAccount(accountID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Page{}).Where("account_id = ?", accountID).Count(&count).Error
	return count, err
}
