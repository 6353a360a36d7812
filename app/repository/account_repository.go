package repository

import (
	"github.com/pagecove/pagecove/app/models"
	"gorm.io/gorm"
)

// accountRepository implements the AccountRepository interface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account in the database
func (r *accountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	err := r.db.First(&account, id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByAPIKeyHash retrieves an account by the SHA-256 hash of its API key
func (r *accountRepository) GetByAPIKeyHash(hash string) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("api_key_hash = ?", hash).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByLegacyDomain matches the legacy single-domain column. Only accounts
// whose legacy domain passed verification are eligible.
func (r *accountRepository) GetByLegacyDomain(hostnames ...string) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("custom_domain IN ? AND domain_verified = ?", hostnames, true).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Update saves all fields of an existing account
func (r *accountRepository) Update(account *models.Account) error {
	return r.db.Save(account).Error
}

// UpdatePlan applies a partial plan/status update. Billing references are only
// written when present so a sparse replay does not clear them.
func (r *accountRepository) UpdatePlan(id uint, planType, status string, customerID, subscriptionID *string) error {
	updates := map[string]interface{}{
		"plan_type":           planType,
		"subscription_status": status,
	}
	if customerID != nil && *customerID != "" {
		updates["billing_customer_id"] = *customerID
	}
	if subscriptionID != nil && *subscriptionID != "" {
		updates["billing_sub_id"] = *subscriptionID
	}
	return r.db.Model(&models.Account{}).Where("id = ?", id).Updates(updates).Error
}

// List retrieves accounts with pagination, ordered by ID for a stable scan
func (r *accountRepository) List(offset, limit int) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&accounts).Error
	return accounts, err
}

// Count returns the total number of accounts
func (r *accountRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Account{}).Count(&count).Error
	return count, err
}
