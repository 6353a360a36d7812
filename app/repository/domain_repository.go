package repository

import (
	"github.com/pagecove/pagecove/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// domainRepository implements the DomainRepository interface
type domainRepository struct {
	db *gorm.DB
}

// NewDomainRepository creates a new domain repository instance
func NewDomainRepository(db *gorm.DB) DomainRepository {
	return &domainRepository{db: db}
}

// GetVerifiedByHostname retrieves a verified domain matching any of the given
// hostnames. Unverified rows never resolve.
func (r *domainRepository) GetVerifiedByHostname(hostnames ...string) (*models.Domain, error) {
	var domain models.Domain
	err := r.db.Where("hostname IN ? AND verified = ?", hostnames, true).
		First(&domain).Error
	if err != nil {
		return nil, err
	}
	return &domain, nil
}

// HostnameExists checks whether any account already holds the hostname
func (r *domainRepository) HostnameExists(hostname string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Domain{}).Where("hostname = ?", hostname).Count(&count).Error
	return count > 0, err
}

// CountByAccount returns the number of domains an account holds
func (r *domainRepository) CountByAccount(accountID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Domain{}).Where("account_id = ?", accountID).Count(&count).Error
	return count, err
}

// ListByAccount retrieves all domains of an account, primary first
func (r *domainRepository) ListByAccount(accountID uint) ([]models.Domain, error) {
	var domains []models.Domain
	err := r.db.Where("account_id = ?", accountID).
		Order("is_primary DESC, created_at ASC").Find(&domains).Error
	return domains, err
}

// CreateWithinQuota inserts the domain while holding a row lock on the owning
// account. The lock serializes concurrent registrations per account, so the
// re-count below cannot race past maxDomains.
func (r *domainRepository) CreateWithinQuota(domain *models.Domain, maxDomains int) (int64, error) {
	var current int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&account, domain.AccountID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Domain{}).
			Where("account_id = ?", domain.AccountID).
			Count(&current).Error; err != nil {
			return err
		}
		if current >= int64(maxDomains) {
			return ErrQuotaExceeded
		}

		if current == 0 {
			domain.IsPrimary = true
			// Mirror the first domain onto the legacy single-domain field for
			// pre-migration consumers.
			if err := tx.Model(&models.Account{}).
				Where("id = ?", domain.AccountID).
				Update("custom_domain", domain.Hostname).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(domain).Error; err != nil {
			return err
		}
		current++
		return nil
	})
	return current, err
}
