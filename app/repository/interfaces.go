package repository

import (
	"errors"

	"github.com/pagecove/pagecove/app/models"
)

// ErrQuotaExceeded is returned by DomainRepository.CreateWithinQuota when the
// transactional re-count hits the plan limit.
var ErrQuotaExceeded = errors.New("domain quota exceeded")

// AccountRepository defines the interface for account-related database operations
type AccountRepository interface {
	Create(account *models.Account) error
	GetByID(id uint) (*models.Account, error)
	GetByAPIKeyHash(hash string) (*models.Account, error)
	// GetByLegacyDomain matches the pre-migration single-domain field on the
	// account itself. The field must be verified to match.
	GetByLegacyDomain(hostnames ...string) (*models.Account, error)
	Update(account *models.Account) error
	// UpdatePlan applies plan/status/billing-reference changes as a partial
	// update so replays of the same event converge to the same row state.
	UpdatePlan(id uint, planType, status string, customerID, subscriptionID *string) error
	List(offset, limit int) ([]models.Account, error)
	Count() (int64, error)
}

// DomainRepository defines the interface for custom-domain database operations
type DomainRepository interface {
	GetVerifiedByHostname(hostnames ...string) (*models.Domain, error)
	HostnameExists(hostname string) (bool, error)
	CountByAccount(accountID uint) (int64, error)
	ListByAccount(accountID uint) ([]models.Domain, error)
	// CreateWithinQuota inserts the domain inside a transaction that locks the
	// owning account row and re-counts existing domains, so concurrent
	// registrations can never push an account past maxDomains. The first
	// domain of an account becomes primary and is mirrored onto the legacy
	// single-domain field. Returns the domain count after the insert.
	CreateWithinQuota(domain *models.Domain, maxDomains int) (int64, error)
}

// PageRepository defines the interface for page reads used by the resolver
type PageRepository interface {
	GetPublishedBySlug(accountID uint, slug string) (*models.Page, error)
	ListPublished(accountID uint, limit int) ([]models.Page, error)
	CountByAccount(accountID uint) (int64, error)
}

// ProductMappingRepository defines the interface for product-to-plan mappings
type ProductMappingRepository interface {
	FindActive(provider, productRef string) (*models.ProductMapping, error)
	SeedDefaults(mappings []models.ProductMapping) error
}

// WebhookEventRepository defines the interface for webhook event deduplication
type WebhookEventRepository interface {
	CreateIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	MarkProcessed(id uint, processingError string) error
}
