package domains

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pagecove/pagecove/app/models"
	"github.com/pagecove/pagecove/app/repository"
	"github.com/pagecove/pagecove/internal/pkg/hosting"
	"github.com/pagecove/pagecove/internal/pkg/plans"
)

var (
	ErrPlanNotEntitled     = errors.New("plan does not allow custom domains")
	ErrInvalidDomainFormat = errors.New("invalid domain format")
	ErrDuplicateDomain     = errors.New("domain already registered")
	ErrStoreWrite          = errors.New("failed to persist domain")
)

// QuotaExceededError carries the counts callers show to the user.
type QuotaExceededError struct {
	Current int64
	Max     int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("domain quota exceeded: %d of %d in use", e.Current, e.Max)
}

// HostingProvider is the slice of the hosting client the registrar needs.
type HostingProvider interface {
	RegisterHostname(ctx context.Context, hostname string) (*hosting.RegisterResult, error)
}

// DNSInstructions tell the user which record to create for the new domain.
type DNSInstructions struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Registration is the successful outcome of a domain registration.
type Registration struct {
	Domain          *models.Domain
	DNSInstructions DNSInstructions
	CurrentCount    int64
	MaxDomains      int
}

// Registrar validates entitlement and quota, registers the hostname with the
// hosting provider and persists the Domain row.
type Registrar struct {
	accounts repository.AccountRepository
	domains  repository.DomainRepository
	provider HostingProvider
}

func NewRegistrar(accounts repository.AccountRepository, domains repository.DomainRepository, provider HostingProvider) *Registrar {
	return &Registrar{
		accounts: accounts,
		domains:  domains,
		provider: provider,
	}
}

// Register attaches rawHostname to the account. Checks run cheapest-first so
// rejected requests never reach the provider; the final insert re-checks the
// quota under a per-account lock because the early count is racy by itself.
func (r *Registrar) Register(ctx context.Context, accountID uint, rawHostname string) (*Registration, error) {
	account, err := r.accounts.GetByID(accountID)
	if err != nil {
		return nil, fmt.Errorf("load account %d: %w", accountID, err)
	}

	if !plans.DomainEntitled(account.PlanType) {
		return nil, ErrPlanNotEntitled
	}

	hostname := NormalizeHostname(rawHostname)
	if !ValidHostname(hostname) {
		return nil, ErrInvalidDomainFormat
	}

	exists, err := r.domains.HostnameExists(hostname)
	if err != nil {
		return nil, fmt.Errorf("check hostname %s: %w", hostname, err)
	}
	if exists {
		return nil, ErrDuplicateDomain
	}

	quota := plans.QuotaFor(account.PlanType)
	count, err := r.domains.CountByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("count domains for account %d: %w", accountID, err)
	}
	if count >= int64(quota.MaxDomains) {
		return nil, &QuotaExceededError{Current: count, Max: quota.MaxDomains}
	}

	res, err := r.provider.RegisterHostname(ctx, hostname)
	if err != nil {
		return nil, err
	}

	domain := &models.Domain{
		AccountID: accountID,
		Hostname:  hostname,
	}
	current, err := r.domains.CreateWithinQuota(domain, quota.MaxDomains)
	if err != nil {
		// The provider registration already happened and is not idempotent;
		// an operator has to reconcile it by hand or via RemoveHostname.
		log.Printf("ORPHANED provider registration for %s (account %d), needs reconciliation: %v", hostname, accountID, err)
		if errors.Is(err, repository.ErrQuotaExceeded) {
			return nil, &QuotaExceededError{Current: count, Max: quota.MaxDomains}
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	return &Registration{
		Domain: domain,
		DNSInstructions: DNSInstructions{
			Type:  "CNAME",
			Name:  "www",
			Value: res.DNSTarget,
		},
		CurrentCount: current,
		MaxDomains:   quota.MaxDomains,
	}, nil
}
