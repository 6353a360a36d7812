package resolver

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pagecove/pagecove/app/repository"
	"github.com/pagecove/pagecove/internal/pkg/cache"
	"github.com/pagecove/pagecove/internal/pkg/domains"
)

var (
	// ErrNotFound covers every unresolvable case the public may see: unknown
	// hostname, unverified domain, missing page. Internal read errors are
	// folded into it on purpose so nothing leaks to anonymous visitors.
	ErrNotFound = errors.New("not found")
	// ErrSuspended means the hostname resolved but the owning subscription is
	// not servable.
	ErrSuspended = errors.New("subscription inactive")
)

const (
	TypePage     = "page"
	TypeHomepage = "homepage"
	TypeNoPages  = "no_pages"
)

const (
	homepagePageLimit = 10
	hostnameCacheTTL  = 60 * time.Second
	hostnameCacheKey  = "resolve:host:"
)

// PageSummary is the slice of a page the resolver hands to the renderer.
type PageSummary struct {
	ID       uint   `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Template string `json:"template"`
}

// Resolution is the outcome of a successful hostname+path resolution.
type Resolution struct {
	Type        string        `json:"type"`
	AccountID   uint          `json:"account_id"`
	PlanType    string        `json:"plan_type,omitempty"`
	PageID      uint          `json:"page_id,omitempty"`
	Slug        string        `json:"slug,omitempty"`
	Template    string        `json:"template,omitempty"`
	DefaultPage *PageSummary  `json:"default_page,omitempty"`
	Pages       []PageSummary `json:"pages,omitempty"`
}

// HostnameCache caches the hostname-to-account binding. The binding changes
// rarely, so a short TTL keeps plan and domain changes visible within a
// bounded delay while sparing the store one lookup per public request.
type HostnameCache interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, expiration time.Duration) error
}

type redisHostnameCache struct{}

func (redisHostnameCache) Get(key string) (string, error) { return cache.Get(key) }
func (redisHostnameCache) Set(key string, value interface{}, expiration time.Duration) error {
	return cache.Set(key, value, expiration)
}

// Resolver maps an inbound hostname+path to the owning account and the page
// to render. Pure read path, safe for unbounded parallel calls.
type Resolver struct {
	accounts repository.AccountRepository
	domains  repository.DomainRepository
	pages    repository.PageRepository
	cache    HostnameCache
}

func NewResolver(accounts repository.AccountRepository, domainRepo repository.DomainRepository, pages repository.PageRepository) *Resolver {
	return &Resolver{
		accounts: accounts,
		domains:  domainRepo,
		pages:    pages,
	}
}

// WithRedisCache enables the shared redis cache for hostname lookups.
func (r *Resolver) WithRedisCache() *Resolver {
	r.cache = redisHostnameCache{}
	return r
}

// WithCache injects a custom cache implementation.
func (r *Resolver) WithCache(c HostnameCache) *Resolver {
	r.cache = c
	return r
}

// ParseSlug extracts the page slug from a request path. The legacy "/p/"
// prefix is stripped, only the first segment counts and everything after a
// second slash is ignored. Empty means "no slug requested".
func ParseSlug(path string) string {
	p := strings.TrimLeft(strings.TrimSpace(path), "/")
	p = strings.TrimPrefix(p, "p/")
	p = strings.TrimLeft(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return p
}

// Resolve applies the strict precedence chain: verified Domain row first,
// legacy single-domain field second, never merged. A hostname that resolves
// to a non-servable subscription is Forbidden, not NotFound.
func (r *Resolver) Resolve(ctx context.Context, hostname, path string) (*Resolution, error) {
	_ = ctx
	host := domains.NormalizeHostname(hostname)
	if host == "" {
		return nil, ErrNotFound
	}

	accountID, err := r.lookupAccountID(host)
	if err != nil {
		return nil, err
	}

	account, err := r.accounts.GetByID(accountID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("resolver: account %d read failed: %v", accountID, err)
		}
		return nil, ErrNotFound
	}
	if !account.IsServable() {
		return nil, ErrSuspended
	}

	slug := ParseSlug(path)
	if slug != "" {
		page, err := r.pages.GetPublishedBySlug(account.ID, slug)
		if err != nil {
			// A requested slug that does not exist never falls through to the
			// homepage.
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("resolver: page lookup %d/%s failed: %v", account.ID, slug, err)
			}
			return nil, ErrNotFound
		}
		return &Resolution{
			Type:      TypePage,
			AccountID: account.ID,
			PlanType:  account.PlanType,
			PageID:    page.ID,
			Slug:      page.Slug,
			Template:  page.Template,
		}, nil
	}

	list, err := r.pages.ListPublished(account.ID, homepagePageLimit)
	if err != nil {
		log.Printf("resolver: page list for %d failed: %v", account.ID, err)
		return nil, ErrNotFound
	}
	if len(list) == 0 {
		return &Resolution{Type: TypeNoPages, AccountID: account.ID}, nil
	}

	summaries := make([]PageSummary, 0, len(list))
	for _, p := range list {
		summaries = append(summaries, PageSummary{ID: p.ID, Slug: p.Slug, Title: p.Title, Template: p.Template})
	}
	return &Resolution{
		Type:        TypeHomepage,
		AccountID:   account.ID,
		PlanType:    account.PlanType,
		DefaultPage: &summaries[0],
		Pages:       summaries,
	}, nil
}

// lookupAccountID resolves hostname → account id through the cache, the
// domains table and finally the legacy field, in that order.
func (r *Resolver) lookupAccountID(host string) (uint, error) {
	if r.cache != nil {
		if v, err := r.cache.Get(hostnameCacheKey + host); err == nil {
			if id, convErr := strconv.ParseUint(v, 10, 64); convErr == nil && id > 0 {
				return uint(id), nil
			}
		}
	}

	accountID, err := r.lookupAccountIDUncached(host)
	if err != nil {
		return 0, err
	}

	if r.cache != nil {
		if err := r.cache.Set(hostnameCacheKey+host, strconv.FormatUint(uint64(accountID), 10), hostnameCacheTTL); err != nil {
			log.Printf("resolver: cache set for %s failed: %v", host, err)
		}
	}
	return accountID, nil
}

func (r *Resolver) lookupAccountIDUncached(host string) (uint, error) {
	candidates := []string{host, "www." + host}

	domain, err := r.domains.GetVerifiedByHostname(candidates...)
	if err == nil {
		return domain.AccountID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("resolver: domain lookup for %s failed: %v", host, err)
		return 0, ErrNotFound
	}

	// Legacy fallback for pre-migration accounts, strictly after the domains
	// table came up empty.
	account, err := r.accounts.GetByLegacyDomain(candidates...)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("resolver: legacy domain lookup for %s failed: %v", host, err)
		}
		return 0, ErrNotFound
	}
	return account.ID, nil
}
