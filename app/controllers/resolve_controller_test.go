package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pagecove/pagecove/app/models"
	"github.com/pagecove/pagecove/internal/pkg/resolver"
)

type stubDomainRepo struct {
	domains []models.Domain
}

func (s *stubDomainRepo) GetVerifiedByHostname(hostnames ...string) (*models.Domain, error) {
	for i := range s.domains {
		if !s.domains[i].Verified {
			continue
		}
		for _, h := range hostnames {
			if s.domains[i].Hostname == h {
				return &s.domains[i], nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubDomainRepo) HostnameExists(hostname string) (bool, error) {
	for i := range s.domains {
		if s.domains[i].Hostname == hostname {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubDomainRepo) CountByAccount(accountID uint) (int64, error) {
	var n int64
	for i := range s.domains {
		if s.domains[i].AccountID == accountID {
			n++
		}
	}
	return n, nil
}

func (s *stubDomainRepo) ListByAccount(accountID uint) ([]models.Domain, error) {
	var out []models.Domain
	for i := range s.domains {
		if s.domains[i].AccountID == accountID {
			out = append(out, s.domains[i])
		}
	}
	return out, nil
}

func (s *stubDomainRepo) CreateWithinQuota(domain *models.Domain, maxDomains int) (int64, error) {
	s.domains = append(s.domains, *domain)
	return int64(len(s.domains)), nil
}

type stubPageRepo struct {
	pages []models.Page
}

func (s *stubPageRepo) GetPublishedBySlug(accountID uint, slug string) (*models.Page, error) {
	for i := range s.pages {
		if s.pages[i].AccountID == accountID && s.pages[i].Slug == slug && s.pages[i].Published {
			return &s.pages[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPageRepo) ListPublished(accountID uint, limit int) ([]models.Page, error) {
	var out []models.Page
	for i := range s.pages {
		if s.pages[i].AccountID == accountID && s.pages[i].Published {
			out = append(out, s.pages[i])
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubPageRepo) CountByAccount(accountID uint) (int64, error) {
	var n int64
	for i := range s.pages {
		if s.pages[i].AccountID == accountID {
			n++
		}
	}
	return n, nil
}

func newResolveTestApp(t *testing.T) *fiber.App {
	t.Helper()
	accounts := &stubAccountRepo{accounts: []models.Account{
		{ID: 7, Email: "ana@example.com", PlanType: "pro", SubscriptionStatus: models.SUBSCRIPTION_ACTIVE},
		{ID: 8, Email: "off@example.com", PlanType: "pro", SubscriptionStatus: models.SUBSCRIPTION_INACTIVE},
	}}
	domains := &stubDomainRepo{domains: []models.Domain{
		{ID: 1, AccountID: 7, Hostname: "ana.example.com", Verified: true},
		{ID: 2, AccountID: 8, Hostname: "off.example.com", Verified: true},
	}}
	pages := &stubPageRepo{pages: []models.Page{
		{ID: 31, AccountID: 7, Slug: "oferta", Title: "Oferta", Template: "default", Published: true},
	}}

	hostResolver = resolver.NewResolver(accounts, domains, pages)
	t.Cleanup(func() { hostResolver = nil })

	app := fiber.New()
	app.Get("/resolve", HandleResolve)
	return app
}

func getResolve(t *testing.T, app *fiber.App, query string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/resolve?"+query, nil), -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestResolveEndpointFlatPageBody(t *testing.T) {
	app := newResolveTestApp(t)

	status, decoded := getResolve(t, app, "hostname=ana.example.com&path=/oferta")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, decoded["found"])
	assert.Equal(t, "page", decoded["type"])
	assert.Equal(t, float64(7), decoded["account_id"])
	assert.Equal(t, float64(31), decoded["page_id"])
	assert.Equal(t, "oferta", decoded["slug"])
	assert.Equal(t, "default", decoded["template"])
	assert.Equal(t, "pro", decoded["plan_type"])
	assert.NotContains(t, decoded, "resolution")
}

func TestResolveEndpointNotFoundBody(t *testing.T) {
	app := newResolveTestApp(t)

	status, decoded := getResolve(t, app, "hostname=nobody.example.com&path=/")

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, decoded["found"])
	assert.Equal(t, "not_found", decoded["error"])
}

func TestResolveEndpointSuspendedBody(t *testing.T) {
	app := newResolveTestApp(t)

	status, decoded := getResolve(t, app, "hostname=off.example.com&path=/")

	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, false, decoded["found"])
	assert.Equal(t, "account_suspended", decoded["error"])
}
