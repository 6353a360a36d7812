package hosting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pagecove/pagecove/internal/pkg/env"
)

const (
	defaultAPIBaseURL = "https://api.edgehost.io/v2"
	defaultDNSTarget  = "edge.pagecove.com"
)

// Provider error codes translated into domain-specific errors. Anything the
// registrar can act on gets its own sentinel; the rest bubbles up wrapped.
var (
	ErrDomainTaken     = errors.New("domain already registered by another project")
	ErrInvalidDomain   = errors.New("provider rejected domain as malformed")
	ErrForbidden       = errors.New("provider rejected request as forbidden")
	ErrLinkedElsewhere = errors.New("domain linked to a different provider account")
)

// Client talks to the hosting provider that actually serves custom domains.
type Client struct {
	APIBaseURL string
	Token      string
	ProjectID  string
	DNSTarget  string

	HTTPClient *http.Client
}

// RegisterResult carries what the caller needs to build DNS instructions.
type RegisterResult struct {
	Hostname  string
	DNSTarget string
}

func NewClientFromEnv() *Client {
	return &Client{
		APIBaseURL: strings.TrimRight(env.GetEnv("HOSTING_API_BASE_URL", defaultAPIBaseURL), "/"),
		Token:      strings.TrimSpace(env.GetEnv("HOSTING_API_TOKEN", "")),
		ProjectID:  strings.TrimSpace(env.GetEnv("HOSTING_PROJECT_ID", "")),
		DNSTarget:  strings.TrimSpace(env.GetEnv("HOSTING_DNS_TARGET", defaultDNSTarget)),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type providerError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// RegisterHostname registers the hostname on the serving project. This call is
// not idempotent on the provider side; callers own reconciliation when the
// local persistence that follows it fails.
func (c *Client) RegisterHostname(ctx context.Context, hostname string) (*RegisterResult, error) {
	if strings.TrimSpace(c.ProjectID) == "" {
		return nil, errors.New("HOSTING_PROJECT_ID is not configured")
	}
	if strings.TrimSpace(c.Token) == "" {
		return nil, errors.New("HOSTING_API_TOKEN is not configured")
	}

	payload, err := json.Marshal(map[string]string{"name": hostname})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/projects/%s/domains", c.APIBaseURL, c.ProjectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &RegisterResult{Hostname: hostname, DNSTarget: c.DNSTarget}, nil
	}

	var pErr providerError
	if err := json.Unmarshal(body, &pErr); err == nil {
		switch pErr.Error.Code {
		case "domain_already_in_use":
			return nil, ErrDomainTaken
		case "invalid_domain":
			return nil, ErrInvalidDomain
		case "forbidden":
			return nil, ErrForbidden
		case "domain_linked_to_other_account":
			return nil, ErrLinkedElsewhere
		}
	}
	return nil, fmt.Errorf("hosting: register %s failed: status=%d body=%s", hostname, resp.StatusCode, string(body))
}

// RemoveHostname detaches a hostname from the serving project. Used by
// reconciliation tooling when a registration was orphaned.
func (c *Client) RemoveHostname(ctx context.Context, hostname string) error {
	if strings.TrimSpace(c.ProjectID) == "" {
		return errors.New("HOSTING_PROJECT_ID is not configured")
	}

	url := fmt.Sprintf("%s/projects/%s/domains/%s", c.APIBaseURL, c.ProjectID, hostname)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Already gone, nothing to reconcile.
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("hosting: remove %s failed: status=%d body=%s", hostname, resp.StatusCode, string(body))
	}
	return nil
}
