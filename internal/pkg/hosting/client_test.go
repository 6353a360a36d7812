package hosting

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		APIBaseURL: srv.URL,
		Token:      "test-token",
		ProjectID:  "proj_1",
		DNSTarget:  "edge.test",
		HTTPClient: srv.Client(),
	}
}

func TestRegisterHostnameSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/projects/proj_1/domains" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if body["name"] != "example.com" {
			t.Fatalf("unexpected hostname %q", body["name"])
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"name":"example.com"}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv).RegisterHostname(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Hostname != "example.com" || res.DNSTarget != "edge.test" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRegisterHostnameErrorTranslation(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{code: "domain_already_in_use", want: ErrDomainTaken},
		{code: "invalid_domain", want: ErrInvalidDomain},
		{code: "forbidden", want: ErrForbidden},
		{code: "domain_linked_to_other_account", want: ErrLinkedElsewhere},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"code": tt.code, "message": "nope"},
			})
		}))

		_, err := newTestClient(srv).RegisterHostname(context.Background(), "example.com")
		srv.Close()
		if !errors.Is(err, tt.want) {
			t.Fatalf("code %q: got error %v, want %v", tt.code, err, tt.want)
		}
	}
}

func TestRegisterHostnameUnknownError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"boom"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).RegisterHostname(context.Background(), "example.com")
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, sentinel := range []error{ErrDomainTaken, ErrInvalidDomain, ErrForbidden, ErrLinkedElsewhere} {
		if errors.Is(err, sentinel) {
			t.Fatalf("unknown code must not map to sentinel %v", sentinel)
		}
	}
}

func TestRemoveHostnameGoneIsOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if err := newTestClient(srv).RemoveHostname(context.Background(), "example.com"); err != nil {
		t.Fatalf("expected 404 removal to be a no-op, got %v", err)
	}
}

func TestRegisterHostnameMissingConfig(t *testing.T) {
	c := &Client{APIBaseURL: "http://localhost", HTTPClient: http.DefaultClient}
	if _, err := c.RegisterHostname(context.Background(), "example.com"); err == nil {
		t.Fatalf("expected configuration error")
	}
}
