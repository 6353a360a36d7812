package plans

import "testing"

func TestQuotaFor(t *testing.T) {
	tests := []struct {
		plan       string
		maxDomains int
		maxPages   int
	}{
		{plan: "free", maxDomains: 0, maxPages: 1},
		{plan: "essential", maxDomains: 0, maxPages: 3},
		{plan: "essential_yearly", maxDomains: 0, maxPages: 3},
		{plan: "pro", maxDomains: 3, maxPages: 20},
		{plan: "pro_yearly", maxDomains: 3, maxPages: 20},
		{plan: "elite", maxDomains: 10, maxPages: 100},
		{plan: "something_else", maxDomains: 0, maxPages: 1},
		{plan: "", maxDomains: 0, maxPages: 1},
	}

	for _, tt := range tests {
		q := QuotaFor(tt.plan)
		if q.MaxDomains != tt.maxDomains || q.MaxPages != tt.maxPages {
			t.Fatalf("QuotaFor(%q) = %+v, want {%d %d}", tt.plan, q, tt.maxDomains, tt.maxPages)
		}
	}
}

func TestDomainEntitled(t *testing.T) {
	for _, plan := range []string{"pro", "pro_yearly", "elite", "PRO"} {
		if !DomainEntitled(plan) {
			t.Fatalf("expected plan %q to be domain entitled", plan)
		}
	}
	for _, plan := range []string{"free", "essential", "essential_yearly", ""} {
		if DomainEntitled(plan) {
			t.Fatalf("expected plan %q to not be domain entitled", plan)
		}
	}
}

func TestWithInterval(t *testing.T) {
	tests := []struct {
		tier     string
		interval string
		want     string
	}{
		{tier: "essential", interval: "month", want: "essential"},
		{tier: "essential", interval: "year", want: "essential_yearly"},
		{tier: "pro", interval: "year", want: "pro_yearly"},
		{tier: "pro", interval: "month", want: "pro"},
		{tier: "elite", interval: "year", want: "elite"},
		{tier: "free", interval: "year", want: "free"},
		{tier: "pro", interval: "YEAR", want: "pro_yearly"},
	}

	for _, tt := range tests {
		if got := WithInterval(tt.tier, tt.interval); got != tt.want {
			t.Fatalf("WithInterval(%q, %q) = %q, want %q", tt.tier, tt.interval, got, tt.want)
		}
	}
}

func TestBaseTier(t *testing.T) {
	if BaseTier("pro_yearly") != PlanPro {
		t.Fatalf("expected pro_yearly to normalize to pro")
	}
	if BaseTier("garbage") != PlanFree {
		t.Fatalf("expected unknown tier to normalize to free")
	}
}

func TestValid(t *testing.T) {
	for _, plan := range []string{"free", "essential", "essential_yearly", "pro", "pro_yearly", "elite"} {
		if !Valid(plan) {
			t.Fatalf("expected %q to be a valid plan", plan)
		}
	}
	if Valid("premium") {
		t.Fatalf("expected premium to be invalid")
	}
}
