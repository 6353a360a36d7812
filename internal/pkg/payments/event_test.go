package payments

import "testing"

func TestParseEvent(t *testing.T) {
	raw := []byte(`{
		"order_status": "paid",
		"Customer": { "email": "ana@example.com", "full_name": "Ana Souza" },
		"checkout_link": "chk_pro_y",
		"Subscription": { "id": "sub_123" }
	}`)

	ev, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if ev.Customer.Email != "ana@example.com" || ev.Customer.FullName != "Ana Souza" {
		t.Fatalf("unexpected customer: %+v", ev.Customer)
	}
	if ev.ProductRef() != "chk_pro_y" {
		t.Fatalf("unexpected product ref %q", ev.ProductRef())
	}
	if ev.SubscriptionID() != "sub_123" {
		t.Fatalf("unexpected subscription id %q", ev.SubscriptionID())
	}
}

func TestParseEventProductIDFallback(t *testing.T) {
	raw := []byte(`{
		"order_status": "paid",
		"Customer": { "email": "ana@example.com" },
		"product_id": 4412
	}`)

	ev, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if ev.ProductRef() != "4412" {
		t.Fatalf("expected product id fallback, got %q", ev.ProductRef())
	}
	if ev.SubscriptionID() != "" {
		t.Fatalf("expected empty subscription id, got %q", ev.SubscriptionID())
	}
}

func TestParseEventMalformed(t *testing.T) {
	for _, raw := range []string{
		`not json at all`,
		`{"order_status": "paid"}`,
		`{"order_status": "paid", "Customer": {"email": "  "}}`,
	} {
		if _, err := ParseEvent([]byte(raw)); err != ErrMalformedPayload {
			t.Fatalf("payload %q: expected ErrMalformedPayload, got %v", raw, err)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		status string
		want   EventClass
	}{
		{status: "paid", want: ClassApproval},
		{status: "approved", want: ClassApproval},
		{status: "APPROVED", want: ClassApproval},
		{status: "refunded", want: ClassCancellation},
		{status: "chargedback", want: ClassCancellation},
		{status: "canceled", want: ClassCancellation},
		{status: "subscription_canceled", want: ClassCancellation},
		{status: "pending", want: ClassIgnored},
		{status: "waiting_payment", want: ClassIgnored},
		{status: "", want: ClassIgnored},
	}

	for _, tt := range tests {
		if got := Classify(tt.status); got != tt.want {
			t.Fatalf("Classify(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
