package payments

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrMalformedPayload = errors.New("malformed webhook payload")

// EventClass buckets provider order statuses into the three actions the
// processor knows.
type EventClass int

const (
	ClassIgnored EventClass = iota
	ClassApproval
	ClassCancellation
)

// Event is the transient shape of an inbound payment webhook. It is validated
// and consumed within a single request, never persisted as-is.
type Event struct {
	OrderStatus string `json:"order_status"`
	Customer    struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	} `json:"Customer"`
	CheckoutLink string      `json:"checkout_link"`
	ProductID    json.Number `json:"product_id"`
	Subscription *struct {
		ID string `json:"id"`
	} `json:"Subscription"`
}

// ProductRef returns the identifier used against the product mapping table:
// the checkout link when present, the numeric product id otherwise.
func (e *Event) ProductRef() string {
	if ref := strings.TrimSpace(e.CheckoutLink); ref != "" {
		return ref
	}
	return e.ProductID.String()
}

// SubscriptionID returns the external subscription reference, if any.
func (e *Event) SubscriptionID() string {
	if e.Subscription == nil {
		return ""
	}
	return strings.TrimSpace(e.Subscription.ID)
}

// ParseEvent decodes the raw body. Callers must have verified the signature
// first; this function is the first place the body is interpreted.
func ParseEvent(rawBody []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(rawBody, &ev); err != nil {
		return nil, ErrMalformedPayload
	}
	if strings.TrimSpace(ev.Customer.Email) == "" {
		return nil, ErrMalformedPayload
	}
	return &ev, nil
}

// Classify maps the provider order status onto an action bucket. Everything
// outside the two known families is ignored so webhook retries for pending or
// exotic states stay cheap no-ops.
func Classify(orderStatus string) EventClass {
	switch strings.ToLower(strings.TrimSpace(orderStatus)) {
	case "paid", "approved":
		return ClassApproval
	case "refunded", "chargedback", "canceled", "subscription_canceled":
		return ClassCancellation
	default:
		return ClassIgnored
	}
}
