package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pagecove/pagecove/app/models"
	"github.com/pagecove/pagecove/app/repository"
	"github.com/pagecove/pagecove/internal/pkg/plans"
)

// Outcome statuses. "partial" means the invitation went out but the plan
// could not be applied yet; operators reconcile those by hand.
const (
	OutcomeProvisioned = "provisioned"
	OutcomeDeactivated = "deactivated"
	OutcomeIgnored     = "ignored"
	OutcomePartial     = "partial"
	OutcomeDuplicate   = "duplicate"
)

// UnknownProductError fails loudly: billing correctness depends on the
// mapping table, so a miss must never default silently.
type UnknownProductError struct {
	Ref string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("no plan mapping for product ref %q", e.Ref)
}

// Outcome is the tri-state-plus result of processing one event.
type Outcome struct {
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
	AccountID uint   `json:"account_id,omitempty"`
	Plan      string `json:"plan,omitempty"`
}

// Inviter triggers the asynchronous account-creation flow for a customer we
// have never seen. The actual account materializes downstream, outside this
// processor's control.
type Inviter interface {
	Invite(ctx context.Context, email, name string) error
}

const (
	defaultMaxSearchPages = 50
	defaultSearchPageSize = 200
	defaultInvitePolls    = 5
	defaultInviteBackoff  = 400 * time.Millisecond
)

// Processor drives the webhook state machine:
// Unverified → Verified → Classified → {Provisioned | Deactivated | Ignored}.
// Every mutation it performs is idempotent under replay of the same event.
type Processor struct {
	accounts repository.AccountRepository
	mappings repository.ProductMappingRepository
	events   repository.WebhookEventRepository
	inviter  Inviter
	secret   string

	maxSearchPages int
	searchPageSize int
	invitePolls    int
	inviteBackoff  time.Duration
	sleep          func(time.Duration)
}

func NewProcessor(
	accounts repository.AccountRepository,
	mappings repository.ProductMappingRepository,
	events repository.WebhookEventRepository,
	inviter Inviter,
	secret string,
) *Processor {
	return &Processor{
		accounts:       accounts,
		mappings:       mappings,
		events:         events,
		inviter:        inviter,
		secret:         secret,
		maxSearchPages: defaultMaxSearchPages,
		searchPageSize: defaultSearchPageSize,
		invitePolls:    defaultInvitePolls,
		inviteBackoff:  defaultInviteBackoff,
		sleep:          time.Sleep,
	}
}

// HandleEvent verifies, records, classifies and applies one webhook delivery.
// Verification strictly precedes parsing; nothing interprets the body before
// the HMAC check passes.
func (p *Processor) HandleEvent(ctx context.Context, rawBody []byte, signatureToken string) (*Outcome, error) {
	if err := VerifySignature(rawBody, signatureToken, p.secret); err != nil {
		return nil, err
	}
	// With no secret configured the check above is a no-op; the audit row
	// must say so.
	verified := strings.TrimSpace(p.secret) != ""

	created, stored, err := p.recordEvent(rawBody, verified)
	if err != nil {
		return nil, fmt.Errorf("record webhook event: %w", err)
	}
	if !created && stored.ProcessedAt != nil && stored.ProcessingError == "" {
		// Redelivery of an event we already handled successfully.
		return &Outcome{Status: OutcomeDuplicate}, nil
	}

	outcome, err := p.process(ctx, rawBody)
	p.markProcessed(stored.ID, err)
	return outcome, err
}

func (p *Processor) process(ctx context.Context, rawBody []byte) (*Outcome, error) {
	ev, err := ParseEvent(rawBody)
	if err != nil {
		return nil, err
	}

	switch Classify(ev.OrderStatus) {
	case ClassCancellation:
		return p.handleCancellation(ev)
	case ClassApproval:
		return p.handleApproval(ctx, ev)
	default:
		return &Outcome{Status: OutcomeIgnored, Reason: "order status " + ev.OrderStatus}, nil
	}
}

func (p *Processor) handleCancellation(ev *Event) (*Outcome, error) {
	account, err := p.findAccountByEmail(ev.Customer.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		// No account for this email. Deliberately a success, not an anomaly;
		// cancellations never create accounts.
		return &Outcome{Status: OutcomeIgnored, Reason: "account not found"}, nil
	}

	if err := p.accounts.UpdatePlan(account.ID, string(plans.PlanFree), models.SUBSCRIPTION_INACTIVE, nil, nil); err != nil {
		return nil, fmt.Errorf("deactivate account %d: %w", account.ID, err)
	}
	return &Outcome{
		Status:    OutcomeDeactivated,
		AccountID: account.ID,
		Plan:      string(plans.PlanFree),
	}, nil
}

func (p *Processor) handleApproval(ctx context.Context, ev *Event) (*Outcome, error) {
	ref := ev.ProductRef()
	mapping, err := p.mappings.FindActive(ProviderName, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &UnknownProductError{Ref: ref}
		}
		return nil, fmt.Errorf("lookup product mapping %q: %w", ref, err)
	}

	plan := plans.WithInterval(mapping.PlanTier, mapping.BillingInterval)
	subID := ev.SubscriptionID()

	account, err := p.findAccountByEmail(ev.Customer.Email)
	if err != nil {
		return nil, err
	}
	if account != nil {
		if err := p.applyPlan(account.ID, plan, subID); err != nil {
			return nil, err
		}
		return &Outcome{Status: OutcomeProvisioned, AccountID: account.ID, Plan: plan}, nil
	}

	// Brand-new customer: trigger the async signup flow, then poll briefly for
	// the downstream hook to materialize the account.
	if err := p.inviter.Invite(ctx, ev.Customer.Email, ev.Customer.FullName); err != nil {
		return nil, fmt.Errorf("invite %s: %w", ev.Customer.Email, err)
	}

	for i := 0; i < p.invitePolls; i++ {
		p.sleep(p.inviteBackoff * time.Duration(i+1))
		account, err = p.findAccountByEmail(ev.Customer.Email)
		if err != nil {
			return nil, err
		}
		if account != nil {
			if err := p.applyPlan(account.ID, plan, subID); err != nil {
				return nil, err
			}
			return &Outcome{Status: OutcomeProvisioned, AccountID: account.ID, Plan: plan}, nil
		}
	}

	log.Printf("payments: invitation sent to %s but account did not materialize, plan %s pending reconciliation", ev.Customer.Email, plan)
	return &Outcome{
		Status: OutcomePartial,
		Reason: "invitation sent, plan apply pending",
		Plan:   plan,
	}, nil
}

func (p *Processor) applyPlan(accountID uint, plan, subscriptionID string) error {
	var subRef *string
	if subscriptionID != "" {
		subRef = &subscriptionID
	}
	if err := p.accounts.UpdatePlan(accountID, plan, models.SUBSCRIPTION_ACTIVE, nil, subRef); err != nil {
		return fmt.Errorf("apply plan %s to account %d: %w", plan, accountID, err)
	}
	return nil
}

// findAccountByEmail scans accounts page by page, matching the email
// case-insensitively. The scan is bounded: past maxSearchPages we accept
// "not found" over unbounded latency. No secondary email index is assumed.
func (p *Processor) findAccountByEmail(email string) (*models.Account, error) {
	needle := strings.TrimSpace(email)
	if needle == "" {
		return nil, nil
	}

	for page := 0; page < p.maxSearchPages; page++ {
		batch, err := p.accounts.List(page*p.searchPageSize, p.searchPageSize)
		if err != nil {
			return nil, fmt.Errorf("scan accounts page %d: %w", page, err)
		}
		for i := range batch {
			if strings.EqualFold(batch[i].Email, needle) {
				return &batch[i], nil
			}
		}
		if len(batch) < p.searchPageSize {
			return nil, nil
		}
	}
	log.Printf("payments: account scan for %s hit the %d page bound, treating as not found", needle, p.maxSearchPages)
	return nil, nil
}

func (p *Processor) recordEvent(rawBody []byte, signatureValid bool) (bool, *models.WebhookEvent, error) {
	sum := sha256.Sum256(rawBody)
	event := &models.WebhookEvent{
		Provider:        ProviderName,
		ProviderEventID: "hash:" + hex.EncodeToString(sum[:]),
		EventType:       "order_status",
		PayloadJSON:     string(rawBody),
		SignatureValid:  signatureValid,
	}
	return p.events.CreateIfNotExists(event)
}

func (p *Processor) markProcessed(eventID uint, processingErr error) {
	if eventID == 0 {
		return
	}
	msg := ""
	if processingErr != nil {
		msg = processingErr.Error()
	}
	if err := p.events.MarkProcessed(eventID, msg); err != nil {
		log.Printf("payments: mark webhook event %d processed failed: %v", eventID, err)
	}
}
