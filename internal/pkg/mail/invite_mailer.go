package mail

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pagecove/pagecove/app/models"
	"github.com/pagecove/pagecove/app/repository"
	"github.com/pagecove/pagecove/internal/pkg/env"
)

// InviteMailer creates a placeholder account for a paying customer we have
// never seen and mails them a one-time setup link. It satisfies the payment
// processor's Inviter interface.
type InviteMailer struct {
	accounts repository.AccountRepository
}

func NewInviteMailer(accounts repository.AccountRepository) *InviteMailer {
	return &InviteMailer{accounts: accounts}
}

func (m *InviteMailer) Invite(_ context.Context, email, name string) error {
	setupToken := uuid.New().String()

	account := &models.Account{
		Name:     name,
		Email:    email,
		PlanType: "free",
	}
	if err := account.SetPassword(setupToken); err != nil {
		return fmt.Errorf("seed invite credentials: %w", err)
	}
	if err := m.accounts.Create(account); err != nil {
		return fmt.Errorf("create invited account: %w", err)
	}

	baseURL := env.GetEnv("PUBLIC_URL", "http://localhost:8080")
	link := fmt.Sprintf("%s/setup?token=%s", baseURL, setupToken)

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thanks for your purchase! Click the link below to finish setting up your account:</p><p><a href=%q>%s</a></p>",
		name, link, link,
	)
	return SendMail(email, "Finish setting up your account", body)
}
