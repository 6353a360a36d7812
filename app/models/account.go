package models

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	SUBSCRIPTION_FREE     = "free"
	SUBSCRIPTION_ACTIVE   = "active"
	SUBSCRIPTION_INACTIVE = "inactive"
)

// Account is the billing and ownership unit. It owns domains and pages.
// Accounts are never hard-deleted by the provisioning core; deactivation
// only flips the subscription status.
type Account struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	Name               string  `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Email              string  `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Password           string  `gorm:"type:text" json:"-"`
	PlanType           string  `gorm:"type:varchar(50);default:'free';index" json:"plan_type"`
	SubscriptionStatus string  `gorm:"type:varchar(20);default:'free';index" json:"subscription_status" validate:"oneof=free active inactive"`
	BillingCustomerID  *string `gorm:"type:varchar(191);index" json:"-"`
	BillingSubID       *string `gorm:"column:billing_sub_id;type:varchar(191)" json:"-"`
	APIKeyHash         string  `gorm:"type:varchar(64);index" json:"-"`

	// Legacy single-domain fields. Kept only so pre-migration accounts keep
	// resolving; Domain rows always win over these.
	CustomDomain   string `gorm:"type:varchar(255);index" json:"custom_domain,omitempty"`
	DomainVerified bool   `gorm:"default:false" json:"domain_verified"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Account) Validate() error {
	v := validator.New()
	return v.Struct(a)
}

// IsServable reports whether public pages of this account may be served.
func (a *Account) IsServable() bool {
	return a.SubscriptionStatus == SUBSCRIPTION_FREE || a.SubscriptionStatus == SUBSCRIPTION_ACTIVE
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPassword verifies if the provided password matches the stored hash.
func (a *Account) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	return err == nil
}

// SetPassword hashes and sets a new password for the account.
func (a *Account) SetPassword(password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	a.Password = hashed
	return nil
}

// HashAPIKey returns the hex SHA-256 of a raw API key. Only the hash is stored.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// GenerateAPIKey creates a new random API key, stores its hash on the account
// and returns the raw key. The raw key is shown to the caller exactly once.
func (a *Account) GenerateAPIKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	raw := hex.EncodeToString(b)
	a.APIKeyHash = HashAPIKey(raw)
	return raw, nil
}
