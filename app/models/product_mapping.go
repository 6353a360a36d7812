package models

import "time"

const (
	BillingIntervalMonth = "month"
	BillingIntervalYear  = "year"
)

// ProductMapping maps a payment-provider product/checkout-link reference to an
// internal plan tier and billing interval. Billing correctness depends on
// these rows, so an unmapped reference is always a hard error, never a
// silent default.
type ProductMapping struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Provider        string    `gorm:"type:varchar(20);not null;index:ux_product_mappings_ref,unique,priority:1" json:"provider"`
	ProductRef      string    `gorm:"type:varchar(191);not null;index:ux_product_mappings_ref,unique,priority:2" json:"product_ref"`
	PlanTier        string    `gorm:"type:varchar(50);not null" json:"plan_tier"`
	BillingInterval string    `gorm:"type:varchar(16);not null;default:'month'" json:"billing_interval"`
	IsActive        bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
