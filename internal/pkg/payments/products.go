package payments

import "github.com/pagecove/pagecove/app/models"

// ProviderName identifies the payment processor in mapping and event tables.
const ProviderName = "hotpay"

// DefaultProductMappings seeds the product→plan table. Kept as data so new
// checkout links can be added without touching processor control flow.
var DefaultProductMappings = []models.ProductMapping{
	{Provider: ProviderName, ProductRef: "chk_essential_m", PlanTier: "essential", BillingInterval: models.BillingIntervalMonth, IsActive: true},
	{Provider: ProviderName, ProductRef: "chk_essential_y", PlanTier: "essential", BillingInterval: models.BillingIntervalYear, IsActive: true},
	{Provider: ProviderName, ProductRef: "chk_pro_m", PlanTier: "pro", BillingInterval: models.BillingIntervalMonth, IsActive: true},
	{Provider: ProviderName, ProductRef: "chk_pro_y", PlanTier: "pro", BillingInterval: models.BillingIntervalYear, IsActive: true},
	{Provider: ProviderName, ProductRef: "chk_elite_m", PlanTier: "elite", BillingInterval: models.BillingIntervalMonth, IsActive: true},
}
