package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Domain binds a normalized hostname to an account. Rows are created by the
// registrar, flipped to verified by the DNS verification worker and read by
// the resolver on every public request.
type Domain struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AccountID uint   `gorm:"not null;index" json:"account_id"`
	Hostname  string `gorm:"type:varchar(255);not null;uniqueIndex" json:"hostname" validate:"required,min=4,max=255"`
	Verified  bool   `gorm:"default:false;index" json:"verified"`
	// At most one domain per account carries is_primary. The first domain
	// registered for an account is primary; later registrations never move it.
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (d *Domain) Validate() error {
	v := validator.New()
	return v.Struct(d)
}
