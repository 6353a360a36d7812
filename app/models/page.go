package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Page is a published landing page owned by an account. The provisioning core
// only reads pages; creation and editing happen in the page builder.
type Page struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	AccountID uint           `gorm:"not null;index:ux_pages_account_slug,unique,priority:1" json:"account_id"`
	Slug      string         `gorm:"type:varchar(255);not null;index:ux_pages_account_slug,unique,priority:2" json:"slug" validate:"required,min=1,max=255"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=1,max=255"`
	Published bool           `gorm:"default:false;index" json:"published"`
	Template  string         `gorm:"type:varchar(50);default:'default'" json:"template"`
	ViewCount int64          `gorm:"default:0" json:"view_count"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Page) Validate() error {
	v := validator.New()
	return v.Struct(p)
}
