package model

import (
	"time"
)

// Vendor represents a third-party service provider listed in the directory.
// Deactivated vendors stay in storage and remain retrievable by id; only the
// default listings exclude them.
type Vendor struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);index;not null"`
	Category    string    `json:"category" gorm:"type:varchar(50);index;not null"`
	Contact     string    `json:"contact" gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Phone       string    `json:"phone" gorm:"type:varchar(20);not null"`
	Website     string    `json:"website" gorm:"type:varchar(255)"`
	Address     string    `json:"address" gorm:"type:text"`
	Services    []string  `json:"services" gorm:"serializer:json"`
	Rating      float64   `json:"rating" gorm:"default:0"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedBy   uint      `json:"created_by" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VendorUpdate carries a partial field replacement for a vendor. Nil fields
// are left untouched; supplied fields are re-validated against the same
// constraints as creation.
type VendorUpdate struct {
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Contact     *string   `json:"contact"`
	Description *string   `json:"description"`
	Phone       *string   `json:"phone"`
	Website     *string   `json:"website"`
	Address     *string   `json:"address"`
	Services    *[]string `json:"services"`
	Rating      *float64  `json:"rating"`
	IsActive    *bool     `json:"is_active"`
}
