package store

import (
	"errors"
	"strings"

	"vendor-service/internal/model"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an id does not resolve to a stored vendor
var ErrNotFound = errors.New("vendor not found")

// VendorStore provides durable storage and retrieval of vendors. It holds an
// explicitly passed database handle; the process entry point owns the
// connection lifecycle.
type VendorStore struct {
	db *gorm.DB
}

// NewVendorStore creates a vendor store bound to the given database handle
func NewVendorStore(db *gorm.DB) *VendorStore {
	return &VendorStore{db: db}
}

// Create validates and inserts a new vendor. On success the vendor's ID and
// timestamps are populated by the database layer.
func (s *VendorStore) Create(v *model.Vendor) error {
	if err := model.ValidateVendor(v); err != nil {
		return err
	}
	return s.db.Create(v).Error
}

// FindByID returns the vendor with the given id regardless of its active
// status, so deactivated vendors stay retrievable by direct lookup.
func (s *VendorStore) FindByID(id uint) (*model.Vendor, error) {
	var vendor model.Vendor
	result := s.db.First(&vendor, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &vendor, nil
}

// FindActive returns all active vendors, newest first
func (s *VendorStore) FindActive() ([]model.Vendor, error) {
	vendors := []model.Vendor{}
	result := s.db.
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&vendors)
	if result.Error != nil {
		return nil, result.Error
	}
	return vendors, nil
}

// UpdateByID applies a partial field replacement to the vendor with the given
// id. Supplied fields are re-validated against the creation constraints before
// anything is written. Concurrent updates to the same vendor are
// last-write-wins; there is no version check.
func (s *VendorStore) UpdateByID(id uint, patch *model.VendorUpdate) (*model.Vendor, error) {
	if err := model.ValidateVendorUpdate(patch); err != nil {
		return nil, err
	}

	vendor, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		vendor.Name = *patch.Name
	}
	if patch.Category != nil {
		vendor.Category = *patch.Category
	}
	if patch.Contact != nil {
		vendor.Contact = *patch.Contact
	}
	if patch.Description != nil {
		vendor.Description = *patch.Description
	}
	if patch.Phone != nil {
		vendor.Phone = *patch.Phone
	}
	if patch.Website != nil {
		vendor.Website = *patch.Website
	}
	if patch.Address != nil {
		vendor.Address = *patch.Address
	}
	if patch.Services != nil {
		vendor.Services = *patch.Services
	}
	if patch.Rating != nil {
		vendor.Rating = *patch.Rating
	}
	if patch.IsActive != nil {
		vendor.IsActive = *patch.IsActive
	}
	// CreatedBy is assigned at creation and never reassigned

	if err := s.db.Save(vendor).Error; err != nil {
		return nil, err
	}
	return vendor, nil
}

// SoftDeleteByID marks the vendor inactive. The record stays in storage and
// remains retrievable through FindByID.
func (s *VendorStore) SoftDeleteByID(id uint) (*model.Vendor, error) {
	inactive := false
	return s.UpdateByID(id, &model.VendorUpdate{IsActive: &inactive})
}

// CountActive returns the number of active vendors
func (s *VendorStore) CountActive() (int64, error) {
	var count int64
	err := s.db.Model(&model.Vendor{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// CountAll returns the number of stored vendors including deactivated ones
func (s *VendorStore) CountAll() (int64, error) {
	var count int64
	err := s.db.Model(&model.Vendor{}).Count(&count).Error
	return count, err
}

// DistinctCategories returns every category present in storage
func (s *VendorStore) DistinctCategories() ([]string, error) {
	categories := []string{}
	err := s.db.Model(&model.Vendor{}).Distinct().Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Search returns active vendors whose name, category or description matches
// the query, case-insensitively. Result ordering beyond newest-first is not
// part of the contract.
func (s *VendorStore) Search(query string) ([]model.Vendor, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	vendors := []model.Vendor{}
	result := s.db.
		Where("is_active = ?", true).
		Where("lower(name) LIKE ? OR lower(category) LIKE ? OR lower(description) LIKE ?",
			pattern, pattern, pattern).
		Order("created_at desc").
		Find(&vendors)
	if result.Error != nil {
		return nil, result.Error
	}
	return vendors, nil
}

// ActiveCountsByCategory returns the number of active vendors per category
func (s *VendorStore) ActiveCountsByCategory() (map[string]int64, error) {
	var rows []struct {
		Category string
		Count    int64
	}
	err := s.db.Model(&model.Vendor{}).
		Select("category, count(*) as count").
		Where("is_active = ?", true).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}

// DeleteAll removes every vendor record. Used by the seed command only; the
// API never exposes a hard delete.
func (s *VendorStore) DeleteAll() error {
	return s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Vendor{}).Error
}
