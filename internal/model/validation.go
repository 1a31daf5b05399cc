package model

import (
	"fmt"
	"strings"
)

// ValidationError reports a field that failed vendor validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateVendor checks a vendor against the creation constraints: the four
// required fields must be non-empty after trimming and the rating must stay
// within [0,5]. Trimmed values are written back so storage never holds
// padded strings.
func ValidateVendor(v *Vendor) error {
	v.Name = strings.TrimSpace(v.Name)
	v.Category = strings.TrimSpace(v.Category)
	v.Contact = strings.TrimSpace(v.Contact)
	v.Phone = strings.TrimSpace(v.Phone)
	v.Website = strings.TrimSpace(v.Website)
	v.Address = strings.TrimSpace(v.Address)

	if v.Name == "" {
		return &ValidationError{Field: "name", Message: "please provide a vendor name"}
	}
	if v.Category == "" {
		return &ValidationError{Field: "category", Message: "please provide a category"}
	}
	if v.Contact == "" {
		return &ValidationError{Field: "contact", Message: "please provide contact information"}
	}
	if v.Phone == "" {
		return &ValidationError{Field: "phone", Message: "please provide phone number"}
	}
	if v.Rating < 0 || v.Rating > 5 {
		return &ValidationError{Field: "rating", Message: "rating must be between 0 and 5"}
	}
	return nil
}

// ValidateVendorUpdate checks only the fields supplied in a partial update,
// applying the same constraints as ValidateVendor.
func ValidateVendorUpdate(u *VendorUpdate) error {
	if u.Name != nil {
		*u.Name = strings.TrimSpace(*u.Name)
		if *u.Name == "" {
			return &ValidationError{Field: "name", Message: "please provide a vendor name"}
		}
	}
	if u.Category != nil {
		*u.Category = strings.TrimSpace(*u.Category)
		if *u.Category == "" {
			return &ValidationError{Field: "category", Message: "please provide a category"}
		}
	}
	if u.Contact != nil {
		*u.Contact = strings.TrimSpace(*u.Contact)
		if *u.Contact == "" {
			return &ValidationError{Field: "contact", Message: "please provide contact information"}
		}
	}
	if u.Phone != nil {
		*u.Phone = strings.TrimSpace(*u.Phone)
		if *u.Phone == "" {
			return &ValidationError{Field: "phone", Message: "please provide phone number"}
		}
	}
	if u.Rating != nil && (*u.Rating < 0 || *u.Rating > 5) {
		return &ValidationError{Field: "rating", Message: "rating must be between 0 and 5"}
	}
	return nil
}
