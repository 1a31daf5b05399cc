package store

import (
	"errors"

	"vendor-service/internal/model"

	"gorm.io/gorm"
)

// UserStore provides storage and lookup of user accounts
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a user store bound to the given database handle
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user
func (s *UserStore) Create(u *model.User) error {
	return s.db.Create(u).Error
}

// FindByEmail returns the user with the given email or ErrNotFound
func (s *UserStore) FindByEmail(email string) (*model.User, error) {
	var user model.User
	result := s.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// FindByID returns the user with the given id or ErrNotFound
func (s *UserStore) FindByID(id uint) (*model.User, error) {
	var user model.User
	result := s.db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}
