package repository

import (
	"supergp/internal/models"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(a *models.Admin) error {
	return r.db.Create(a).Error
}

func (r *AdminRepository) GetByEmail(email string) (*models.Admin, error) {
	var a models.Admin
	if err := r.db.Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
