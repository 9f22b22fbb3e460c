package repository

import (
	"supergp/internal/models"

	"gorm.io/gorm"
)

// ConfigRepository serves the two singleton config rows: the platform
// commission setup and the organizer's gateway credentials.
type ConfigRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

func (r *ConfigRepository) Platform() (*models.PlatformConfig, error) {
	var cfg models.PlatformConfig
	if err := r.db.First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *ConfigRepository) SavePlatform(cfg *models.PlatformConfig) error {
	return r.db.Save(cfg).Error
}

func (r *ConfigRepository) EventPayment() (*models.EventPaymentConfig, error) {
	var cfg models.EventPaymentConfig
	if err := r.db.First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *ConfigRepository) SaveEventPayment(cfg *models.EventPaymentConfig) error {
	return r.db.Save(cfg).Error
}
