package repository

import (
	"supergp/internal/models"

	"gorm.io/gorm"
)

type NewsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) Create(n *models.News) error {
	return r.db.Create(n).Error
}

func (r *NewsRepository) List(limit int) ([]models.News, error) {
	var list []models.News
	err := r.db.Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *NewsRepository) GetByID(id uint) (*models.News, error) {
	var n models.News
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NewsRepository) Update(n *models.News) error {
	return r.db.Save(n).Error
}

func (r *NewsRepository) Delete(id uint) error {
	return r.db.Delete(&models.News{}, id).Error
}
