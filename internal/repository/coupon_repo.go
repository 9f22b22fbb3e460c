package repository

import (
	"strings"

	"supergp/internal/models"

	"gorm.io/gorm"
)

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) Create(c *models.Coupon) error {
	c.Codigo = strings.ToUpper(c.Codigo)
	return r.db.Create(c).Error
}

// FindActive looks a code up case-insensitively among active coupons.
func (r *CouponRepository) FindActive(code string) (*models.Coupon, error) {
	var c models.Coupon
	err := r.db.Where("codigo = ? AND activo = ?", strings.ToUpper(code), true).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// IncrementUsage bumps the use counter with a single atomic UPDATE. The
// counter is append-only; under concurrency it may benignly over-count but
// never loses increments.
func (r *CouponRepository) IncrementUsage(code string) error {
	return r.db.Model(&models.Coupon{}).
		Where("codigo = ?", strings.ToUpper(code)).
		UpdateColumn("usos_actuales", gorm.Expr("usos_actuales + 1")).Error
}

func (r *CouponRepository) GetByID(id uint) (*models.Coupon, error) {
	var c models.Coupon
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) List() ([]models.Coupon, error) {
	var list []models.Coupon
	err := r.db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *CouponRepository) Update(c *models.Coupon) error {
	c.Codigo = strings.ToUpper(c.Codigo)
	return r.db.Save(c).Error
}

func (r *CouponRepository) Delete(id uint) error {
	return r.db.Delete(&models.Coupon{}, id).Error
}
