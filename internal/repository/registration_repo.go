package repository

import (
	"time"

	"supergp/internal/domain"
	"supergp/internal/models"

	"gorm.io/gorm"
)

type RegistrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) Create(reg *models.Registration) error {
	return r.db.Create(reg).Error
}

func (r *RegistrationRepository) GetByID(id string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.Where("id = ?", id).First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *RegistrationRepository) GetByPreferenceID(prefID string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.Where("preference_id = ?", prefID).First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *RegistrationRepository) Update(reg *models.Registration) error {
	return r.db.Save(reg).Error
}

func (r *RegistrationRepository) List() ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.Order("created_at DESC").Find(&regs).Error
	return regs, err
}

// ListCheckedIn returns attendance: registrations already scanned at the venue.
func (r *RegistrationRepository) ListCheckedIn() ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.Where("check_in = ?", true).Order("check_in_time ASC").Find(&regs).Error
	return regs, err
}

// MarkCheckIn flips check_in and stamps the time in one conditional UPDATE so
// the precondition check cannot race another mutation on the same row.
// Returns false when the registration was not completed or already checked in.
func (r *RegistrationRepository) MarkCheckIn(id string, t time.Time) (bool, error) {
	res := r.db.Model(&models.Registration{}).
		Where("id = ? AND estado_pago = ? AND check_in = ?", id, domain.EstadoCompletado, false).
		Updates(map[string]interface{}{"check_in": true, "check_in_time": t})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *RegistrationRepository) BulkDelete(ids []string) (int64, error) {
	res := r.db.Where("id IN ?", ids).Delete(&models.Registration{})
	return res.RowsAffected, res.Error
}

func (r *RegistrationRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Registration{}).Count(&n).Error
	return n, err
}
