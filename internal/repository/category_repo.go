package repository

import (
	"supergp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListPrices() ([]models.CategoryPrice, error) {
	var list []models.CategoryPrice
	err := r.db.Order("posicion ASC").Find(&list).Error
	return list, err
}

// PriceMap loads the whole price table as an immutable snapshot for one
// pricing computation.
func (r *CategoryRepository) PriceMap() (map[string]float64, error) {
	list, err := r.ListPrices()
	if err != nil {
		return nil, err
	}
	m := make(map[string]float64, len(list))
	for _, p := range list {
		m[p.Nombre] = p.Precio
	}
	return m, nil
}

// UpsertPrice replaces or inserts a single category entry.
func (r *CategoryRepository) UpsertPrice(p *models.CategoryPrice) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "nombre"}},
		DoUpdates: clause.AssignmentColumns([]string{"precio", "posicion", "updated_at"}),
	}).Create(p).Error
}

func (r *CategoryRepository) DeletePrice(nombre string) error {
	return r.db.Where("nombre = ?", nombre).Delete(&models.CategoryPrice{}).Error
}

func (r *CategoryRepository) ListGroups() ([]models.CategoryGroup, error) {
	var list []models.CategoryGroup
	err := r.db.Order("posicion ASC").Find(&list).Error
	return list, err
}

func (r *CategoryRepository) UpsertGroup(g *models.CategoryGroup) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "nombre"}},
		DoUpdates: clause.AssignmentColumns([]string{"categorias", "posicion", "updated_at"}),
	}).Create(g).Error
}

func (r *CategoryRepository) DeleteGroup(nombre string) error {
	return r.db.Where("nombre = ?", nombre).Delete(&models.CategoryGroup{}).Error
}
