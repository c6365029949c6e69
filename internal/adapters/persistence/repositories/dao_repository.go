package repositories

import (
	"context"
	"fmt"

	"daotrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// daoRepository implements DaoRepository interface
type daoRepository struct {
	db *gorm.DB
}

// NewDaoRepository creates a new dossier repository
func NewDaoRepository(db *gorm.DB) DaoRepository {
	return &daoRepository{db: db}
}

// Create inserts a new dossier
func (r *daoRepository) Create(ctx context.Context, dao *models.Dao) error {
	return r.db.WithContext(ctx).Create(dao).Error
}

// GetByID gets a dossier by ID
func (r *daoRepository) GetByID(ctx context.Context, id string) (*models.Dao, error) {
	var dao models.Dao
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dao).Error
	if err != nil {
		return nil, err
	}
	return &dao, nil
}

// Save writes the whole dossier document back
func (r *daoRepository) Save(ctx context.Context, dao *models.Dao) error {
	return r.db.WithContext(ctx).Save(dao).Error
}

// Delete soft deletes a dossier
func (r *daoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Dao{}, "id = ?", id).Error
}

// List lists dossiers with pagination, newest first
func (r *daoRepository) List(ctx context.Context, offset, limit int) ([]*models.Dao, int64, error) {
	var daos []*models.Dao
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Dao{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&daos).Error; err != nil {
		return nil, 0, err
	}

	return daos, total, nil
}

// ListAll returns every dossier (dashboard and reminder scans)
func (r *daoRepository) ListAll(ctx context.Context) ([]*models.Dao, error) {
	var daos []*models.Dao
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&daos).Error
	return daos, err
}

// ListNumerosByYear returns the serials already used for a year
func (r *daoRepository) ListNumerosByYear(ctx context.Context, year int) ([]string, error) {
	var numeros []string
	prefix := fmt.Sprintf("DAO-%04d-%%", year)
	err := r.db.WithContext(ctx).Model(&models.Dao{}).
		Where("numero_liste LIKE ?", prefix).
		Pluck("numero_liste", &numeros).Error
	return numeros, err
}

// ExistsByNumero checks if a serial is already taken
func (r *daoRepository) ExistsByNumero(ctx context.Context, numero string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Dao{}).Where("numero_liste = ?", numero).Count(&count).Error
	return count > 0, err
}
