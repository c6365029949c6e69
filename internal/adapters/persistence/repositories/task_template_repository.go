package repositories

import (
	"context"

	"daotrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// taskTemplateRepository implements TaskTemplateRepository interface
type taskTemplateRepository struct {
	db *gorm.DB
}

// NewTaskTemplateRepository creates a new task template repository
func NewTaskTemplateRepository(db *gorm.DB) TaskTemplateRepository {
	return &taskTemplateRepository{db: db}
}

// Create inserts a new template
func (r *taskTemplateRepository) Create(ctx context.Context, tpl *models.TaskTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

// GetByID gets a template by ID
func (r *taskTemplateRepository) GetByID(ctx context.Context, id uint) (*models.TaskTemplate, error) {
	var tpl models.TaskTemplate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Update updates a template
func (r *taskTemplateRepository) Update(ctx context.Context, tpl *models.TaskTemplate) error {
	return r.db.WithContext(ctx).Save(tpl).Error
}

// Delete soft deletes a template
func (r *taskTemplateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TaskTemplate{}, id).Error
}

// ListActive lists enabled templates in checklist order
func (r *taskTemplateRepository) ListActive(ctx context.Context) ([]*models.TaskTemplate, error) {
	var tpls []*models.TaskTemplate
	err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("sort_order, id").Find(&tpls).Error
	return tpls, err
}

// List lists all templates, disabled included
func (r *taskTemplateRepository) List(ctx context.Context) ([]*models.TaskTemplate, error) {
	var tpls []*models.TaskTemplate
	err := r.db.WithContext(ctx).Order("sort_order, id").Find(&tpls).Error
	return tpls, err
}

// Count counts templates (used by the seeder)
func (r *taskTemplateRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TaskTemplate{}).Count(&count).Error
	return count, err
}
