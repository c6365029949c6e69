package repositories

import (
	"context"

	"daotrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// commentRepository implements CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByID gets a comment by ID
func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update updates a comment
func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete removes a comment
func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id).Error
}

// ListByDao lists all comments of a dossier, newest first
func (r *commentRepository) ListByDao(ctx context.Context, daoID string) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).Where("dao_id = ?", daoID).
		Order("created_at DESC").Find(&comments).Error
	return comments, err
}

// ListByDaoTask lists the comments of one task of a dossier
func (r *commentRepository) ListByDaoTask(ctx context.Context, daoID string, taskID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).Where("dao_id = ? AND task_id = ?", daoID, taskID).
		Order("created_at DESC").Find(&comments).Error
	return comments, err
}

// DeleteByDao removes all comments of a dossier (dossier deletion)
func (r *commentRepository) DeleteByDao(ctx context.Context, daoID string) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "dao_id = ?", daoID).Error
}
