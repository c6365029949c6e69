package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"daotrack/internal/adapters/persistence/models"
	"daotrack/internal/adapters/persistence/repositories"
	"daotrack/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentService handles task comment business logic
type CommentService struct {
	commentRepo repositories.CommentRepository
	daoRepo     repositories.DaoRepository
	userRepo    repositories.UserRepository
	now         func() time.Time
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo repositories.CommentRepository,
	daoRepo repositories.DaoRepository,
	userRepo repositories.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		daoRepo:     daoRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// CreateCommentInput represents comment creation input
type CreateCommentInput struct {
	TaskID  int    `json:"taskId"`
	Content string `json:"content"`
}

// ListByDao lists the comments of a dossier, optionally restricted
// to one task
func (s *CommentService) ListByDao(ctx context.Context, daoID string, taskID *int) ([]*models.Comment, error) {
	if _, err := s.daoRepo.GetByID(ctx, daoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDaoNotFound
		}
		return nil, err
	}

	if taskID != nil {
		return s.commentRepo.ListByDaoTask(ctx, daoID, *taskID)
	}
	return s.commentRepo.ListByDao(ctx, daoID)
}

// Create attaches a comment to a task of a dossier. The author's name
// is denormalized into the comment at creation time.
func (s *CommentService) Create(ctx context.Context, daoID string, input *CreateCommentInput, actorID string) (*models.Comment, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, domain.Invalid("content", "is required")
	}

	dao, err := s.daoRepo.GetByID(ctx, daoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDaoNotFound
		}
		return nil, err
	}
	if dao.ToDomain().FindTask(input.TaskID) == nil {
		return nil, domain.ErrTaskNotFound
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	comment := &models.Comment{
		ID:        uuid.New().String(),
		DaoID:     daoID,
		TaskID:    input.TaskID,
		UserID:    actor.ID,
		UserName:  actor.Name,
		Content:   strings.TrimSpace(input.Content),
		CreatedAt: s.now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Update edits a comment's content. Only the author or an admin may
// edit.
func (s *CommentService) Update(ctx context.Context, id, content, actorID string, actorRole domain.Role) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.Invalid("content", "is required")
	}

	comment, err := s.loadComment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanModifyComment(actorID, actorRole, comment.ToDomain()) {
		return nil, domain.ErrNotCommentOwner
	}

	comment.Content = strings.TrimSpace(content)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment. Only the author or an admin may delete.
func (s *CommentService) Delete(ctx context.Context, id, actorID string, actorRole domain.Role) error {
	comment, err := s.loadComment(ctx, id)
	if err != nil {
		return err
	}

	if !domain.CanModifyComment(actorID, actorRole, comment.ToDomain()) {
		return domain.ErrNotCommentOwner
	}

	return s.commentRepo.Delete(ctx, id)
}

func (s *CommentService) loadComment(ctx context.Context, id string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
