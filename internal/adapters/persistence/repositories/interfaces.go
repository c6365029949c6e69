package repositories

import (
	"context"

	"daotrack/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ListActive(ctx context.Context) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountActive(ctx context.Context) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
}

// DaoRepository defines dossier repository interface. Save writes the
// whole document; the JSON task/team columns keep a read-then-write
// update atomic at row granularity.
type DaoRepository interface {
	Create(ctx context.Context, dao *models.Dao) error
	GetByID(ctx context.Context, id string) (*models.Dao, error)
	Save(ctx context.Context, dao *models.Dao) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.Dao, int64, error)
	ListAll(ctx context.Context) ([]*models.Dao, error)
	ListNumerosByYear(ctx context.Context, year int) ([]string, error)
	ExistsByNumero(ctx context.Context, numero string) (bool, error)
}

// CommentRepository defines comment repository interface
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id string) error
	ListByDao(ctx context.Context, daoID string) ([]*models.Comment, error)
	ListByDaoTask(ctx context.Context, daoID string, taskID int) ([]*models.Comment, error)
	DeleteByDao(ctx context.Context, daoID string) error
}

// TaskTemplateRepository defines the default checklist repository interface
type TaskTemplateRepository interface {
	Create(ctx context.Context, tpl *models.TaskTemplate) error
	GetByID(ctx context.Context, id uint) (*models.TaskTemplate, error)
	Update(ctx context.Context, tpl *models.TaskTemplate) error
	Delete(ctx context.Context, id uint) error
	ListActive(ctx context.Context) ([]*models.TaskTemplate, error)
	List(ctx context.Context) ([]*models.TaskTemplate, error)
	Count(ctx context.Context) (int64, error)
}
