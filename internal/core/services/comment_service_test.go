package services

import (
	"context"
	"testing"

	"daotrack/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommentService(t *testing.T) (*CommentService, *DaoService, *fakeUserRepo) {
	t.Helper()
	daoSvc, daoRepo, commentRepo := newTestDaoService(t)
	userRepo := newFakeUserRepo()
	seedUser(t, userRepo, "author-1", "awa@example.com", "password123", true)
	seedUser(t, userRepo, "other-1", "moussa@example.com", "password123", true)
	return NewCommentService(commentRepo, daoRepo, userRepo), daoSvc, userRepo
}

func TestCommentCreate(t *testing.T) {
	ctx := context.Background()
	svc, daoSvc, _ := newTestCommentService(t)
	daoID := createDao(t, daoSvc)

	t.Run("denormalizes the author name", func(t *testing.T) {
		comment, err := svc.Create(ctx, daoID, &CreateCommentInput{TaskID: 1, Content: "Pièces reçues"}, "author-1")
		require.NoError(t, err)
		assert.Equal(t, "Test User", comment.UserName)
		assert.Equal(t, daoID, comment.DaoID)
	})

	t.Run("task must exist", func(t *testing.T) {
		_, err := svc.Create(ctx, daoID, &CreateCommentInput{TaskID: 99, Content: "x"}, "author-1")
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("dossier must exist", func(t *testing.T) {
		_, err := svc.Create(ctx, "nope", &CreateCommentInput{TaskID: 1, Content: "x"}, "author-1")
		assert.ErrorIs(t, err, domain.ErrDaoNotFound)
	})

	t.Run("blank content rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, daoID, &CreateCommentInput{TaskID: 1, Content: "   "}, "author-1")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCommentOwnership(t *testing.T) {
	ctx := context.Background()
	svc, daoSvc, _ := newTestCommentService(t)
	daoID := createDao(t, daoSvc)

	comment, err := svc.Create(ctx, daoID, &CreateCommentInput{TaskID: 1, Content: "Premier jet"}, "author-1")
	require.NoError(t, err)

	t.Run("author can edit", func(t *testing.T) {
		updated, err := svc.Update(ctx, comment.ID, "Corrigé", "author-1", domain.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, "Corrigé", updated.Content)
	})

	t.Run("another user cannot", func(t *testing.T) {
		_, err := svc.Update(ctx, comment.ID, "Piraté", "other-1", domain.RoleUser)
		assert.ErrorIs(t, err, domain.ErrNotCommentOwner)

		err = svc.Delete(ctx, comment.ID, "other-1", domain.RoleUser)
		assert.ErrorIs(t, err, domain.ErrNotCommentOwner)
	})

	t.Run("admin can delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, comment.ID, "other-1", domain.RoleAdmin))

		_, err := svc.Update(ctx, comment.ID, "x", "author-1", domain.RoleUser)
		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	})
}

func TestCommentListByTask(t *testing.T) {
	ctx := context.Background()
	svc, daoSvc, _ := newTestCommentService(t)
	daoID := createDao(t, daoSvc)

	_, err := svc.Create(ctx, daoID, &CreateCommentInput{TaskID: 1, Content: "Sur la tâche 1"}, "author-1")
	require.NoError(t, err)
	_, err = svc.Create(ctx, daoID, &CreateCommentInput{TaskID: 2, Content: "Sur la tâche 2"}, "author-1")
	require.NoError(t, err)

	all, err := svc.ListByDao(ctx, daoID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	taskID := 2
	scoped, err := svc.ListByDao(ctx, daoID, &taskID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Sur la tâche 2", scoped[0].Content)
}
