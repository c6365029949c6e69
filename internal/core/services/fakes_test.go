package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"daotrack/internal/adapters/persistence/models"
	"daotrack/internal/core/domain"

	"gorm.io/gorm"
)

func timeNow() time.Time { return time.Now() }

// In-memory repository fakes. They mirror the gorm implementations'
// contract, including gorm.ErrRecordNotFound on a miss.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByResetTokenHash(_ context.Context, tokenHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetTokenHash != "" && u.ResetTokenHash == tokenHash {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeUserRepo) ListActive(_ context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		if u.IsActive {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) CountActive(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.IsActive {
			n++
		}
	}
	return n, nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	nextID uint
	tokens map[uint]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[uint]*models.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	token.ID = r.nextID
	cp := *token
	r.tokens[token.ID] = &cp
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := timeNow()
	t.RevokedAt = &now
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash && t.RevokedAt == nil {
			now := timeNow()
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			now := timeNow()
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	return nil
}

func (r *fakeRefreshTokenRepo) activeCount(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			n++
		}
	}
	return n
}

type fakeDaoRepo struct {
	mu   sync.Mutex
	daos map[string]*models.Dao
}

func newFakeDaoRepo() *fakeDaoRepo {
	return &fakeDaoRepo{daos: make(map[string]*models.Dao)}
}

func (r *fakeDaoRepo) Create(_ context.Context, dao *models.Dao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *dao
	r.daos[dao.ID] = &cp
	return nil
}

func (r *fakeDaoRepo) GetByID(_ context.Context, id string) (*models.Dao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.daos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDaoRepo) Save(_ context.Context, dao *models.Dao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *dao
	r.daos[dao.ID] = &cp
	return nil
}

func (r *fakeDaoRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.daos, id)
	return nil
}

func (r *fakeDaoRepo) List(_ context.Context, offset, limit int) ([]*models.Dao, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted()
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeDaoRepo) ListAll(_ context.Context) ([]*models.Dao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(), nil
}

func (r *fakeDaoRepo) ListNumerosByYear(_ context.Context, year int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, d := range r.daos {
		if m := domain.NumeroListePattern.FindStringSubmatch(d.NumeroListe); m != nil {
			out = append(out, d.NumeroListe)
		}
	}
	return out, nil
}

func (r *fakeDaoRepo) ExistsByNumero(_ context.Context, numero string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.daos {
		if d.NumeroListe == numero {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDaoRepo) sorted() []*models.Dao {
	all := make([]*models.Dao, 0, len(r.daos))
	for _, d := range r.daos {
		cp := *d
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].NumeroListe < all[j].NumeroListe })
	return all
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*models.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) ListByDao(_ context.Context, daoID string) ([]*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Comment
	for _, c := range r.comments {
		if c.DaoID == daoID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCommentRepo) ListByDaoTask(_ context.Context, daoID string, taskID int) ([]*models.Comment, error) {
	all, _ := r.ListByDao(context.Background(), daoID)
	var out []*models.Comment
	for _, c := range all {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) DeleteByDao(_ context.Context, daoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.comments {
		if c.DaoID == daoID {
			delete(r.comments, id)
		}
	}
	return nil
}

type fakeTemplateRepo struct {
	mu        sync.Mutex
	nextID    uint
	templates map[uint]*models.TaskTemplate
}

func newFakeTemplateRepo(names ...string) *fakeTemplateRepo {
	r := &fakeTemplateRepo{templates: make(map[uint]*models.TaskTemplate)}
	for i, name := range names {
		r.nextID++
		r.templates[r.nextID] = &models.TaskTemplate{
			ID:        r.nextID,
			Name:      name,
			SortOrder: i + 1,
			IsActive:  true,
		}
	}
	return r
}

func (r *fakeTemplateRepo) Create(_ context.Context, tpl *models.TaskTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	tpl.ID = r.nextID
	cp := *tpl
	r.templates[tpl.ID] = &cp
	return nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id uint) (*models.TaskTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, tpl *models.TaskTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[tpl.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *tpl
	r.templates[tpl.ID] = &cp
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.templates, id)
	return nil
}

func (r *fakeTemplateRepo) ListActive(_ context.Context) ([]*models.TaskTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.TaskTemplate
	for _, t := range r.templates {
		if t.IsActive {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *fakeTemplateRepo) List(_ context.Context) ([]*models.TaskTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.TaskTemplate
	for _, t := range r.templates {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *fakeTemplateRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.templates)), nil
}

// fakeNotifier records what would have been sent.
type fakeNotifier struct {
	mu          sync.Mutex
	resetTokens []string
	reminders   []string
}

func (n *fakeNotifier) PasswordReset(_ *models.User, token string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resetTokens = append(n.resetTokens, token)
}

func (n *fakeNotifier) DeadlineReminder(dao *models.Dao, _ domain.DaoStatus, _ int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reminders = append(n.reminders, dao.NumeroListe)
}

func (n *fakeNotifier) lastResetToken() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.resetTokens) == 0 {
		return ""
	}
	return n.resetTokens[len(n.resetTokens)-1]
}
