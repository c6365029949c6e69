package services

import (
	"context"
	"errors"
	"log"
	"time"

	"daotrack/internal/adapters/persistence/models"
	"daotrack/internal/adapters/persistence/repositories"
	"daotrack/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DaoService handles dossier business logic. All task mutations go
// through the pure rule functions in the domain package; the service
// only loads the aggregate, applies the rule and saves the document.
type DaoService struct {
	daoRepo      repositories.DaoRepository
	commentRepo  repositories.CommentRepository
	templateRepo repositories.TaskTemplateRepository
	now          func() time.Time
}

// NewDaoService creates a new dossier service
func NewDaoService(
	daoRepo repositories.DaoRepository,
	commentRepo repositories.CommentRepository,
	templateRepo repositories.TaskTemplateRepository,
) *DaoService {
	return &DaoService{
		daoRepo:      daoRepo,
		commentRepo:  commentRepo,
		templateRepo: templateRepo,
		now:          time.Now,
	}
}

// CreateDaoInput represents dossier creation input. NumeroListe is
// optional; when empty the next serial of the current year is
// generated.
type CreateDaoInput struct {
	NumeroListe          string              `json:"numeroListe"`
	ObjetDossier         string              `json:"objetDossier"`
	Reference            string              `json:"reference"`
	AutoriteContractante string              `json:"autoriteContractante"`
	DateDepot            domain.Date         `json:"dateDepot"`
	Equipe               []domain.TeamMember `json:"equipe"`
}

// UpdateDaoInput represents a dossier metadata/team update
type UpdateDaoInput struct {
	ObjetDossier         *string              `json:"objetDossier"`
	Reference            *string              `json:"reference"`
	AutoriteContractante *string              `json:"autoriteContractante"`
	DateDepot            *domain.Date         `json:"dateDepot"`
	Equipe               *[]domain.TeamMember `json:"equipe"`
}

// ListDaosInput represents dossier list input
type ListDaosInput struct {
	Page   int
	Limit  int
	Status domain.DaoStatus // optional derived-status filter
}

// ListDaosOutput represents dossier list output
type ListDaosOutput struct {
	Daos       []*models.DaoResponse `json:"daos"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"totalPages"`
}

// Create creates a dossier: the fixed checklist is instantiated from
// the active task templates, then the caller's invariants are checked
// before anything is written.
func (s *DaoService) Create(ctx context.Context, input *CreateDaoInput) (*models.DaoResponse, error) {
	now := s.now()

	numero := input.NumeroListe
	if numero == "" {
		generated, err := s.NextNumber(ctx)
		if err != nil {
			return nil, err
		}
		numero = generated
	} else {
		if !domain.ValidNumeroListe(numero) {
			return nil, domain.Invalid("numeroListe", "must match DAO-<year>-<3-digit-seq>")
		}
		exists, err := s.daoRepo.ExistsByNumero(ctx, numero)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateSerial
		}
	}

	equipe := make([]domain.TeamMember, len(input.Equipe))
	for i, m := range input.Equipe {
		equipe[i] = m
		if equipe[i].ID == "" {
			equipe[i].ID = uuid.New().String()
		}
	}

	tasks, err := s.defaultChecklist(ctx)
	if err != nil {
		return nil, err
	}

	dao := &domain.Dao{
		ID:                   uuid.New().String(),
		NumeroListe:          numero,
		ObjetDossier:         input.ObjetDossier,
		Reference:            input.Reference,
		AutoriteContractante: input.AutoriteContractante,
		DateDepot:            input.DateDepot,
		Equipe:               equipe,
		Tasks:                tasks,
		TaskSeq:              len(tasks),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := domain.ValidateDao(dao); err != nil {
		return nil, err
	}

	model := models.DaoFromDomain(dao)
	if err := s.daoRepo.Create(ctx, model); err != nil {
		return nil, err
	}

	log.Printf("Dao created: %s (%s)", dao.NumeroListe, dao.ObjetDossier)
	return model.ToResponse(domain.Today()), nil
}

// GetByID gets a dossier with its derived progress and status
func (s *DaoService) GetByID(ctx context.Context, id string) (*models.DaoResponse, error) {
	model, err := s.loadDao(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.ToResponse(domain.Today()), nil
}

// List lists dossiers. Status filtering happens in memory because
// status is derived from the deadline, not stored.
func (s *DaoService) List(ctx context.Context, input *ListDaosInput) (*ListDaosOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	today := domain.Today()

	if input.Status == "" {
		offset := (input.Page - 1) * input.Limit
		daos, total, err := s.daoRepo.List(ctx, offset, input.Limit)
		if err != nil {
			return nil, err
		}
		responses := make([]*models.DaoResponse, len(daos))
		for i, d := range daos {
			responses[i] = d.ToResponse(today)
		}
		return s.listOutput(responses, total, input), nil
	}

	all, err := s.daoRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []*models.DaoResponse
	for _, d := range all {
		resp := d.ToResponse(today)
		if resp.Status == input.Status {
			filtered = append(filtered, resp)
		}
	}

	total := int64(len(filtered))
	start := (input.Page - 1) * input.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + input.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return s.listOutput(filtered[start:end], total, input), nil
}

// Update applies a metadata/team update. Replacing the team clears
// any task assignment that no longer points at a member.
func (s *DaoService) Update(ctx context.Context, id string, input *UpdateDaoInput) (*models.DaoResponse, error) {
	model, err := s.loadDao(ctx, id)
	if err != nil {
		return nil, err
	}

	dao := model.ToDomain()

	if input.ObjetDossier != nil {
		dao.ObjetDossier = *input.ObjetDossier
	}
	if input.Reference != nil {
		dao.Reference = *input.Reference
	}
	if input.AutoriteContractante != nil {
		dao.AutoriteContractante = *input.AutoriteContractante
	}
	if input.DateDepot != nil {
		dao.DateDepot = *input.DateDepot
	}
	if input.Equipe != nil {
		dao.Equipe = *input.Equipe
		for i := range dao.Tasks {
			if dao.Tasks[i].AssignedTo != "" && !dao.HasMember(dao.Tasks[i].AssignedTo) {
				dao.Tasks[i].AssignedTo = ""
			}
		}
	}

	dao.UpdatedAt = s.now()

	if err := domain.ValidateDao(dao); err != nil {
		return nil, err
	}

	updated := models.DaoFromDomain(dao)
	if err := s.daoRepo.Save(ctx, updated); err != nil {
		return nil, err
	}
	return updated.ToResponse(domain.Today()), nil
}

// Delete removes a dossier and its comments
func (s *DaoService) Delete(ctx context.Context, id string) error {
	if _, err := s.loadDao(ctx, id); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteByDao(ctx, id); err != nil {
		return err
	}
	if err := s.daoRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("Dao deleted: %s", id)
	return nil
}

// NextNumber returns the next free serial for the current year
func (s *DaoService) NextNumber(ctx context.Context) (string, error) {
	year := domain.Today().Year
	numeros, err := s.daoRepo.ListNumerosByYear(ctx, year)
	if err != nil {
		return "", err
	}
	return domain.NextDaoNumber(numeros, year)
}

// AddTask appends a custom task to the checklist
func (s *DaoService) AddTask(ctx context.Context, daoID string, draft domain.TaskDraft, actorID string) (*models.DaoResponse, error) {
	return s.applyTaskRule(ctx, daoID, func(dao *domain.Dao) (*domain.Dao, error) {
		return domain.AddTask(dao, draft, actorID, s.now())
	})
}

// UpdateTask applies a partial update to a task
func (s *DaoService) UpdateTask(ctx context.Context, daoID string, taskID int, patch domain.TaskPatch, actorID string) (*models.DaoResponse, error) {
	return s.applyTaskRule(ctx, daoID, func(dao *domain.Dao) (*domain.Dao, error) {
		return domain.UpdateTask(dao, taskID, patch, actorID, s.now())
	})
}

// DeleteTask removes a task from the checklist
func (s *DaoService) DeleteTask(ctx context.Context, daoID string, taskID int) (*models.DaoResponse, error) {
	return s.applyTaskRule(ctx, daoID, func(dao *domain.Dao) (*domain.Dao, error) {
		return domain.DeleteTask(dao, taskID, s.now())
	})
}

// AssignTask assigns a task to a team member
func (s *DaoService) AssignTask(ctx context.Context, daoID string, taskID int, memberID, actorID string) (*models.DaoResponse, error) {
	return s.applyTaskRule(ctx, daoID, func(dao *domain.Dao) (*domain.Dao, error) {
		return domain.AssignTask(dao, taskID, memberID, actorID, s.now())
	})
}

// UnassignTask clears a task's assignment
func (s *DaoService) UnassignTask(ctx context.Context, daoID string, taskID int, actorID string) (*models.DaoResponse, error) {
	return s.applyTaskRule(ctx, daoID, func(dao *domain.Dao) (*domain.Dao, error) {
		return domain.UnassignTask(dao, taskID, actorID, s.now())
	})
}

// applyTaskRule loads the aggregate, runs a rule and saves the
// document. A failed rule writes nothing.
func (s *DaoService) applyTaskRule(ctx context.Context, daoID string, rule func(*domain.Dao) (*domain.Dao, error)) (*models.DaoResponse, error) {
	model, err := s.loadDao(ctx, daoID)
	if err != nil {
		return nil, err
	}

	updated, err := rule(model.ToDomain())
	if err != nil {
		return nil, err
	}

	out := models.DaoFromDomain(updated)
	if err := s.daoRepo.Save(ctx, out); err != nil {
		return nil, err
	}
	return out.ToResponse(domain.Today()), nil
}

func (s *DaoService) loadDao(ctx context.Context, id string) (*models.Dao, error) {
	model, err := s.daoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDaoNotFound
		}
		return nil, err
	}
	return model, nil
}

// defaultChecklist instantiates the fixed checklist from active
// templates, ids 1..n in checklist order.
func (s *DaoService) defaultChecklist(ctx context.Context) ([]domain.Task, error) {
	templates, err := s.templateRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, len(templates))
	for i, tpl := range templates {
		tasks[i] = domain.Task{
			ID:           i + 1,
			Name:         tpl.Name,
			IsApplicable: true,
		}
	}
	return tasks, nil
}

func (s *DaoService) listOutput(daos []*models.DaoResponse, total int64, input *ListDaosInput) *ListDaosOutput {
	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}
	if daos == nil {
		daos = []*models.DaoResponse{}
	}
	return &ListDaosOutput{
		Daos:       daos,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}
}
