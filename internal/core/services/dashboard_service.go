package services

import (
	"context"

	"daotrack/internal/adapters/persistence/repositories"
	"daotrack/internal/core/domain"
)

// DashboardService aggregates dossier and user figures for the
// landing screen
type DashboardService struct {
	daoRepo  repositories.DaoRepository
	userRepo repositories.UserRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	daoRepo repositories.DaoRepository,
	userRepo repositories.UserRepository,
) *DashboardService {
	return &DashboardService{
		daoRepo:  daoRepo,
		userRepo: userRepo,
	}
}

// AssignedTaskItem is one open task assigned to the requesting user
type AssignedTaskItem struct {
	DaoID       string      `json:"daoId"`
	NumeroListe string      `json:"numeroListe"`
	TaskID      int         `json:"taskId"`
	TaskName    string      `json:"taskName"`
	Progress    *int        `json:"progress"`
	DateDepot   domain.Date `json:"dateDepot"`
}

// DashboardResponse is the aggregated dashboard payload
type DashboardResponse struct {
	TotalDaos     int                      `json:"totalDaos"`
	StatusCounts  map[domain.DaoStatus]int `json:"statusCounts"`
	ActiveUsers   int64                    `json:"activeUsers"`
	AssignedTasks []AssignedTaskItem       `json:"assignedTasks"`
}

// GetSummary builds the dashboard for a user. Assigned tasks are
// matched through the team member's email, since dossier teams
// reference members, not accounts.
func (s *DashboardService) GetSummary(ctx context.Context, userID string) (*DashboardResponse, error) {
	daos, err := s.daoRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	activeUsers, err := s.userRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	today := domain.Today()
	counts := map[domain.DaoStatus]int{
		domain.StatusCompleted: 0,
		domain.StatusUrgent:    0,
		domain.StatusSafe:      0,
		domain.StatusDefault:   0,
	}
	assigned := []AssignedTaskItem{}

	for _, m := range daos {
		dao := m.ToDomain()
		progress := domain.CalculateDaoProgress(dao.Tasks)
		status := domain.CalculateDaoStatus(dao.DateDepot, progress, today)
		counts[status]++

		// member ids belonging to this account
		myMembers := map[string]bool{}
		for _, member := range dao.Equipe {
			if member.Email != "" && domain.NormalizeEmail(member.Email) == user.Email {
				myMembers[member.ID] = true
			}
		}
		if len(myMembers) == 0 {
			continue
		}

		for _, task := range dao.Tasks {
			if !task.IsApplicable || !myMembers[task.AssignedTo] {
				continue
			}
			if task.Progress != nil && *task.Progress >= 100 {
				continue
			}
			assigned = append(assigned, AssignedTaskItem{
				DaoID:       dao.ID,
				NumeroListe: dao.NumeroListe,
				TaskID:      task.ID,
				TaskName:    task.Name,
				Progress:    task.Progress,
				DateDepot:   dao.DateDepot,
			})
		}
	}

	return &DashboardResponse{
		TotalDaos:     len(daos),
		StatusCounts:  counts,
		ActiveUsers:   activeUsers,
		AssignedTasks: assigned,
	}, nil
}
