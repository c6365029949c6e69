package services

import (
	"context"
	"log"

	"daotrack/internal/adapters/persistence/repositories"
	"daotrack/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// ReminderService scans dossiers every morning and pushes a reminder
// for every one that is urgent and not completed.
type ReminderService struct {
	daoRepo  repositories.DaoRepository
	notifier Notifier
	cron     *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(daoRepo repositories.DaoRepository, notifier Notifier) *ReminderService {
	return &ReminderService{
		daoRepo:  daoRepo,
		notifier: notifier,
		cron:     cron.New(),
	}
}

// Start schedules the daily scan at 08:30
func (s *ReminderService) Start() {
	_, err := s.cron.AddFunc("30 8 * * *", func() {
		if err := s.Scan(context.Background()); err != nil {
			log.Printf("Reminder scan failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Failed to schedule reminder scan: %v", err)
		return
	}
	s.cron.Start()
	log.Println("Reminder scan scheduled (08:30 daily)")
}

// Stop stops the scheduler
func (s *ReminderService) Stop() {
	s.cron.Stop()
}

// Scan walks all dossiers once and notifies for the urgent ones
func (s *ReminderService) Scan(ctx context.Context) error {
	daos, err := s.daoRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	today := domain.Today()
	notified := 0
	for _, m := range daos {
		dao := m.ToDomain()
		progress := domain.CalculateDaoProgress(dao.Tasks)
		status := domain.CalculateDaoStatus(dao.DateDepot, progress, today)
		if status != domain.StatusUrgent {
			continue
		}
		s.notifier.DeadlineReminder(m, status, today.DaysUntil(dao.DateDepot))
		notified++
	}

	log.Printf("Reminder scan completed: %d dossier(s) flagged", notified)
	return nil
}
