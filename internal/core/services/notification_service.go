package services

import (
	"log"

	"daotrack/internal/adapters/persistence/models"
	"daotrack/internal/core/domain"
)

// Notifier delivers out-of-band notifications. Actual delivery
// (email, chat) is an external collaborator; the service only decides
// when and what to send.
type Notifier interface {
	PasswordReset(user *models.User, token string)
	DeadlineReminder(dao *models.Dao, status domain.DaoStatus, daysLeft int)
}

// logNotifier writes notifications to the application log. It stands
// in for a mail gateway in development and tests.
type logNotifier struct{}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier() Notifier {
	return &logNotifier{}
}

func (n *logNotifier) PasswordReset(user *models.User, token string) {
	log.Printf("[notify] password reset requested for %s (token %s..., expires in 15 min)",
		user.Email, token[:8])
}

func (n *logNotifier) DeadlineReminder(dao *models.Dao, status domain.DaoStatus, daysLeft int) {
	if daysLeft < 0 {
		log.Printf("[notify] dossier %s (%s) deadline passed %d day(s) ago",
			dao.NumeroListe, dao.ObjetDossier, -daysLeft)
		return
	}
	log.Printf("[notify] dossier %s (%s) due in %d day(s), status %s",
		dao.NumeroListe, dao.ObjetDossier, daysLeft, status)
}
