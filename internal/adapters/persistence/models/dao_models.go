package models

import (
	"time"

	"daotrack/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Dossier Tables
// ============================================================

// Dao represents the daos table. The team and the task checklist are
// stored as JSON columns so a Save is one whole-document write: a
// read-then-write update on a single dossier is atomic per row.
type Dao struct {
	ID                   string              `gorm:"primaryKey;size:36" json:"id"`
	NumeroListe          string              `gorm:"uniqueIndex;size:20;not null" json:"numeroListe"`
	ObjetDossier         string              `gorm:"type:text" json:"objetDossier"`
	Reference            string              `gorm:"size:100" json:"reference"`
	AutoriteContractante string              `gorm:"size:200" json:"autoriteContractante"`
	DateDepot            time.Time           `gorm:"type:date;not null" json:"-"`
	Equipe               []domain.TeamMember `gorm:"serializer:json" json:"equipe"`
	Tasks                []domain.Task       `gorm:"serializer:json" json:"tasks"`
	TaskSeq              int                 `gorm:"not null;default:0" json:"taskSeq"`
	CreatedAt            time.Time           `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
	DeletedAt            gorm.DeletedAt      `gorm:"index" json:"-"`
}

func (Dao) TableName() string {
	return "daos"
}

// ToDomain materializes the aggregate the rule functions operate on.
func (m *Dao) ToDomain() *domain.Dao {
	return &domain.Dao{
		ID:                   m.ID,
		NumeroListe:          m.NumeroListe,
		ObjetDossier:         m.ObjetDossier,
		Reference:            m.Reference,
		AutoriteContractante: m.AutoriteContractante,
		DateDepot:            domain.DateOf(m.DateDepot),
		Equipe:               m.Equipe,
		Tasks:                m.Tasks,
		TaskSeq:              m.TaskSeq,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// DaoFromDomain maps the aggregate back onto its row.
func DaoFromDomain(d *domain.Dao) *Dao {
	return &Dao{
		ID:                   d.ID,
		NumeroListe:          d.NumeroListe,
		ObjetDossier:         d.ObjetDossier,
		Reference:            d.Reference,
		AutoriteContractante: d.AutoriteContractante,
		DateDepot:            d.DateDepot.Time(),
		Equipe:               d.Equipe,
		Tasks:                d.Tasks,
		TaskSeq:              d.TaskSeq,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

// DaoResponse DTO. Progress and status are derived, never stored.
type DaoResponse struct {
	ID                   string              `json:"id"`
	NumeroListe          string              `json:"numeroListe"`
	ObjetDossier         string              `json:"objetDossier"`
	Reference            string              `json:"reference"`
	AutoriteContractante string              `json:"autoriteContractante"`
	DateDepot            domain.Date         `json:"dateDepot"`
	Equipe               []domain.TeamMember `json:"equipe"`
	Tasks                []domain.Task       `json:"tasks"`
	Progress             int                 `json:"progress"`
	Status               domain.DaoStatus    `json:"status"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

// ToResponse derives progress and status as of today.
func (m *Dao) ToResponse(today domain.Date) *DaoResponse {
	progress := domain.CalculateDaoProgress(m.Tasks)
	dateDepot := domain.DateOf(m.DateDepot)
	return &DaoResponse{
		ID:                   m.ID,
		NumeroListe:          m.NumeroListe,
		ObjetDossier:         m.ObjetDossier,
		Reference:            m.Reference,
		AutoriteContractante: m.AutoriteContractante,
		DateDepot:            dateDepot,
		Equipe:               m.Equipe,
		Tasks:                m.Tasks,
		Progress:             progress,
		Status:               domain.CalculateDaoStatus(dateDepot, progress, today),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// Comment represents the comments table
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	DaoID     string    `gorm:"index;size:36;not null" json:"daoId"`
	TaskID    int       `gorm:"index;not null" json:"taskId"`
	UserID    string    `gorm:"size:36;not null" json:"userId"`
	UserName  string    `gorm:"size:100;not null" json:"userName"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Comment) TableName() string {
	return "comments"
}

// ToDomain maps the row to the domain entity.
func (c *Comment) ToDomain() *domain.Comment {
	return &domain.Comment{
		ID:        c.ID,
		DaoID:     c.DaoID,
		TaskID:    c.TaskID,
		UserID:    c.UserID,
		UserName:  c.UserName,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// ============================================================
// Master Tables
// ============================================================

// TaskTemplate is the fixed checklist instantiated into every new
// dossier. Admins can maintain the list; disabled templates are kept
// but no longer instantiated.
type TaskTemplate struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:200;not null" json:"name"`
	SortOrder int            `gorm:"not null;default:0" json:"sortOrder"`
	IsActive  bool           `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TaskTemplate) TableName() string {
	return "task_templates"
}
