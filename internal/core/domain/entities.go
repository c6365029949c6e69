package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role represents a user role in the system
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// TeamRole represents a member's role inside a dossier team
type TeamRole string

const (
	TeamRoleLead   TeamRole = "chef_equipe"
	TeamRoleMember TeamRole = "membre_equipe"
)

// Valid reports whether tr is a known team role.
func (tr TeamRole) Valid() bool {
	return tr == TeamRoleLead || tr == TeamRoleMember
}

// DaoStatus is the derived traffic-light status of a dossier
type DaoStatus string

const (
	StatusCompleted DaoStatus = "completed"
	StatusUrgent    DaoStatus = "urgent"
	StatusSafe      DaoStatus = "safe"
	StatusDefault   DaoStatus = "default"
)

// Date is a calendar date without a time-of-day component.
// It marshals as "2006-01-02".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar date in local time.
func Today() Date {
	return DateOf(time.Now())
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// DaysUntil returns the whole-day difference from d to other
// (negative when other is before d).
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()) / (24 * time.Hour))
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, Invalid("dateDepot", "must be a date in YYYY-MM-DD format")
	}
	return DateOf(t), nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TeamMember is a member of a dossier team. IDs are unique within a team.
type TeamMember struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Role  TeamRole `json:"role"`
	Email string   `json:"email,omitempty"`
}

// Task is a checklist item of a dossier. IDs are positive integers,
// unique within the dossier, assigned as max(existing)+1 and never reused.
type Task struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Progress      *int       `json:"progress"`
	Comment       string     `json:"comment,omitempty"`
	IsApplicable  bool       `json:"isApplicable"`
	AssignedTo    string     `json:"assignedTo,omitempty"`
	LastUpdatedBy string     `json:"lastUpdatedBy,omitempty"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt,omitempty"`
}

// Dao is a procurement dossier aggregate.
type Dao struct {
	ID                   string       `json:"id"`
	NumeroListe          string       `json:"numeroListe"`
	ObjetDossier         string       `json:"objetDossier"`
	Reference            string       `json:"reference"`
	AutoriteContractante string       `json:"autoriteContractante"`
	DateDepot            Date         `json:"dateDepot"`
	Equipe               []TeamMember `json:"equipe"`
	Tasks                []Task       `json:"tasks"`
	// TaskSeq is the highest task id ever assigned in this dossier.
	// It only grows, so deleted ids are never handed out again.
	TaskSeq   int       `json:"taskSeq,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FindTask returns the task with the given id, or nil.
func (d *Dao) FindTask(taskID int) *Task {
	for i := range d.Tasks {
		if d.Tasks[i].ID == taskID {
			return &d.Tasks[i]
		}
	}
	return nil
}

// HasMember reports whether the team contains a member with the given id.
func (d *Dao) HasMember(memberID string) bool {
	for _, m := range d.Equipe {
		if m.ID == memberID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the dossier so rule functions can
// fail without mutating their input.
func (d *Dao) Clone() *Dao {
	out := *d
	out.Equipe = make([]TeamMember, len(d.Equipe))
	copy(out.Equipe, d.Equipe)
	out.Tasks = make([]Task, len(d.Tasks))
	for i, t := range d.Tasks {
		out.Tasks[i] = t
		if t.Progress != nil {
			p := *t.Progress
			out.Tasks[i].Progress = &p
		}
		if t.LastUpdatedAt != nil {
			at := *t.LastUpdatedAt
			out.Tasks[i].LastUpdatedAt = &at
		}
	}
	return &out
}

// User is an authenticated account. The password hash never leaves
// the persistence layer.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string // hashed
	Role      Role
	IsActive  bool
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment is a remark attached to a task of a dossier. The author's
// name is denormalized at creation time.
type Comment struct {
	ID        string    `json:"id"`
	DaoID     string    `json:"daoId"`
	TaskID    int       `json:"taskId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeEmail lowercases and trims an email for the case-insensitive
// uniqueness rule.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
