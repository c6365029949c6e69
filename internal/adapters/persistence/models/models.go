package models

import (
	"time"

	"daotrack/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents the users table. Deactivation is the soft-delete
// flag is_active; rows are never hard-deleted.
type User struct {
	ID                string         `gorm:"primaryKey;size:36" json:"id"`
	Name              string         `gorm:"size:100;not null" json:"name"`
	Email             string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password          string         `gorm:"size:255;not null" json:"-"`
	Role              string         `gorm:"size:20;default:'user'" json:"role"`
	IsActive          bool           `gorm:"default:true" json:"isActive"`
	LastLogin         *time.Time     `json:"lastLogin"`
	ResetTokenHash    string         `gorm:"size:64" json:"-"`
	ResetTokenExpires *time.Time     `json:"-"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

// HasActiveResetToken reports whether a reset token is set and not
// yet expired at the given instant.
func (u *User) HasActiveResetToken(now time.Time) bool {
	return u.ResetTokenHash != "" && u.ResetTokenExpires != nil && now.Before(*u.ResetTokenExpires)
}

// ClearResetToken drops the reset token; the token is single-use.
func (u *User) ClearResetToken() {
	u.ResetTokenHash = ""
	u.ResetTokenExpires = nil
}

// DomainRole returns the typed role.
func (u *User) DomainRole() domain.Role {
	return domain.Role(u.Role)
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"index;size:36;not null" json:"userId"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	RevokedAt *time.Time `gorm:"index" json:"revokedAt"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Dao{},
		&Comment{},
		&TaskTemplate{},
	)
}
