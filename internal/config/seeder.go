package config

import (
	"log"

	"daotrack/internal/adapters/persistence/models"
	"daotrack/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("Admin seeder skipped: %v", err)
	}
	if err := SeedTaskTemplates(s.db); err != nil {
		return err
	}

	log.Println("Database seeding completed")
	return nil
}

// seedAdminUser seeds the bootstrap admin account. Credentials come
// from the environment in production; the defaults are for
// development only.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	adminEmail := getEnv("ADMIN_EMAIL", "admin@daotrack.local")
	adminPassword := getEnv("ADMIN_PASSWORD", "admin123456")

	hashedPassword, err := password.Hash(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:       uuid.New().String(),
		Name:     "Administrateur",
		Email:    adminEmail,
		Password: hashedPassword,
		Role:     "admin",
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Admin user created: %s", admin.Email)
	return nil
}
