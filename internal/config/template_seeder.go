package config

import (
	"log"

	"daotrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedTaskTemplates seeds the fixed checklist every new dossier
// starts from. Only runs on an empty table so admin edits survive
// restarts.
func SeedTaskTemplates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.TaskTemplate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	templates := []models.TaskTemplate{
		{Name: "Préparation du dossier d'appel d'offres", SortOrder: 1, IsActive: true},
		{Name: "Validation des spécifications techniques", SortOrder: 2, IsActive: true},
		{Name: "Publication de l'avis d'appel d'offres", SortOrder: 3, IsActive: true},
		{Name: "Réception des offres", SortOrder: 4, IsActive: true},
		{Name: "Ouverture des plis", SortOrder: 5, IsActive: true},
		{Name: "Évaluation technique des offres", SortOrder: 6, IsActive: true},
		{Name: "Évaluation financière des offres", SortOrder: 7, IsActive: true},
		{Name: "Rapport d'évaluation", SortOrder: 8, IsActive: true},
		{Name: "Attribution provisoire", SortOrder: 9, IsActive: true},
		{Name: "Notification et signature du contrat", SortOrder: 10, IsActive: true},
	}

	for _, tpl := range templates {
		if err := db.Create(&tpl).Error; err != nil {
			return err
		}
		log.Printf("   Created task template: %s", tpl.Name)
	}

	log.Println("Task templates seeded")
	return nil
}
