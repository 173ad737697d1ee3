package config

import (
	"context"
	"errors"
	"log"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/adapters/persistence/repositories"

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

// Run seeds the catalogs; rows are keyed by code and never overwritten
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	courseTypeRepo := repositories.NewCatalogRepository[models.CourseType](s.db)
	if err := seedByCode(ctx, courseTypeRepo, "course_type", courseTypes(), func(t models.CourseType) string { return t.Code }); err != nil {
		return err
	}
	equipmentTypeRepo := repositories.NewCatalogRepository[models.EquipmentType](s.db)
	if err := seedByCode(ctx, equipmentTypeRepo, "equipment_type", equipmentTypes(), func(t models.EquipmentType) string { return t.Code }); err != nil {
		return err
	}
	documentTypeRepo := repositories.NewCatalogRepository[models.DocumentType](s.db)
	if err := seedByCode(ctx, documentTypeRepo, "document_type", documentTypes(), func(t models.DocumentType) string { return t.Code }); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

func seedByCode[T any](ctx context.Context, repo *repositories.CatalogRepository[T], label string, rows []T, code func(T) string) error {
	for _, row := range rows {
		_, err := repo.GetByCode(ctx, code(row))
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := repo.Create(ctx, &row); err != nil {
			return err
		}
		log.Printf("   Created %s: %s", label, code(row))
	}
	return nil
}

func days(n int) *int {
	return &n
}

func courseTypes() []models.CourseType {
	return []models.CourseType{
		{Code: "ALTURAS", Name: "Trabajo seguro en alturas", ValidityDays: days(365), IsActive: true},
		{Code: "ALTURAS-COORD", Name: "Coordinador de trabajo en alturas", ValidityDays: days(365), IsActive: true},
		{Code: "PRIMEROS-AUX", Name: "Primeros auxilios", ValidityDays: days(730), AlertDays: days(45), IsActive: true},
		{Code: "MONTAJE", Name: "Montaje de estructuras", ValidityDays: days(1095), IsActive: true},
		{Code: "INDUCCION", Name: "Inducción SST", Description: "Induction, does not expire", IsActive: true},
	}
}

func equipmentTypes() []models.EquipmentType {
	return []models.EquipmentType{
		{Code: "ARNES", Name: "Arnés de cuerpo completo", ServiceLifeDays: days(1825), IsActive: true},
		{Code: "ESLINGA", Name: "Eslinga con absorbedor", ServiceLifeDays: days(1825), IsActive: true},
		{Code: "CASCO", Name: "Casco dieléctrico", ServiceLifeDays: days(1095), IsActive: true},
		{Code: "GUANTES", Name: "Guantes de carnaza", ServiceLifeDays: days(90), IsActive: true},
		{Code: "BOTAS", Name: "Botas de seguridad", ServiceLifeDays: days(365), IsActive: true},
		{Code: "GAFAS", Name: "Gafas de seguridad", IsActive: true},
	}
}

func documentTypes() []models.DocumentType {
	return []models.DocumentType{
		{Code: "CEDULA", Name: "Documento de identidad", IsActive: true},
		{Code: "EXAMEN-MED", Name: "Examen médico ocupacional", RequiresVigency: true, IsActive: true},
		{Code: "PLANILLA-SS", Name: "Planilla de seguridad social", RequiresVigency: true, IsActive: true},
		{Code: "POLIZA", Name: "Póliza de responsabilidad civil", RequiresVigency: true, IsActive: true},
		{Code: "HOJA-VIDA", Name: "Hoja de vida", IsActive: true},
	}
}
