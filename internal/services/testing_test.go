package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/models"
)

// fixedNow is the deterministic clock used by every service test.
var fixedNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedClinicFixtures creates the minimal patient/dentist/room/soin rows
// that booking and billing operations reference.
func seedClinicFixtures(t *testing.T, db *gorm.DB) (patient models.Patient, dentist models.User, room models.ConsultationRoom, treatment models.Treatment) {
	t.Helper()
	patient = models.Patient{
		LastName:    "Durand",
		FirstName:   "Alice",
		DateOfBirth: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		Address:     "1 rue des Lilas",
		Phone:       "0600000000",
		Email:       "alice@test",
	}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("patient: %v", err)
	}
	dentist = models.User{
		Email:     "dentist@test",
		Password:  "x",
		FirstName: "Bernard",
		LastName:  "Martin",
		Role:      models.RoleDentist,
	}
	if err := db.Create(&dentist).Error; err != nil {
		t.Fatalf("dentist: %v", err)
	}
	room = models.ConsultationRoom{Number: 1, Capacity: 2}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("room: %v", err)
	}
	treatment = models.Treatment{Code: "DET", Description: "Détartrage", Price: 50, Category: "Prévention"}
	if err := db.Create(&treatment).Error; err != nil {
		t.Fatalf("soin: %v", err)
	}
	return patient, dentist, room, treatment
}

func newTestSchedulingService(db *gorm.DB) *SchedulingService {
	svc := NewSchedulingService(db)
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func newTestBillingService(db *gorm.DB) *BillingService {
	svc := NewBillingService(db)
	svc.Now = func() time.Time { return fixedNow }
	return svc
}
