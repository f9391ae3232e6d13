package services

import (
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/models"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/utils"
)

// SchedulingService decides whether a proposed rendez-vous window is
// bookable and owns the appointment lifecycle. The conflict check and
// the subsequent write always share one serializable transaction, so
// two concurrent bookings for overlapping windows of the same dentist
// cannot both commit.
type SchedulingService struct {
	DB *gorm.DB
	// Now is the time source for past-date checks. Tests replace it
	// with a fixed instant.
	Now func() time.Time
}

// NewSchedulingService creates a SchedulingService on the given database.
func NewSchedulingService(db *gorm.DB) *SchedulingService {
	return &SchedulingService{DB: db, Now: time.Now}
}

var serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

// BookingInput carries the fields of a booking request.
type BookingInput struct {
	Date      string
	Time      string
	Duration  int
	PatientID string
	RoomID    string
	DentistID string
	Motif     string
	Notes     string
}

// ComputeWindow combines a calendar date and a clock time into the
// [start, end) window of an appointment lasting durationMinutes.
// The window may not start before the current instant.
func (s *SchedulingService) ComputeWindow(date, clock string, durationMinutes int) (start, end time.Time, err error) {
	d, err := utils.ParseCalendarDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := utils.ParseClockTime(clock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if durationMinutes <= 0 {
		return time.Time{}, time.Time{}, validationf("duree must be a number greater than 0")
	}
	start = utils.CombineDateAndTime(d, t)
	if start.Before(s.Now()) {
		return time.Time{}, time.Time{}, ErrPastDate
	}
	end = start.Add(time.Duration(durationMinutes) * time.Minute)
	return start, end, nil
}

// checkConflict fails with a ConflictError when any confirmed
// appointment of the dentist intersects [start, end). The half-open
// interval test already rejects exact boundary duplicates; the equality
// arms are kept as an explicit guard against off-by-one interval
// semantics in the query layer.
func (s *SchedulingService) checkConflict(tx *gorm.DB, dentistID string, start, end time.Time, excludeID string) error {
	q := tx.Model(&models.Appointment{}).
		Where("dentist_id = ? AND status = ?", dentistID, models.StatusConfirmed).
		Where("(start_date < ? AND end_date > ?) OR start_date = ? OR end_date = ?", end, start, start, end)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var ids []string
	if err := q.Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) > 0 {
		return &ConflictError{DentistID: dentistID, Start: start, End: end, AppointmentIDs: ids}
	}
	return nil
}

// Book validates a booking request, runs the conflict check and creates
// the appointment as confirmed.
func (s *SchedulingService) Book(in BookingInput) (*models.Appointment, error) {
	if in.Date == "" || in.Time == "" || in.Duration == 0 || in.PatientID == "" ||
		in.RoomID == "" || in.DentistID == "" || in.Motif == "" || in.Notes == "" {
		return nil, validationf("all fields are required")
	}
	start, end, err := s.ComputeWindow(in.Date, in.Time, in.Duration)
	if err != nil {
		return nil, err
	}

	appointment := models.Appointment{
		StartDate: start,
		EndDate:   end,
		PatientID: in.PatientID,
		RoomID:    in.RoomID,
		DentistID: in.DentistID,
		Motif:     in.Motif,
		Notes:     in.Notes,
		Status:    models.StatusConfirmed,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := firstOrNotFound(tx, &models.Patient{}, in.PatientID, "Patient"); err != nil {
			return err
		}
		if err := firstOrNotFound(tx, &models.ConsultationRoom{}, in.RoomID, "Salle de consultation"); err != nil {
			return err
		}
		if err := firstOrNotFound(tx, &models.User{}, in.DentistID, "Dentist"); err != nil {
			return err
		}
		if err := s.checkConflict(tx, in.DentistID, start, end, ""); err != nil {
			return err
		}
		return tx.Create(&appointment).Error
	}, serializable)
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// RescheduleInput carries the partial fields of an update request.
// Date and time must be supplied together; absent window fields inherit
// the existing appointment's values, the duration being re-applied to
// the new start when only part of the window changes.
type RescheduleInput struct {
	Date      string
	Time      string
	Duration  int
	PatientID string
	RoomID    string
	DentistID string
	Motif     string
	Notes     string
}

// Reschedule recomputes the appointment window from the supplied
// fields, re-runs the conflict check against all other appointments of
// the dentist and persists the update. A new start may not lie in the
// past. On conflict the record is left unmodified.
func (s *SchedulingService) Reschedule(id string, in RescheduleInput) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "Appointment"}
			}
			return err
		}

		newStart := appointment.StartDate
		if in.Date != "" || in.Time != "" {
			if in.Date == "" || in.Time == "" {
				return validationf("date and time must be supplied together")
			}
			d, err := utils.ParseCalendarDate(in.Date)
			if err != nil {
				return err
			}
			t, err := utils.ParseClockTime(in.Time)
			if err != nil {
				return err
			}
			newStart = utils.CombineDateAndTime(d, t)
			if newStart.Before(s.Now()) {
				return ErrPastDate
			}
		}

		duration := in.Duration
		if duration == 0 {
			duration = int(appointment.EndDate.Sub(appointment.StartDate) / time.Minute)
		}
		if duration <= 0 {
			return validationf("duree must be a number greater than 0")
		}
		newEnd := newStart.Add(time.Duration(duration) * time.Minute)

		dentistID := appointment.DentistID
		if in.DentistID != "" {
			dentistID = in.DentistID
		}

		if err := s.checkConflict(tx, dentistID, newStart, newEnd, appointment.ID); err != nil {
			return err
		}

		appointment.StartDate = newStart
		appointment.EndDate = newEnd
		appointment.DentistID = dentistID
		if in.PatientID != "" {
			appointment.PatientID = in.PatientID
		}
		if in.RoomID != "" {
			appointment.RoomID = in.RoomID
		}
		if in.Motif != "" {
			appointment.Motif = in.Motif
		}
		if in.Notes != "" {
			appointment.Notes = in.Notes
		}
		return tx.Save(&appointment).Error
	}, serializable)
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Cancel soft-deletes an appointment: the row is kept, the window is
// freed for future conflict checks. Canceling an already canceled
// appointment is a no-op.
func (s *SchedulingService) Cancel(id string) error {
	var appointment models.Appointment
	if err := s.DB.First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "Appointment"}
		}
		return err
	}
	if appointment.Status == models.StatusCanceled {
		return nil
	}
	return s.DB.Model(&appointment).Update("status", models.StatusCanceled).Error
}

// GetByID loads one appointment with its patient, dentist and room.
func (s *SchedulingService) GetByID(id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.DB.Preload("Patient").Preload("Dentist").Preload("Room").
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Appointment"}
		}
		return nil, err
	}
	return &appointment, nil
}

// ListByPatient returns the confirmed appointments of a patient, most
// recent first.
func (s *SchedulingService) ListByPatient(patientID string, page, size int) ([]models.Appointment, error) {
	return s.list(s.DB.Where("patient_id = ? AND status = ?", patientID, models.StatusConfirmed), page, size)
}

// ListByDentist returns the confirmed appointments of a dentist, most
// recent first.
func (s *SchedulingService) ListByDentist(dentistID string, page, size int) ([]models.Appointment, error) {
	return s.list(s.DB.Where("dentist_id = ? AND status = ?", dentistID, models.StatusConfirmed), page, size)
}

// ListAll returns all appointments regardless of status.
func (s *SchedulingService) ListAll(page, size int) ([]models.Appointment, error) {
	return s.list(s.DB, page, size)
}

// ListActive returns all confirmed appointments.
func (s *SchedulingService) ListActive(page, size int) ([]models.Appointment, error) {
	return s.list(s.DB.Where("status = ?", models.StatusConfirmed), page, size)
}

func (s *SchedulingService) list(q *gorm.DB, page, size int) ([]models.Appointment, error) {
	if size <= 0 {
		size = 10
	}
	if page <= 0 {
		page = 1
	}
	var appointments []models.Appointment
	err := q.Preload("Patient").Preload("Dentist").Preload("Room").
		Order("start_date desc").
		Offset((page - 1) * size).Limit(size).
		Find(&appointments).Error
	return appointments, err
}

// firstOrNotFound loads dest by primary key, translating a missing row
// into a NotFoundError for the named resource.
func firstOrNotFound(tx *gorm.DB, dest interface{}, id, resource string) error {
	if err := tx.First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: resource}
		}
		return err
	}
	return nil
}
