package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/models"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/services"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/utils"
)

// AppointmentHandler is the HTTP surface of the scheduling service.
type AppointmentHandler struct {
	Svc *services.SchedulingService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc *services.SchedulingService) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc}
}

// AppointmentView is an appointment joined with patient, dentist and
// room display fields.
type AppointmentView struct {
	ID          string                   `json:"id"`
	StartDate   time.Time                `json:"startDate"`
	EndDate     time.Time                `json:"endDate"`
	PatientID   string                   `json:"patientId"`
	PatientName string                   `json:"patientName"`
	RoomID      string                   `json:"salleConsultationId"`
	RoomNumber  int                      `json:"salleConsultationNumero"`
	DentistID   string                   `json:"dentistId"`
	DentistName string                   `json:"dentistName"`
	Motif       string                   `json:"motif"`
	Notes       string                   `json:"notes"`
	Status      models.AppointmentStatus `json:"status"`
}

func appointmentView(a *models.Appointment) AppointmentView {
	return AppointmentView{
		ID:          a.ID,
		StartDate:   a.StartDate,
		EndDate:     a.EndDate,
		PatientID:   a.PatientID,
		PatientName: a.Patient.LastName + " " + a.Patient.FirstName,
		RoomID:      a.RoomID,
		RoomNumber:  a.Room.Number,
		DentistID:   a.DentistID,
		DentistName: a.Dentist.LastName + " " + a.Dentist.FirstName,
		Motif:       a.Motif,
		Notes:       a.Notes,
		Status:      a.Status,
	}
}

func appointmentViews(appointments []models.Appointment) []AppointmentView {
	views := make([]AppointmentView, 0, len(appointments))
	for i := range appointments {
		views = append(views, appointmentView(&appointments[i]))
	}
	return views
}

// CreateAppointmentRequest represents the request body for booking a rendez-vous.
type CreateAppointmentRequest struct {
	Date      string `json:"date" binding:"required,calendardate"`
	Time      string `json:"time" binding:"required,clocktime"`
	Duration  int    `json:"duree" binding:"required,min=1"`
	PatientID string `json:"patientId" binding:"required"`
	RoomID    string `json:"salleConsultationId" binding:"required"`
	DentistID string `json:"utilisateurId" binding:"required"`
	Motif     string `json:"motif" binding:"required"`
	Notes     string `json:"notes" binding:"required"`
}

// CreateAppointment books a rendez-vous after the conflict check passes.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Svc.Book(services.BookingInput{
		Date:      req.Date,
		Time:      req.Time,
		Duration:  req.Duration,
		PatientID: req.PatientID,
		RoomID:    req.RoomID,
		DentistID: req.DentistID,
		Motif:     req.Motif,
		Notes:     req.Notes,
	})
	if err != nil {
		respondServiceError(c, "create appointment", err)
		return
	}
	utils.Success(c, "Appointment created successfully", appointment)
}

// UpdateAppointmentRequest represents the partial request body for rescheduling.
type UpdateAppointmentRequest struct {
	Date      string `json:"date" binding:"omitempty,calendardate"`
	Time      string `json:"time" binding:"omitempty,clocktime"`
	Duration  int    `json:"duree" binding:"omitempty,min=1"`
	PatientID string `json:"patientId"`
	RoomID    string `json:"salleConsultationId"`
	DentistID string `json:"utilisateurId"`
	Motif     string `json:"motif"`
	Notes     string `json:"notes"`
}

// UpdateAppointment reschedules a rendez-vous. The conflict check is
// re-run against all other appointments of the dentist.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req UpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Svc.Reschedule(c.Param("id"), services.RescheduleInput{
		Date:      req.Date,
		Time:      req.Time,
		Duration:  req.Duration,
		PatientID: req.PatientID,
		RoomID:    req.RoomID,
		DentistID: req.DentistID,
		Motif:     req.Motif,
		Notes:     req.Notes,
	})
	if err != nil {
		respondServiceError(c, "update appointment", err)
		return
	}
	utils.Success(c, "Appointment updated successfully", appointment)
}

// CancelAppointment soft-deletes a rendez-vous: the status becomes
// canceled and the time window is freed.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	if err := h.Svc.Cancel(c.Param("id")); err != nil {
		respondServiceError(c, "cancel appointment", err)
		return
	}
	utils.Success(c, "Appointment cancelled", nil)
}

// GetAppointmentByID returns one rendez-vous with display fields.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, err := h.Svc.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, "get appointment", err)
		return
	}
	utils.Success(c, "Appointment fetched successfully", appointmentView(appointment))
}

// GetAppointmentsByPatient lists a patient's confirmed rendez-vous.
func (h *AppointmentHandler) GetAppointmentsByPatient(c *gin.Context) {
	page, size := pagination(c)
	appointments, err := h.Svc.ListByPatient(c.Param("patientId"), page, size)
	if err != nil {
		respondServiceError(c, "list appointments by patient", err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointmentViews(appointments))
}

// GetAppointmentsByDentist lists a dentist's confirmed rendez-vous.
func (h *AppointmentHandler) GetAppointmentsByDentist(c *gin.Context) {
	page, size := pagination(c)
	appointments, err := h.Svc.ListByDentist(c.Param("userId"), page, size)
	if err != nil {
		respondServiceError(c, "list appointments by dentist", err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointmentViews(appointments))
}

// GetAllAppointments lists all rendez-vous regardless of status.
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	page, size := pagination(c)
	appointments, err := h.Svc.ListAll(page, size)
	if err != nil {
		respondServiceError(c, "list appointments", err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointmentViews(appointments))
}

// GetActiveAppointments lists all confirmed rendez-vous.
func (h *AppointmentHandler) GetActiveAppointments(c *gin.Context) {
	page, size := pagination(c)
	appointments, err := h.Svc.ListActive(page, size)
	if err != nil {
		respondServiceError(c, "list active appointments", err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointmentViews(appointments))
}
