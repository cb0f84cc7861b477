package appointment

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/middleware"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/service/appointment"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

// CreateAppointment books for the authenticated patient. The appointment
// date is not checked against the clock here: the form enforces a minimum
// client-side and the server mirrors the original portal in trusting it.
func (h *Handler) CreateAppointment(c *gin.Context) {
	patientID, ok := middleware.PatientID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.System("system error occurred", nil))
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			httputil.RespondWithError(c, apperrors.Validation("please fill in all required fields"))
			return
		}
		httputil.RespondWithError(c, apperrors.Validation("invalid request payload"))
		return
	}

	apt, err := h.service.Create(c.Request.Context(), patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	patientID, ok := middleware.PatientID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.System("system error occurred", nil))
		return
	}

	appointments, err := h.service.ListForPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	patientID, ok := middleware.PatientID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.System("system error occurred", nil))
		return
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID"))
		return
	}

	if err := h.service.Cancel(c.Request.Context(), patientID, appointmentID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"message": "appointment cancelled successfully"})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.POST("/:id/cancel", h.CancelAppointment)
	}
}
