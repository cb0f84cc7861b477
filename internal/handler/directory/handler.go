package directory

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/service/directory"
	"github.com/jwalitptl/patient-portal/pkg/httputil"
)

type Handler struct {
	service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListDepartments(c *gin.Context) {
	departments, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, departments)
}

// ListDoctors backs the booking form's doctor picker. The contract is a
// bare JSON array that fails open: missing or bad department_id and even
// storage faults all yield [], never an error payload, so the picker
// degrades to an empty choice list.
func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctorsByDepartment(c.Request.Context(), c.Query("department_id"))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusOK, []model.DoctorOption{})
		return
	}

	options := make([]model.DoctorOption, 0, len(doctors))
	for _, d := range doctors {
		options = append(options, model.DoctorOption{
			DoctorID:       d.ID,
			Name:           d.Name,
			Specialization: d.Specialization,
		})
	}
	c.JSON(http.StatusOK, options)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	dir := r.Group("/directory")
	{
		dir.GET("/departments", h.ListDepartments)
		dir.GET("/doctors", h.ListDoctors)
	}
}
