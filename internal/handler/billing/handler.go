package billing

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/middleware"
	"github.com/jwalitptl/patient-portal/internal/service/billing"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/httputil"
)

type Handler struct {
	service *billing.Service
}

func NewHandler(service *billing.Service) *Handler {
	return &Handler{service: service}
}

// ListBills returns the caller's bills plus the derived totals. Paying a
// bill is a separate flow and not served here.
func (h *Handler) ListBills(c *gin.Context) {
	patientID, ok := middleware.PatientID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.System("system error occurred", nil))
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, summary)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/bills", h.ListBills)
}
