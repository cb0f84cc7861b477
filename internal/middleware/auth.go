package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-portal/internal/service/patient"
	"github.com/jwalitptl/patient-portal/pkg/auth"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/httputil"
)

const (
	// ContextUserID is the authenticated login account id.
	ContextUserID = "user_id"
	// ContextPatientID is the resolved patient row id. Handlers read this,
	// never the session; the core takes the patient id as an argument.
	ContextPatientID = "patient_id"

	rolePatient = "Patient"
)

type AuthMiddleware struct {
	jwtSvc     auth.JWTService
	patientSvc *patient.Service
}

func NewAuthMiddleware(jwtSvc auth.JWTService, patientSvc *patient.Service) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSvc:     jwtSvc,
		patientSvc: patientSvc,
	}
}

// Authenticate verifies the bearer token and sets the account id in context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		claims, err := m.jwtSvc.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		if claims.Role != rolePatient {
			abortUnauthorized(c, "patient access required")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// ResolvePatient maps the authenticated account to its patient record and
// sets the patient id in context. Any failure blocks the request with a
// generic system-error message; the cause is logged, never returned.
func (m *AuthMiddleware) ResolvePatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			abortUnauthorized(c, "missing authentication")
			return
		}

		p, err := m.patientSvc.Resolve(c.Request.Context(), userID)
		if err != nil {
			log.Error().
				Err(err).
				Str("user_id", userID.String()).
				Msg("patient lookup failed")
			httputil.RespondWithError(c, apperrors.System("system error occurred, please try again later", err))
			c.Abort()
			return
		}

		c.Set(ContextPatientID, p.ID)
		c.Next()
	}
}

// UserID returns the authenticated account id from context.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// PatientID returns the resolved patient id from context.
func PatientID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextPatientID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
		Success: false,
		Error: &httputil.Error{
			Code:    http.StatusUnauthorized,
			Message: message,
		},
	})
}
