package api

import (
	"net/http" // HTTP status codes
	"time"     // Token lifetime, CORS max age

	"vet_clinic/internal/middleware" // Auth, logging, recovery
	"vet_clinic/internal/response"   // Envelope helpers
	"vet_clinic/internal/store"      // Persistence
	"vet_clinic/internal/utils"      // Token revocation

	"github.com/gin-contrib/cors" // Browser origins
	"github.com/gin-gonic/gin"    // Gin web framework
	"github.com/sirupsen/logrus"  // Structured logging
)

// Options are the collaborators the HTTP surface is built from
type Options struct {
	Store       *store.Store
	JWTSecret   string
	JWTTTL      time.Duration
	Revoker     utils.TokenRevoker // nil disables /logout
	CORSOrigins []string
}

// NewRouter builds the gin engine with every route under /api
func NewRouter(o Options) *gin.Engine {
	registerValidation()

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery())
	if len(o.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     o.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})

	s := o.Store
	r.GET("/", func(c *gin.Context) {
		if err := s.Ping(c.Request.Context()); err != nil {
			logrus.WithError(err).Error("Database ping failed")
			response.Internal(c)
			return
		}
		response.OK(c, http.StatusOK, "Veterinary clinic API is running", nil)
	})

	api := r.Group("/api")
	api.POST("/login", LoginHandler(s, o.JWTSecret, o.JWTTTL))

	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(o.JWTSecret, o.Revoker))
	adminOnly := middleware.AdminOnlyMiddleware(s)

	if o.Revoker != nil {
		authed.POST("/logout", LogoutHandler(o.Revoker))
	}

	// Pets
	authed.GET("/pets", ListPetsHandler(s))
	authed.POST("/pets", CreatePetHandler(s))
	authed.GET("/pets/:id", GetPetHandler(s))
	authed.PUT("/pets/:id", UpdatePetHandler(s))
	authed.DELETE("/pets/:id", DeletePetHandler(s))

	// Appointments
	authed.GET("/appointments", ListAppointmentsHandler(s))
	authed.POST("/appointments", CreateAppointmentHandler(s))
	authed.GET("/appointments/vet/me", MyAppointmentsHandler(s))
	authed.GET("/appointments/vet/:id", VetAppointmentsHandler(s))
	authed.GET("/appointments/:id", GetAppointmentHandler(s))
	authed.PUT("/appointments/:id", UpdateAppointmentHandler(s))
	authed.DELETE("/appointments/:id", DeleteAppointmentHandler(s))

	// Services
	authed.GET("/services", ListServicesHandler(s))
	authed.POST("/services", CreateServiceHandler(s))
	authed.GET("/services/:id", GetServiceHandler(s))
	authed.PUT("/services/:id", UpdateServiceHandler(s))
	authed.DELETE("/services/:id", DeleteServiceHandler(s))

	// Users
	authed.GET("/users", ListUsersHandler(s))
	authed.POST("/users", adminOnly, CreateUserHandler(s))
	authed.GET("/users/:id", GetUserHandler(s))
	authed.DELETE("/users/:id", adminOnly, DeleteUserHandler(s))
	authed.PUT("/users/:id/password", ChangePasswordHandler(s))

	// Clients
	authed.GET("/clients", ListClientsHandler(s))
	authed.POST("/clients", CreateClientHandler(s))
	authed.GET("/clients/:id", GetClientHandler(s))

	// Payments
	authed.GET("/payments", ListPaymentsHandler(s))
	authed.POST("/payments", RegisterPaymentHandler(s))

	// Clinical history
	authed.GET("/clinical-history", ListClinicalHistoryHandler(s))
	authed.POST("/clinical-history", CreateClinicalHistoryHandler(s))
	authed.GET("/clinical-history/:id", GetClinicalHistoryHandler(s))
	authed.PUT("/clinical-history/:id", UpdateClinicalHistoryHandler(s))

	// Reports
	authed.GET("/reports/payments", PaymentsReportHandler(s))
	authed.GET("/reports/appointments", AppointmentsReportHandler(s))
	authed.GET("/reports/clinical-history", ClinicalHistoryReportHandler(s))

	return r
}
