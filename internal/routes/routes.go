package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/config"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/handlers"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/middleware"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/models"
	"github.com/hadarisas/cabinet-dentaire-backend/internal/services"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize services and handlers
	schedulingSvc := services.NewSchedulingService(db)
	billingSvc := services.NewBillingService(db)

	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	roomHandler := handlers.NewRoomHandler(db)
	machineHandler := handlers.NewMachineHandler(db)
	treatmentHandler := handlers.NewTreatmentHandler(db)
	productHandler := handlers.NewProductHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(schedulingSvc)
	invoiceHandler := handlers.NewInvoiceHandler(billingSvc)
	invoiceLineHandler := handlers.NewInvoiceLineHandler(billingSvc)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// Staff account management (admin only)
		userRoutes := private.Group("/users")
		userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			userRoutes.POST("", userHandler.CreateUser)
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/:id", userHandler.GetUserByID)
			userRoutes.PUT("/:id", userHandler.UpdateUser)
			userRoutes.DELETE("/:id", userHandler.DeleteUser)
		}

		// Patient management
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.POST("", patientHandler.CreatePatient)
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.PUT("/:id", patientHandler.UpdatePatient)
			patientRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), patientHandler.DeletePatient)
		}

		// Consultation rooms
		roomRoutes := private.Group("/salles")
		{
			roomRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), roomHandler.CreateRoom)
			roomRoutes.GET("", roomHandler.GetRooms)
			roomRoutes.GET("/:id", roomHandler.GetRoomByID)
			roomRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), roomHandler.UpdateRoom)
			roomRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), roomHandler.DeleteRoom)
		}

		// Equipment inventory
		machineRoutes := private.Group("/machines")
		{
			machineRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), machineHandler.CreateMachine)
			machineRoutes.POST("/assign-to-salle", middleware.RoleAuthMiddleware(models.RoleAdmin), machineHandler.AssignMachineToRoom)
			machineRoutes.GET("", machineHandler.GetMachines)
			machineRoutes.GET("/:id", machineHandler.GetMachineByID)
			machineRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), machineHandler.UpdateMachine)
			machineRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), machineHandler.DeleteMachine)
		}

		// Soin catalog
		treatmentRoutes := private.Group("/soins")
		{
			treatmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDentist), treatmentHandler.CreateTreatment)
			treatmentRoutes.GET("", treatmentHandler.GetTreatments)
			treatmentRoutes.GET("/:id", treatmentHandler.GetTreatmentByID)
			treatmentRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDentist), treatmentHandler.UpdateTreatment)
			treatmentRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), treatmentHandler.DeleteTreatment)
		}

		// Consumable inventory
		productRoutes := private.Group("/produits")
		{
			productRoutes.POST("", productHandler.CreateProduct)
			productRoutes.GET("", productHandler.GetProducts)
			productRoutes.GET("/low-stock", productHandler.GetLowStockProducts)
			productRoutes.GET("/:id", productHandler.GetProductByID)
			productRoutes.PUT("/:id", productHandler.UpdateProduct)
			productRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), productHandler.DeleteProduct)
		}

		// Rendez-vous
		appointmentRoutes := private.Group("/rendez-vous")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAllAppointments)
			appointmentRoutes.GET("/active", appointmentHandler.GetActiveAppointments)
			appointmentRoutes.GET("/patient/:patientId", appointmentHandler.GetAppointmentsByPatient)
			appointmentRoutes.GET("/user/:userId", appointmentHandler.GetAppointmentsByDentist)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.CancelAppointment)
		}

		// Factures
		invoiceRoutes := private.Group("/factures")
		{
			invoiceRoutes.POST("", invoiceHandler.CreateInvoice)
			invoiceRoutes.GET("/en-retard", invoiceHandler.GetOverdueInvoices)
			invoiceRoutes.GET("/patient/:patientId", invoiceHandler.GetInvoicesByPatient)
			invoiceRoutes.GET("/:id", invoiceHandler.GetInvoiceByID)
			invoiceRoutes.PUT("/:id", invoiceHandler.UpdateInvoice)
			invoiceRoutes.PATCH("/:id/payer", invoiceHandler.MarkInvoicePaid)
			invoiceRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), invoiceHandler.DeleteInvoice)
		}

		// Facture-soins
		invoiceLineRoutes := private.Group("/facture-soins")
		{
			invoiceLineRoutes.POST("", invoiceLineHandler.CreateInvoiceLine)
			invoiceLineRoutes.GET("/summary", invoiceLineHandler.GetRevenueSummary)
			invoiceLineRoutes.GET("/facture/:factureId", invoiceLineHandler.GetInvoiceLines)
			invoiceLineRoutes.PUT("/:id", invoiceLineHandler.UpdateInvoiceLine)
			invoiceLineRoutes.DELETE("/:id", invoiceLineHandler.DeleteInvoiceLine)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
