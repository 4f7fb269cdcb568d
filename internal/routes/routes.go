package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/nivasa/backend/internal/config"
	"github.com/nivasa/backend/internal/handlers"
	"github.com/nivasa/backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	membershipHandler *handlers.MembershipHandler,
	complaintHandler *handlers.ComplaintHandler,
	maintenanceHandler *handlers.MaintenanceHandler,
	technicianHandler *handlers.TechnicianHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	auth := api.Group("/auth")

	// Public membership endpoints with a stricter limit: 10 req/min per IP
	public := auth.Group("", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	public.Post("/register-apartment", membershipHandler.RegisterApartment)
	public.Post("/signup-admin", membershipHandler.SignupAdmin)
	public.Post("/signup-resident", membershipHandler.SignupResident)
	public.Post("/login", membershipHandler.Login)
	public.Post("/validate", membershipHandler.Validate)
	public.Get("/check-flat-availability", membershipHandler.CheckFlatAvailability)

	// Session required
	protected := auth.Group("", middleware.JWTProtected(cfg))
	protected.Post("/new-complaint", complaintHandler.Create)
	protected.Get("/all-complaint", complaintHandler.List)
	protected.Get("/stats/:apartmentCode", complaintHandler.Stats)
	protected.Get("/neighbors/:apartmentCode", membershipHandler.Neighbors)
	protected.Get("/maintenance/amount", maintenanceHandler.GetAmount)
	protected.Get("/maintenance/bank-details", maintenanceHandler.GetBankDetails)
	protected.Post("/maintenance/payment", maintenanceHandler.SubmitPayment)
	protected.Get("/maintenance/my-payments", maintenanceHandler.MyPayments)
	protected.Get("/maintenance/payments", maintenanceHandler.AllPayments)

	// Session + admin role required
	admin := auth.Group("", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Put("/update-complaint/:id", complaintHandler.Update)
	admin.Post("/fix-complaints-user", complaintHandler.RepairOrphans)
	admin.Put("/update-resident/:userId", membershipHandler.UpdateResident)
	admin.Delete("/delete-resident/:userId", membershipHandler.DeleteResident)
	admin.Post("/maintenance/amount", maintenanceHandler.SetAmount)
	admin.Post("/maintenance/bank-details", maintenanceHandler.SetBankDetails)
	admin.Patch("/maintenance/payment/:id/status", maintenanceHandler.UpdatePaymentStatus)

	// Technician directory. Reads need a session; writes need the admin
	// role. Specific paths register before /technicians/:id.
	techRead := api.Group("", middleware.JWTProtected(cfg))
	techRead.Get("/all-technicians", technicianHandler.List)
	techRead.Get("/technicians/status/available", technicianHandler.Available)
	techRead.Get("/technicians/specialty/:specialty", technicianHandler.BySpecialty)
	techRead.Get("/technicians/:id", technicianHandler.GetByID)

	techAdmin := api.Group("", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	techAdmin.Post("/add-technicians", technicianHandler.Create)
	techAdmin.Put("/technicians/:id", technicianHandler.Update)
	techAdmin.Patch("/technicians/:id/status", technicianHandler.UpdateStatus)
	techAdmin.Delete("/technicians/:id", technicianHandler.Delete)
}
