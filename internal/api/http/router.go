package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-rental-service/internal/api/http/handlers"
	"github.com/spec-kit/car-rental-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Cars           *handlers.CarsHandler
	Owner          *handlers.OwnerHandler
	Bookings       *handlers.BookingsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	user := api.Group("/user")
	user.Post("/register", cfg.Accounts.Register) // legacy, pre-OTP clients
	user.Post("/login", cfg.Accounts.Login)
	user.Post("/send-otp", cfg.Accounts.SendOTP)
	user.Post("/verify-otp", cfg.Accounts.VerifyOTP)
	user.Post("/resend-otp", cfg.Accounts.ResendOTP)
	user.Post("/forgot-password", cfg.Accounts.ForgotPassword)
	user.Post("/reset-password", cfg.Accounts.ResetPassword)
	user.Get("/data", cfg.AuthMiddleware.Handle, cfg.Accounts.Data)
	user.Get("/cars", cfg.Cars.ListAvailable)

	owner := api.Group("/owner", cfg.AuthMiddleware.Handle)
	owner.Post("/change-role", cfg.Owner.ChangeRole)
	owner.Post("/add-car", cfg.Owner.AddCar)
	owner.Get("/cars", cfg.Owner.ListCars)
	owner.Post("/toggle-car", cfg.Owner.ToggleCar)
	owner.Post("/delete-car", cfg.Owner.DeleteCar)
	owner.Post("/update-image", cfg.Owner.UpdateImage)
	owner.Get("/dashboard", auth.RequireOwner(), cfg.Owner.Dashboard)

	bookings := api.Group("/bookings", cfg.AuthMiddleware.Handle)
	bookings.Post("/create", cfg.Bookings.Create)
	bookings.Get("/user", cfg.Bookings.ListUser)
	bookings.Get("/owner", cfg.Bookings.ListOwner)
	bookings.Post("/change-status", cfg.Bookings.ChangeStatus)
}
