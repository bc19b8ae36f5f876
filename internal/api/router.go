package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/learningcamp/enrollment-api/internal/api/handler"
	"github.com/learningcamp/enrollment-api/internal/api/middleware"
	"github.com/learningcamp/enrollment-api/internal/core/domain"
	"github.com/learningcamp/enrollment-api/internal/core/ports"
	"github.com/learningcamp/enrollment-api/internal/core/service"
	mongodb "github.com/learningcamp/enrollment-api/internal/infrastructure/db/mongo"
	redisdb "github.com/learningcamp/enrollment-api/internal/infrastructure/db/redis"
	"github.com/learningcamp/enrollment-api/internal/pkg/config"
)

// NewRouter builds the Echo instance with every route registered. Gates
// compose per route in a fixed order: Auth, then the live role check, with
// ownership enforced inside the handlers before any data lookup.
func NewRouter(db *mongo.Database, rdb *redis.Client, gateway ports.PaymentGateway, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("enrollment"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	classRepo := mongodb.NewClassRepository(db)
	selectionRepo := mongodb.NewSelectionRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)
	guard := redisdb.NewConsumptionGuard(rdb)

	tokenService := service.NewTokenService(cfg.TokenSecret, 0)
	userService := service.NewUserService(userRepo, log)
	classService := service.NewClassService(classRepo, log)
	enrollmentService := service.NewEnrollmentService(selectionRepo, paymentRepo, gateway, guard, log)

	tokenHandler := handler.NewTokenHandler(tokenService)
	userHandler := handler.NewUserHandler(userService)
	classHandler := handler.NewClassHandler(classService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)

	authed := middleware.Auth(cfg.TokenSecret)
	adminOnly := middleware.RequireRole(userRepo, domain.RoleAdmin)
	instructorOnly := middleware.RequireRole(userRepo, domain.RoleInstructor)

	// --- Auth ---
	e.POST("/jwt", tokenHandler.Issue)

	// --- Users ---
	e.POST("/users", userHandler.Create)
	e.GET("/users", userHandler.List, authed, adminOnly)
	e.GET("/instructors", userHandler.ListInstructors, authed)
	e.GET("/users/admin/:email", userHandler.AdminFlag, authed)
	e.GET("/users/instructor/:email", userHandler.InstructorFlag, authed)
	e.PATCH("/users/admin/:id", userHandler.MakeAdmin, authed, adminOnly)
	e.PATCH("/users/instructor/:id", userHandler.MakeInstructor, authed, adminOnly)

	// --- Classes ---
	e.GET("/classes", classHandler.List)
	e.GET("/myClasses", classHandler.MyClasses, authed, instructorOnly)
	e.POST("/classes", classHandler.Create, authed, instructorOnly)
	e.PUT("/classes/:id", classHandler.Update, authed, instructorOnly)
	e.PATCH("/classes/approve/:id", classHandler.Approve, authed, adminOnly)
	e.PATCH("/classes/deny/:id", classHandler.Deny, authed, adminOnly)
	e.PATCH("/classes/feedback/:id", classHandler.Feedback, authed, adminOnly)

	// --- Selections & payments ---
	e.GET("/selectedClasses", enrollmentHandler.Selections, authed)
	e.POST("/selectedClasses", enrollmentHandler.AddSelection)
	e.DELETE("/selectedClasses/:id", enrollmentHandler.RemoveSelection, authed)
	e.POST("/create-payment-intent", enrollmentHandler.CreatePaymentIntent, authed)
	e.POST("/payments", enrollmentHandler.RecordPayment, authed)
	e.GET("/myEnrolledClasses", enrollmentHandler.EnrolledClasses, authed)
	e.GET("/myPaymentHistories", enrollmentHandler.PaymentHistories, authed)

	// --- Probes & metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
