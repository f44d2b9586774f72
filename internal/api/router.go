package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/retainsure/retention-console/internal/api/handler"
	"github.com/retainsure/retention-console/internal/api/middleware"
	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
	"github.com/retainsure/retention-console/internal/core/service"
)

// Deps carries everything the router needs wired up. Redis and Mongo may be
// nil: the readiness probe reports them as disabled instead of failing.
type Deps struct {
	Sessions      ports.SessionService
	Backend       ports.RetentionBackend
	Logger        zerolog.Logger
	SessionCookie string
	SessionTTL    time.Duration
	Redis         *redis.Client
	Mongo         *mongo.Database
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("retention_console"))
	e.Use(middleware.Session(deps.SessionCookie, deps.SessionTTL, deps.Sessions))

	// --- Page services ---
	dashboards := service.NewDashboardService(deps.Backend, deps.Logger)
	risk := service.NewRiskService(deps.Backend, deps.Logger)
	engagement := service.NewEngagementService(deps.Backend, deps.Logger)
	campaigns := service.NewCampaignService(deps.Backend, deps.Logger)
	analytics := service.NewAnalyticsService(deps.Backend, deps.Logger)
	policies := service.NewPolicyService(deps.Backend, deps.Logger)
	portal := service.NewCustomerPortalService(deps.Backend, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions)
	dashboardHandler := handler.NewDashboardHandler(dashboards)
	riskHandler := handler.NewRiskHandler(risk)
	engagementHandler := handler.NewEngagementHandler(engagement)
	campaignHandler := handler.NewCampaignHandler(campaigns)
	analyticsHandler := handler.NewAnalyticsHandler(analytics)
	policyHandler := handler.NewPolicyHandler(policies)
	customerHandler := handler.NewCustomerHandler(portal)

	// --- Entry and auth routes ---
	e.GET("/", authHandler.Entry, middleware.LoggedOutGuard())
	e.POST("/auth/login", authHandler.Login, middleware.LoggedOutGuard())
	e.POST("/auth/register", authHandler.Register, middleware.LoggedOutGuard())
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)
	e.GET("/auth/session/events", authHandler.SessionEvents)
	e.PUT("/users/profile", authHandler.UpdateProfile,
		middleware.RoleGuard(deps.Sessions, domain.RoleAdmin, domain.RoleCustomer))

	// --- Admin portal ---
	admin := e.Group("/admin", middleware.RoleGuard(deps.Sessions, domain.RoleAdmin))
	admin.GET("/dashboard", dashboardHandler.Overview)
	admin.GET("/risk", riskHandler.List)
	admin.GET("/engage", engagementHandler.List)
	admin.GET("/engage/customer/:id", engagementHandler.ByCustomer)
	admin.POST("/engage/bulk", engagementHandler.BulkCreate)
	admin.GET("/campaigns", campaignHandler.List)
	admin.GET("/analytics", analyticsHandler.Overview)
	admin.GET("/analytics/report/:type", analyticsHandler.DownloadReport)
	admin.GET("/policies/:type", policyHandler.List)
	admin.GET("/settings", authHandler.Settings)

	// --- Customer portal ---
	customer := e.Group("/customer", middleware.RoleGuard(deps.Sessions, domain.RoleCustomer))
	customer.GET("/dashboard", customerHandler.Dashboard)
	customer.GET("/settings", authHandler.Settings)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Redis, deps.Mongo)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
