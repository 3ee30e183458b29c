// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "alumnihub/docs" // swagger docs
	"alumnihub/internal/cache"
	"alumnihub/internal/config"
	"alumnihub/internal/database"
	"alumnihub/internal/export"
	"alumnihub/internal/featureflags"
	"alumnihub/internal/middleware"
	"alumnihub/internal/models"
	"alumnihub/internal/notifications"
	"alumnihub/internal/repository"
	"alumnihub/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	notifier       *notifications.Notifier
	hub            *notifications.Hub
	featureFlags   *featureflags.Manager
	exportLimiter  *export.Limiter

	authService      *service.AuthService
	userService      *service.UserService
	jobService       *service.JobService
	eventService     *service.EventService
	activityService  *service.ActivityService
	communityService *service.CommunityService
	dashboardService *service.DashboardService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and optionally
// performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, fmt.Errorf("config and database are required")
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("alumnihub-api"),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags, featureflags.Defaults),
		exportLimiter:  export.NewLimiter(cfg.ExportRatePerMinute),
	}
	server.wireServices()

	// Live notifications need Redis for cross-instance fan-out; the hub still
	// delivers locally when it is absent.
	server.hub = notifications.NewHub()
	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
	}

	return server, nil
}

func (s *Server) wireServices() {
	userRepo := repository.NewUserRepository(s.db)
	jobRepo := repository.NewJobRepository(s.db)
	eventRepo := repository.NewEventRepository(s.db)
	activityRepo := repository.NewActivityRepository(s.db)
	commentRepo := repository.NewCommentRepository(s.db)
	communityRepo := repository.NewCommunityRepository(s.db)

	ttl := time.Duration(s.config.JWTTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	strict := func() bool { return s.featureFlags.EnabledGlobally(featureflags.StrictPasswords) }
	// Without Redis, logout cannot revoke and tokens live until they expire.
	var revoke func(context.Context, string, time.Duration) error
	if s.redis != nil {
		revoke = cache.Blacklist
	}

	s.authService = service.NewAuthService(userRepo, s.config.JWTSecret, ttl, strict, revoke)
	s.userService = service.NewUserService(userRepo, s.isAdminByUserID)
	s.jobService = service.NewJobService(jobRepo, userRepo, s.isAdminByUserID)
	s.eventService = service.NewEventService(eventRepo, s.isAdminByUserID)
	s.activityService = service.NewActivityService(activityRepo, commentRepo, userRepo, communityRepo)
	s.communityService = service.NewCommunityService(communityRepo, userRepo)
	s.dashboardService = service.NewDashboardService(userRepo, eventRepo, jobRepo)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://127.0.0.1:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		ExposeHeaders:    "Content-Disposition",
		AllowCredentials: origins != "*",
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(
				models.NewErrorResponse("Too many requests, please try again later."))
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	api.Get("/db", s.DatabaseCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "AlumniHub Backend Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/user", s.AuthRequired(), s.GetCurrentUser)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	// Public routes
	api.Get("/events", s.GetEvents)

	protected := api.Group("", s.AuthRequired())

	// User directory. /search must be registered before /:id.
	users := protected.Group("/user")
	users.Get("/", s.GetUsers)
	users.Get("/search", middleware.RateLimit(
		s.redis, 30, time.Minute, "search"), s.SearchUsers)
	users.Get("/:id", s.GetUser)
	users.Patch("/:id", s.UpdateUser)
	users.Delete("/:id", s.DeleteUser)

	// Job board
	protected.Get("/jobs", s.GetJobs)
	protected.Post("/post-job", s.PostJob)
	protected.Post("/apply", middleware.RateLimit(
		s.redis, 20, time.Minute, "apply"), s.ApplyForJob)
	protected.Get("/applied/:id", s.GetAppliedJobs)
	protected.Get("/download-applications", s.DownloadApplications)

	// Events (admin checks happen in the service)
	protected.Post("/events", s.CreateEvent)
	protected.Patch("/events/:id", s.UpdateEvent)
	protected.Delete("/events/:id", s.DeleteEvent)

	// Activity feed
	activity := protected.Group("/activity")
	activity.Get("/", s.GetActivity)
	activity.Post("/", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_post"), s.CreateActivityPost)
	activity.Post("/:postId/comment", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.AddComment)
	activity.Get("/:postId/comments", s.GetComments)
	activity.Post("/:postId/like", s.LikePost)
	activity.Delete("/:postId/like", s.UnlikePost)

	// Communities. Static paths before /:id.
	communities := protected.Group("/communities")
	communities.Get("/", s.GetCommunities)
	communities.Post("/", s.CreateCommunity)
	communities.Post("/join", s.JoinCommunity)
	communities.Delete("/leave", s.LeaveCommunity)
	communities.Get("/:id", s.GetCommunity)

	protected.Get("/dashboard", s.GetDashboard)

	// Websocket endpoint - protected by AuthRequired
	api.Get("/ws", s.AuthRequired(), s.WebsocketHandler())

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/feature-flags", s.GetFeatureFlags)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is considered required for full readiness in this app
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// DatabaseCheck handles GET /api/db
// @Summary Database probe
// @Tags ops
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 500 {object} models.ErrorResponse
// @Router /db [get]
func (s *Server) DatabaseCheck(c *fiber.Ctx) error {
	var one int
	if err := s.db.WithContext(c.UserContext()).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"message": "Database connected"})
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(uint)

		admin, err := s.isAdminByUserID(c.UserContext(), userID)
		if err != nil {
			return s.respondServiceError(c, err)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := middleware.BearerToken(c.Get("Authorization"))
		// Browsers cannot set headers on a websocket handshake.
		if tokenString == "" && websocket.IsWebSocketUpgrade(c) {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		claims, err := middleware.ParseToken(s.config.JWTSecret, tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		// Check JTI for revocation
		if claims.JTI != "" {
			revoked, err := cache.IsBlacklisted(c.UserContext(), claims.JTI)
			if err == nil && revoked {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token has been revoked"))
			}
		}

		// Store user ID in context
		c.Locals("userID", claims.UserID)
		c.Locals("claims", claims)
		// Sync to UserContext for logging and downstream services
		c.SetUserContext(middleware.WithUserID(c.UserContext(), claims.UserID))

		return c.Next()
	}
}

// newApp builds the Fiber app with middleware and routes attached.
func (s *Server) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "AlumniHub API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.NewErrorResponse(fe.Message))
			}
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.newApp()

	// Wire the hub to the Redis subscriber if available
	if s.notifier != nil {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				log.Printf("failed to start %s wiring: %v", s.hub.Name(), err)
			}
		}()
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Cancel the server-scoped context to stop all wiring goroutines
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	// Shutdown the HTTP/WS server
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Close WebSocket connections gracefully
	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			log.Printf("error shutting down %s: %v", s.hub.Name(), err)
		}
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
