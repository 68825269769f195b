package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/api/middleware"
)

// multipart framing allowance on top of the image limit
const bodyOverhead = 64 * 1024

type Dependencies struct {
	VerificationService handler.VerificationService
	ProviderName        string
	MaxImageBytes       int64
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	bodyLimit := handler.DefaultMaxImageSize + bodyOverhead
	if deps != nil && deps.MaxImageBytes > 0 {
		bodyLimit = int(deps.MaxImageBytes) + bodyOverhead
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "ICAO Photo Check",
		BodyLimit:    bodyLimit,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization,X-Client-Info,Apikey",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	providerName := ""
	if r.deps != nil {
		providerName = r.deps.ProviderName
	}

	// Health check endpoints
	healthHandler := handler.NewHealthHandler(providerName)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	v1 := r.app.Group("/v1")

	// Only configure verification routes if dependencies were provided
	if r.deps != nil && r.deps.VerificationService != nil {
		verifyHandler := handler.NewVerifyHandler(r.deps.VerificationService, r.logger, r.deps.MaxImageBytes)
		v1.Post("/verify-icao-photo", verifyHandler.Verify)
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	return r.app.Shutdown()
}
