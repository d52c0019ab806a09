// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/amirphl/Yata-no-Kagami/app/dto"
	"github.com/amirphl/Yata-no-Kagami/app/handlers"
	"github.com/amirphl/Yata-no-Kagami/app/middleware"
	"github.com/amirphl/Yata-no-Kagami/config"
	_ "github.com/amirphl/Yata-no-Kagami/docs"
	"github.com/amirphl/Yata-no-Kagami/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	Shutdown(timeout time.Duration) error
	GetApp() *fiber.App
}

// Handlers groups every HTTP handler mounted by the router
type Handlers struct {
	QR        handlers.QRHandlerInterface
	Redirect  handlers.RedirectHandlerInterface
	Analytics handlers.AnalyticsHandlerInterface
	Health    handlers.HealthHandlerInterface
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app      *fiber.App
	cfg      *config.ProductionConfig
	handlers Handlers
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(cfg *config.ProductionConfig, h Handlers) Router {
	app := fiber.New(fiber.Config{
		AppName:      "Yata no Kagami",
		ServerHeader: "Yata-no-Kagami",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,

		// c.IP() only honours ProxyHeader for requests from these peers
		TrustProxy: len(cfg.Server.TrustedProxies) > 0,
		TrustProxyConfig: fiber.TrustProxyConfig{
			Proxies: cfg.Server.TrustedProxies,
		},
		ProxyHeader:        cfg.Server.ProxyHeader,
		EnableIPValidation: true,
	})

	return &FiberRouter{
		app:      app,
		cfg:      cfg,
		handlers: h,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	slog.Info("Setting up routes...")

	r.setupMiddleware()

	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Public short link, kept outside /api so printed codes stay short
	r.app.Get("/r/:shortCode", r.handlers.Redirect.Visit)

	api := r.app.Group("/api")
	api.Get("/health", r.handlers.Health.Health)

	if !r.cfg.Deployment.IsProduction() {
		api.Get("/swagger.json", r.serveSwaggerJSON)
		slog.Info("API documentation enabled", "path", "/api/swagger.json")
	}

	qr := api.Group("/qr")
	qr.Post("/generate", r.handlers.QR.Generate)

	analytics := api.Group("/analytics")
	analytics.Get("/:qrId", r.handlers.Analytics.Summary)
	analytics.Get("/:qrId/export", r.handlers.Analytics.Export)

	r.app.Use(r.notFoundHandler)

	slog.Info("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}))

	sec := r.cfg.Security
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             sec.XSSProtection,
		ContentTypeNosniff:        sec.XContentTypeOptions,
		XFrameOptions:             sec.XFrameOptions,
		HSTSMaxAge:                sec.HSTSMaxAge,
		HSTSExcludeSubdomains:     !sec.HSTSIncludeSubDoms,
		HSTSPreloadEnabled:        sec.HSTSPreload,
		ContentSecurityPolicy:     sec.CSPPolicy,
		ReferrerPolicy:            sec.ReferrerPolicy,
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin",
		OriginAgentCluster:        "?1",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins:     sec.AllowedOrigins,
		AllowMethods:     sec.AllowedMethods,
		AllowHeaders:     sec.AllowedHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: sec.AllowCredentials,
		MaxAge:           sec.CORSMaxAge,
	}))

	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	if r.cfg.Server.EnableCompression {
		r.app.Use(compress.New(compress.Config{
			Level: compress.Level(r.cfg.Server.CompressionLevel),
			Next: func(c fiber.Ctx) bool {
				// xlsx payloads are already zipped
				return strings.HasSuffix(c.Path(), "/export")
			},
		}))
	}

	if r.cfg.Logging.EnableAccessLog {
		r.app.Use(logger.New(logger.Config{
			Format:     `{"time":"${time}","request_id":"${respHeader:X-Request-ID}","level":"info","method":"${method}","path":"${path}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_out":${bytesSent}}` + "\n",
			TimeFormat: time.RFC3339,
			TimeZone:   "UTC",
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/api/health" || c.Path() == r.cfg.Metrics.Path
			},
		}))
	}

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			slog.Error("panic recovered",
				"request_id", requestid.FromContext(c),
				"error", e,
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	slog.Info("Starting server", "address", address)
	return r.app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops accepting connections and waits for in-flight requests
func (r *FiberRouter) Shutdown(timeout time.Duration) error {
	return r.app.ShutdownWithTimeout(timeout)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
			Success: false,
			Message: "Failed to load Swagger documentation",
			Error: dto.ErrorDetail{
				Code: "SWAGGER_LOAD_ERROR",
			},
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(doc)
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestid.FromContext(c),
			},
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An internal server error occurred"
	errorCode := "INTERNAL_ERROR"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		if code < fiber.StatusInternalServerError {
			message = e.Message
			errorCode = "REQUEST_ERROR"
		}
	}

	requestID := requestid.FromContext(c)
	slog.Error("Request failed", "status", code, "request_id", requestID, "error", err)

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: errorCode,
			Details: fiber.Map{
				"timestamp":  utils.UTCNowUnix(),
				"request_id": requestID,
			},
		},
	})
}
