// Package server exposes timelines, the portfolio overview and the status
// board over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/metrics"
	"github.com/alexanderramin/tiendo/internal/repository"
	"github.com/alexanderramin/tiendo/internal/requestid"
	"github.com/alexanderramin/tiendo/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Config holds configuration for the HTTP server.
type Config struct {
	ListenAddr string
}

// Services are the use cases the routes call into.
type Services struct {
	Projects service.ProjectService
	Timeline service.TimelineService
	Status   service.StatusService
}

// Server is the Fiber application.
type Server struct {
	app    *fiber.App
	logger zerolog.Logger
	config Config
}

// ProblemDetail is the error body, after RFC 7807.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// New creates and configures the server. m may be nil.
func New(cfg Config, svcs Services, m *metrics.Metrics, logger zerolog.Logger) *Server {
	logger = logger.With().Str("component", "http").Logger()
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	s := &Server{app: app, logger: logger, config: cfg}
	s.setupMiddleware(m)
	s.setupRoutes(&handlers{svcs: svcs}, m)
	return s
}

func (s *Server) setupMiddleware(m *metrics.Metrics) {
	s.app.Use(recover.New(recover.Config{EnableStackTrace: true}))

	s.app.Use(func(c *fiber.Ctx) error {
		ctx, reqID := requestid.Ensure(c.UserContext(), c.Get(requestid.Header))
		c.SetUserContext(ctx)
		c.Set(requestid.Header, reqID)
		c.Locals("request_id", reqID)
		return c.Next()
	})

	s.app.Use(func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()
		path := c.Path()
		if path == "/healthz" || path == "/metrics" {
			return err
		}

		status := c.Response().StatusCode()
		if err != nil {
			status = statusFor(err)
		}
		if m != nil {
			m.RecordRequest(c.Route().Path, status, time.Since(started))
		}
		s.logger.Info().
			Str("method", c.Method()).
			Str("path", path).
			Int("status", status).
			Dur("elapsed", time.Since(started)).
			Interface("request_id", c.Locals("request_id")).
			Msg("http request")
		return err
	})
}

func (s *Server) setupRoutes(h *handlers, m *metrics.Metrics) {
	s.app.Get("/healthz", h.liveness)
	if m != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	v1 := s.app.Group("/api/v1")
	v1.Get("/projects", h.listProjects)
	v1.Get("/projects/:id", h.getProject)
	v1.Get("/projects/:id/timeline", h.projectTimeline)
	v1.Get("/projects/:id/timeline.svg", h.projectTimelineSVG)
	v1.Get("/overview", h.overview)
	v1.Get("/overview.svg", h.overviewSVG)
	v1.Get("/status", h.status)
}

// Start listens on the configured address. Blocks until stopped.
func (s *Server) Start() error {
	addr := s.config.ListenAddr
	if addr == "" {
		addr = ":8080"
	}
	s.logger.Info().Str("addr", addr).Msg("http server starting")
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.logger.Info().Msg("http server shutting down")
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var fe *fiber.Error
	var te *contract.TimelineError
	var se *contract.StatusError
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, repository.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrAmbiguousID):
		return fiber.StatusConflict
	case errors.As(err, &te):
		if te.Code == contract.TimelineErrNoProjects {
			return fiber.StatusNotFound
		}
		return fiber.StatusBadRequest
	case errors.As(err, &se):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

var problemTypes = map[int]string{
	fiber.StatusBadRequest: "invalid_request",
	fiber.StatusNotFound:   "not_found",
	fiber.StatusConflict:   "ambiguous_id",
}

func errorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := statusFor(err)
		detail := err.Error()

		if code >= fiber.StatusInternalServerError {
			logger.Error().
				Err(err).
				Int("status", code).
				Str("path", c.Path()).
				Str("method", c.Method()).
				Msg("unhandled error")
			detail = "An internal error occurred"
		}

		typ, ok := problemTypes[code]
		if !ok {
			typ = "internal_error"
			if code < fiber.StatusInternalServerError {
				typ = "http_error"
			}
		}
		return c.Status(code).JSON(ProblemDetail{
			Type:     typ,
			Title:    statusTitle(code),
			Status:   code,
			Detail:   detail,
			Instance: c.Path(),
		})
	}
}

func statusTitle(code int) string {
	if msg := fiber.NewError(code).Message; msg != "" {
		return msg
	}
	return "Error"
}
