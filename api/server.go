package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherdash.app/config"
	dasherr "weatherdash.app/errors"
	"weatherdash.app/models"
	"weatherdash.app/pkg/validation"
	"weatherdash.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router          *gin.Engine
	config          *config.Config
	explorerService service.ExplorerServiceInterface
	chatService     service.ChatServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	config *config.Config,
	explorerService service.ExplorerServiceInterface,
	chatService service.ChatServiceInterface,
) *Server {
	registerValidators()
	router := gin.Default()

	server := &Server{
		router:          router,
		config:          config,
		explorerService: explorerService,
		chatService:     chatService,
	}

	server.setupRoutes()
	return server
}

// registerValidators installs the custom binding rules used by request DTOs
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := validation.ParseISODate(fl.Field().String())
			return err == nil
		})
	}
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/explore", s.explore)
		api.POST("/chat/sessions", s.createSession)
		api.GET("/chat/sessions/:id", s.getTranscript)
		api.POST("/chat/sessions/:id/ask", s.ask)
		api.DELETE("/chat/sessions/:id", s.endSession)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.ServeStaticFiles()
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) explore(c *gin.Context) {
	var req models.ExploreRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, dasherr.NewValidationError("invalid request format"))
		return
	}

	slog.Debug("Explore request received",
		"city", req.City, "days", req.DaysBack, "units", req.Units, "window", req.SmoothingWindow)

	result, err := s.explorerService.Explore(&req)
	if err != nil {
		slog.Error("Explorer service error", "error", err, "city", req.City)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) createSession(c *gin.Context) {
	sess := s.chatService.NewSession()
	slog.Debug("Chat session created", "session", sess.ID)
	c.JSON(http.StatusCreated, models.SessionResponse{SessionID: sess.ID})
}

func (s *Server) getTranscript(c *gin.Context) {
	id := c.Param("id")

	turns, err := s.chatService.Transcript(id)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TranscriptResponse{SessionID: id, Turns: turns})
}

func (s *Server) ask(c *gin.Context) {
	id := c.Param("id")

	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, dasherr.NewValidationError("invalid request format"))
		return
	}

	slog.Debug("Ask request received", "session", id, "city", req.City, "date", req.Date)

	result, err := s.chatService.Ask(id, &req)
	if err != nil {
		slog.Error("Chat service error", "error", err, "session", id)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) endSession(c *gin.Context) {
	id := c.Param("id")

	if err := s.chatService.EndSession(id); err != nil {
		s.handleError(c, err)
		return
	}

	slog.Debug("Chat session ended", "session", id)
	c.JSON(http.StatusOK, gin.H{"message": "Session ended"})
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *dasherr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case dasherr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case dasherr.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case dasherr.ExternalAPIError:
			statusCode = http.StatusServiceUnavailable
			message = "External service unavailable"
		case dasherr.SchemaError:
			statusCode = http.StatusBadGateway
			message = "External service returned an unexpected response"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
