package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanjay9585813868/Portfolio/internal/config"
	"github.com/sanjay9585813868/Portfolio/internal/handler"
	"github.com/sanjay9585813868/Portfolio/internal/mailer"
	"github.com/sanjay9585813868/Portfolio/internal/repository"
	"github.com/sanjay9585813868/Portfolio/internal/service"
)

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	store, err := repository.NewFileStore(cfg.App.UploadDir, log)
	if err != nil {
		return nil, err
	}

	notifier := mailer.NewSMTPNotifier(cfg.Mail, log)
	portfolioService := service.NewPortfolioService(store, notifier, log)
	h := handler.NewHandler(portfolioService, cfg, log)

	router := NewRouter(cfg, log, h)

	server := &Server{
		httpServer: &http.Server{
			Addr:           cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:        router,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		cfg: cfg,
		log: log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("public_url", cfg.App.PublicAPIURL))

	return server, nil
}

// NewRouter builds the gin engine with middleware and all routes. Exposed
// separately so tests can drive the full HTTP surface without a listener.
func NewRouter(cfg *config.Config, log *zap.Logger, h *handler.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(requestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	router.MaxMultipartMemory = cfg.App.MaxUploadSize

	router.GET("/health", h.HealthCheck)
	router.GET("/name", h.GetName)

	router.POST("/upload-profile-picture", h.UploadProfilePicture)
	router.GET("/get-profile-picture", h.GetProfilePicture)

	router.POST("/upload/project", h.UploadProject)
	router.GET("/projects", h.ListProjects)

	router.POST("/upload/resume", h.UploadResume)
	router.GET("/get-resume-url", h.GetResumeURL)

	// One wildcard route covers both plain static serving and the
	// resume-attachment special case; gin cannot mix Static with an
	// overlapping literal route.
	router.GET("/uploads/*filepath", h.ServeUpload)

	router.PUT("/contact", h.SubmitContact)

	return router
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("address", s.httpServer.Addr),
		zap.String("public_url", s.cfg.App.PublicAPIURL))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
