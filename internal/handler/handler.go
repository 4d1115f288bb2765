package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanjay9585813868/Portfolio/internal/config"
	"github.com/sanjay9585813868/Portfolio/internal/domain"
	"github.com/sanjay9585813868/Portfolio/internal/service"
)

// Stable error kinds carried in every JSON error body so clients can
// disambiguate failures without parsing message text.
const (
	KindBadRequest = "bad_request"
	KindNotFound   = "not_found"
	KindIO         = "io_error"
	KindMail       = "mail_error"
)

type Handler struct {
	service   service.PortfolioService
	cfg       *config.Config
	log       *zap.Logger
	uploadDir string
}

func NewHandler(service service.PortfolioService, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{
		service:   service,
		cfg:       cfg,
		log:       log,
		uploadDir: cfg.App.UploadDir,
	}
}

func (h *Handler) UploadProfilePicture(c *gin.Context) {
	file, err := c.FormFile("profilePicture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded", "kind": KindBadRequest})
		return
	}

	fileBytes, err := readFormFile(file)
	if err != nil {
		h.log.Error("Failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file", "kind": KindIO})
		return
	}

	rec, err := h.service.UploadProfilePicture(c.Request.Context(), fileBytes, file.Filename)
	if err != nil {
		h.log.Error("Failed to store profile picture", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while processing the request", "kind": KindIO})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *Handler) GetProfilePicture(c *gin.Context) {
	rec, err := h.service.LatestProfilePicture(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No profile picture found", "kind": KindNotFound})
			return
		}
		h.log.Error("Failed to read profile history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while retrieving the profile picture", "kind": KindIO})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *Handler) UploadProject(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided", "kind": KindBadRequest})
		return
	}

	fileBytes, err := readFormFile(file)
	if err != nil {
		h.log.Error("Failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file", "kind": KindIO})
		return
	}

	// Absent form fields are stored as empty strings.
	rec := domain.ProjectRecord{
		Title:       c.PostForm("title"),
		Technology:  c.PostForm("technology"),
		Description: c.PostForm("description"),
		URL:         c.PostForm("Url"),
	}

	created, err := h.service.AddProject(c.Request.Context(), fileBytes, file.Filename, rec)
	if err != nil {
		h.log.Error("Failed to store project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload project", "kind": KindIO})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project uploaded successfully!",
		"project": created,
	})
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.service.ListProjects(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects", "kind": KindIO})
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (h *Handler) UploadResume(c *gin.Context) {
	file, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No resume file uploaded", "kind": KindBadRequest})
		return
	}

	fileBytes, err := readFormFile(file)
	if err != nil {
		h.log.Error("Failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file", "kind": KindIO})
		return
	}

	if err := h.service.ReplaceResume(c.Request.Context(), fileBytes); err != nil {
		h.log.Error("Failed to replace resume", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload resume", "kind": KindIO})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resume uploaded and updated successfully!"})
}

// GetResumeURL always returns the fixed download URL; it does not check that
// a resume has actually been uploaded.
func (h *Handler) GetResumeURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"url": "/uploads/" + service.ResumeFileName})
}

// ServeUpload serves stored files read-only under /uploads. The resume is
// sent as an attachment; everything else is served inline by filename.
func (h *Handler) ServeUpload(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("filepath"), "/")
	if name == "" || name != filepath.Base(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name", "kind": KindBadRequest})
		return
	}

	path := filepath.Join(h.uploadDir, name)

	if name == service.ResumeFileName {
		if _, err := os.Stat(path); err != nil {
			h.log.Error("Resume file missing", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "File not found", "kind": KindIO})
			return
		}
		c.FileAttachment(path, service.ResumeFileName)
		return
	}

	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found", "kind": KindNotFound})
		return
	}
	c.File(path)
}

func (h *Handler) SubmitContact(c *gin.Context) {
	var rec domain.ContactRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact payload", "kind": KindBadRequest})
		return
	}

	if err := h.service.SubmitContact(c.Request.Context(), rec); err != nil {
		if errors.Is(err, domain.ErrMailDelivery) {
			// The record is already saved; only the notification failed.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email", "kind": KindMail})
			return
		}
		h.log.Error("Failed to store contact submission", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error", "kind": KindIO})
		return
	}

	c.String(http.StatusOK, "Email has been sent successfully!")
}

func (h *Handler) GetName(c *gin.Context) {
	c.String(http.StatusOK, h.cfg.App.OwnerName)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func readFormFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}
