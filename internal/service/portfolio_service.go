package service

import (
	"bytes"
	"context"

	"go.uber.org/zap"

	"github.com/sanjay9585813868/Portfolio/internal/domain"
	"github.com/sanjay9585813868/Portfolio/internal/mailer"
	"github.com/sanjay9585813868/Portfolio/internal/repository"
	"github.com/sanjay9585813868/Portfolio/pkg/utils"
)

// ResumeFileName is the fixed name of the single resume file inside the
// upload directory. The download URL is derived from it.
const ResumeFileName = "resume.pdf"

type PortfolioService interface {
	UploadProfilePicture(ctx context.Context, fileBytes []byte, filename string) (*domain.ProfileRecord, error)
	LatestProfilePicture(ctx context.Context) (*domain.ProfileRecord, error)

	AddProject(ctx context.Context, fileBytes []byte, filename string, rec domain.ProjectRecord) (*domain.ProjectRecord, error)
	ListProjects(ctx context.Context) ([]domain.ProjectRecord, error)

	ReplaceResume(ctx context.Context, fileBytes []byte) error
	ResumeFile() string

	SubmitContact(ctx context.Context, rec domain.ContactRecord) error
}

type portfolioService struct {
	store    repository.Store
	notifier mailer.Notifier
	log      *zap.Logger
}

func NewPortfolioService(store repository.Store, notifier mailer.Notifier, log *zap.Logger) PortfolioService {
	return &portfolioService{
		store:    store,
		notifier: notifier,
		log:      log,
	}
}

// UploadProfilePicture stores the image under a timestamp-derived name,
// appends it to the profile history and deletes the image file of the
// previous entry. Older history records themselves are retained; only the
// last entry is meaningful.
func (s *portfolioService) UploadProfilePicture(ctx context.Context, fileBytes []byte, filename string) (*domain.ProfileRecord, error) {
	name := utils.UniqueName(filename)

	if _, err := s.store.SaveUpload(name, bytes.NewReader(fileBytes)); err != nil {
		return nil, err
	}

	rec := domain.ProfileRecord{ProfilePicture: name}
	prev, err := s.store.AppendProfile(rec)
	if err != nil {
		return nil, err
	}

	if prev != nil && prev.ProfilePicture != "" {
		if err := s.store.DeleteUpload(prev.ProfilePicture); err != nil {
			s.log.Warn("Failed to delete previous profile picture",
				zap.String("file", prev.ProfilePicture),
				zap.Error(err))
		}
	}

	s.log.Info("Profile picture uploaded",
		zap.String("file", name),
		zap.Int("size", len(fileBytes)))

	return &rec, nil
}

func (s *portfolioService) LatestProfilePicture(ctx context.Context) (*domain.ProfileRecord, error) {
	records, err := s.store.Profiles()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	last := records[len(records)-1]
	return &last, nil
}

// AddProject stores the project image and appends the record. Text fields are
// persisted as given; empty values are accepted.
func (s *portfolioService) AddProject(ctx context.Context, fileBytes []byte, filename string, rec domain.ProjectRecord) (*domain.ProjectRecord, error) {
	name := utils.UniqueName(filename)

	if _, err := s.store.SaveUpload(name, bytes.NewReader(fileBytes)); err != nil {
		return nil, err
	}

	rec.Image = name
	if err := s.store.AppendProject(rec); err != nil {
		return nil, err
	}

	s.log.Info("Project added",
		zap.String("title", rec.Title),
		zap.String("image", name))

	return &rec, nil
}

// ListProjects re-reads the store on every call; the file is the single
// source of truth.
func (s *portfolioService) ListProjects(ctx context.Context) ([]domain.ProjectRecord, error) {
	return s.store.Projects()
}

func (s *portfolioService) ReplaceResume(ctx context.Context, fileBytes []byte) error {
	if err := s.store.ReplaceFile(ResumeFileName, bytes.NewReader(fileBytes)); err != nil {
		return err
	}
	s.log.Info("Resume replaced", zap.Int("size", len(fileBytes)))
	return nil
}

func (s *portfolioService) ResumeFile() string {
	return s.store.UploadPath(ResumeFileName)
}

// SubmitContact persists the submission first and notifies afterwards. The
// record is never rolled back: a failed send leaves it in storage and the
// error is reported to the caller.
func (s *portfolioService) SubmitContact(ctx context.Context, rec domain.ContactRecord) error {
	if err := s.store.AppendContact(rec); err != nil {
		return err
	}

	s.log.Info("Contact submission stored",
		zap.String("name", rec.Field("name")),
		zap.String("email", rec.Field("email")))

	return s.notifier.ContactSubmitted(ctx, rec)
}
