package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sanjay9585813868/Portfolio/internal/domain"
	"github.com/sanjay9585813868/Portfolio/internal/repository"
	"github.com/sanjay9585813868/Portfolio/pkg/logger"
)

type fakeNotifier struct {
	calls []domain.ContactRecord
	err   error
}

func (f *fakeNotifier) ContactSubmitted(_ context.Context, rec domain.ContactRecord) error {
	f.calls = append(f.calls, rec)
	return f.err
}

func newTestService(t *testing.T, notifier *fakeNotifier) (PortfolioService, repository.Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := repository.NewFileStore(dir, logger.Nop())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	return NewPortfolioService(store, notifier, logger.Nop()), store, dir
}

func TestUploadProfilePicture_StoresFileAndRecord(t *testing.T) {
	svc, _, dir := newTestService(t, &fakeNotifier{})

	rec, err := svc.UploadProfilePicture(context.Background(), []byte("img"), "me.png")
	if err != nil {
		t.Fatalf("UploadProfilePicture error: %v", err)
	}
	if !strings.HasSuffix(rec.ProfilePicture, ".png") {
		t.Errorf("expected original extension kept, got %s", rec.ProfilePicture)
	}

	data, err := os.ReadFile(filepath.Join(dir, rec.ProfilePicture))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "img" {
		t.Errorf("stored bytes %q do not match upload", data)
	}
}

func TestUploadProfilePicture_DeletesPreviousFileKeepsHistory(t *testing.T) {
	svc, store, dir := newTestService(t, &fakeNotifier{})

	first, err := svc.UploadProfilePicture(context.Background(), []byte("one"), "a.png")
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	second, err := svc.UploadProfilePicture(context.Background(), []byte("two"), "b.jpg")
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, first.ProfilePicture)); !os.IsNotExist(err) {
		t.Errorf("expected superseded image %s to be deleted", first.ProfilePicture)
	}
	if _, err := os.Stat(filepath.Join(dir, second.ProfilePicture)); err != nil {
		t.Errorf("expected current image %s to exist: %v", second.ProfilePicture, err)
	}

	// History records are retained even though the old file is gone.
	profiles, err := store.Profiles()
	if err != nil {
		t.Fatalf("Profiles error: %v", err)
	}
	if len(profiles) != 2 {
		t.Errorf("expected 2 history records, got %d", len(profiles))
	}
}

func TestLatestProfilePicture_ReturnsLastUpload(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeNotifier{})

	if _, err := svc.LatestProfilePicture(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty history, got %v", err)
	}

	var last *domain.ProfileRecord
	for i := 0; i < 3; i++ {
		rec, err := svc.UploadProfilePicture(context.Background(), []byte{byte(i)}, "p.png")
		if err != nil {
			t.Fatalf("upload %d: %v", i, err)
		}
		last = rec
	}

	got, err := svc.LatestProfilePicture(context.Background())
	if err != nil {
		t.Fatalf("LatestProfilePicture error: %v", err)
	}
	if got.ProfilePicture != last.ProfilePicture {
		t.Errorf("expected latest %s, got %s", last.ProfilePicture, got.ProfilePicture)
	}
}

func TestAddProject_AppendsAndReturnsRecord(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeNotifier{})

	before, err := svc.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects error: %v", err)
	}

	created, err := svc.AddProject(context.Background(), []byte("img"), "shot.png", domain.ProjectRecord{
		Title:       "Site",
		Technology:  "Go",
		Description: "backend",
		URL:         "https://example.com",
	})
	if err != nil {
		t.Fatalf("AddProject error: %v", err)
	}
	if created.Image == "" {
		t.Errorf("expected stored image name on the record")
	}

	after, err := svc.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects error: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("expected list to grow by one, got %d -> %d", len(before), len(after))
	}
	if after[len(after)-1] != *created {
		t.Errorf("listed record %+v does not match created %+v", after[len(after)-1], *created)
	}
}

func TestReplaceResume_SecondUploadWins(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeNotifier{})

	if err := svc.ReplaceResume(context.Background(), []byte("v1")); err != nil {
		t.Fatalf("first ReplaceResume: %v", err)
	}
	if err := svc.ReplaceResume(context.Background(), []byte("v2")); err != nil {
		t.Fatalf("second ReplaceResume: %v", err)
	}

	data, err := os.ReadFile(svc.ResumeFile())
	if err != nil {
		t.Fatalf("read resume: %v", err)
	}
	if string(data) != "v2" {
		t.Errorf("expected second upload's bytes, got %q", data)
	}
}

func TestSubmitContact_SavesThenNotifies(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, store, _ := newTestService(t, notifier)

	rec := domain.ContactRecord{"name": "A", "phone": "1", "email": "a@b.com", "message": "hi"}
	if err := svc.SubmitContact(context.Background(), rec); err != nil {
		t.Fatalf("SubmitContact error: %v", err)
	}

	contacts, err := store.Contacts()
	if err != nil {
		t.Fatalf("Contacts error: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("expected 1 stored contact, got %d", len(contacts))
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.calls))
	}
}

func TestSubmitContact_RecordKeptWhenMailFails(t *testing.T) {
	notifier := &fakeNotifier{err: domain.ErrMailDelivery}
	svc, store, _ := newTestService(t, notifier)

	err := svc.SubmitContact(context.Background(), domain.ContactRecord{"name": "A"})
	if !errors.Is(err, domain.ErrMailDelivery) {
		t.Fatalf("expected mail delivery error, got %v", err)
	}

	contacts, err := store.Contacts()
	if err != nil {
		t.Fatalf("Contacts error: %v", err)
	}
	if len(contacts) != 1 {
		t.Errorf("expected contact to be kept despite mail failure, got %d records", len(contacts))
	}
}
