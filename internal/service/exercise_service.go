package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/repository"
	"gymsphere/fitness-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrNoDemoMedia      = errors.New("exercise has no demo media")
	ErrBadContentType   = errors.New("unsupported media content type")
)

// MediaUploadTicket is a presigned upload slot for exercise demo media.
// The caller PUTs the file to URL with the given content type, then
// stores ObjectKey on the exercise.
type MediaUploadTicket struct {
	ObjectKey string `json:"objectKey"`
	URL       string `json:"url"`
}

// ExerciseService exposes the content catalog and resolves demo media
// through the object store.
type ExerciseService interface {
	List(ctx context.Context, filter repository.ContentFilter) ([]domain.Exercise, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// DemoMediaURL returns a short-lived download URL for the exercise's
	// demonstration clip.
	DemoMediaURL(ctx context.Context, id primitive.ObjectID) (string, error)
	// RequestMediaUpload issues a presigned PUT slot for a new demo clip.
	RequestMediaUpload(ctx context.Context, contentType string) (*MediaUploadTicket, error)
}

type exerciseService struct {
	catalog repository.ExerciseRepository
	files   storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(catalog repository.ExerciseRepository, files storage.FileStorage) ExerciseService {
	return &exerciseService{catalog: catalog, files: files}
}

func (s *exerciseService) List(ctx context.Context, filter repository.ContentFilter) ([]domain.Exercise, error) {
	return s.catalog.Query(ctx, filter)
}

func (s *exerciseService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	ex, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return ex, nil
}

func (s *exerciseService) DemoMediaURL(ctx context.Context, id primitive.ObjectID) (string, error) {
	ex, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if ex.MediaKey == "" {
		return "", ErrNoDemoMedia
	}
	return s.files.GeneratePresignedDownloadURL(ctx, ex.MediaKey, storage.DefaultPresignedURLExpiry)
}

func (s *exerciseService) RequestMediaUpload(ctx context.Context, contentType string) (*MediaUploadTicket, error) {
	if !strings.HasPrefix(contentType, "video/") && !strings.HasPrefix(contentType, "image/") {
		return nil, ErrBadContentType
	}

	ext := ".bin"
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	objectKey := fmt.Sprintf("exercises/%s%s", uuid.NewString(), ext)

	url, err := s.files.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &MediaUploadTicket{ObjectKey: objectKey, URL: url}, nil
}
