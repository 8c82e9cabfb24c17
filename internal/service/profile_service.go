package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path"
	"strings"
	"time"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"
	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/repository"
	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidImageType = errors.New("invalid or missing image content type")
	ErrUploadURLError   = errors.New("failed to generate upload URL")
)

// PhotoUploadResponse carries a presigned PUT URL plus the object key the
// client must confirm after uploading.
type PhotoUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// ProfileService owns the user's fitness profile: body measurements, the
// interpolated progress shape, and progress photos in object storage.
type ProfileService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	// GetCurrentMeasurements returns (nil, nil) when the user never recorded
	// measurements.
	GetCurrentMeasurements(ctx context.Context, userID primitive.ObjectID) (*domain.BodyMeasurements, error)
	UpdateMeasurements(ctx context.Context, userID primitive.ObjectID, m domain.BodyMeasurements) error
	// GenerateProgressMeasurements interpolates the current shape toward the
	// goal shape by percent (0..100), stores and returns the result.
	GenerateProgressMeasurements(ctx context.Context, userID primitive.ObjectID, current domain.BodyMeasurements, goal domain.FitnessGoal, percent float64) (*domain.BodyMeasurements, error)
	RequestPhotoUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*PhotoUploadResponse, error)
	ConfirmPhotoUpload(ctx context.Context, userID primitive.ObjectID, objectKey, fileName string) error
}

// profileService implements the ProfileService interface.
type profileService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(userRepo repository.UserRepository, fileStorage storage.FileStorage) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// GetProfile returns the full user record (without the password hash).
func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// GetCurrentMeasurements returns the user's recorded measurements, if any.
func (s *profileService) GetCurrentMeasurements(ctx context.Context, userID primitive.ObjectID) (*domain.BodyMeasurements, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.CurrentMeasurements, nil
}

// UpdateMeasurements stores new current measurements.
func (s *profileService) UpdateMeasurements(ctx context.Context, userID primitive.ObjectID, m domain.BodyMeasurements) error {
	err := s.userRepo.UpdateMeasurements(ctx, userID, &m, nil)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// GenerateProgressMeasurements builds the in-between shape shown by the body
// visualization: a linear blend from the current measurements toward a
// goal-dependent target, weighted by plan progress. The result is persisted
// on the profile so the home screen can render it without recomputing.
func (s *profileService) GenerateProgressMeasurements(ctx context.Context, userID primitive.ObjectID, current domain.BodyMeasurements, goal domain.FitnessGoal, percent float64) (*domain.BodyMeasurements, error) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	target := goalTarget(current, goal)
	fraction := percent / 100
	progress := domain.BodyMeasurements{
		Shoulders: interpolate(current.Shoulders, target.Shoulders, fraction),
		Chest:     interpolate(current.Chest, target.Chest, fraction),
		Arms:      interpolate(current.Arms, target.Arms, fraction),
		Waist:     interpolate(current.Waist, target.Waist, fraction),
		Legs:      interpolate(current.Legs, target.Legs, fraction),
	}

	if err := s.userRepo.UpdateMeasurements(ctx, userID, nil, &progress); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// RequestPhotoUpload generates a presigned PUT URL for a progress photo.
func (s *profileService) RequestPhotoUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*PhotoUploadResponse, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidImageType
	}

	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("progress-photos", userID.Hex(),
		fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &PhotoUploadResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmPhotoUpload records photo metadata after the client finished the
// direct-to-storage upload.
func (s *profileService) ConfirmPhotoUpload(ctx context.Context, userID primitive.ObjectID, objectKey, fileName string) error {
	if objectKey == "" {
		return errors.New("object key is required")
	}
	photo := domain.ProgressPhoto{
		ObjectKey:  objectKey,
		FileName:   fileName,
		UploadedAt: time.Now().UTC(),
	}
	err := s.userRepo.AddProgressPhoto(ctx, userID, photo)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// --- Goal interpolation ---

// goalTarget derives the target shape for a goal as fixed multipliers of the
// current measurements. Like plan generation, this stands in for a model the
// mobile app pretended to call.
func goalTarget(current domain.BodyMeasurements, goal domain.FitnessGoal) domain.BodyMeasurements {
	switch goal {
	case domain.GoalMuscleGain:
		return scale(current, 1.10, 1.08, 1.12, 0.97, 1.08)
	case domain.GoalWeightLoss:
		return scale(current, 0.98, 0.95, 0.97, 0.85, 0.95)
	case domain.GoalStrength:
		return scale(current, 1.08, 1.06, 1.10, 1.00, 1.10)
	default:
		return scale(current, 1.02, 1.02, 1.03, 0.95, 1.03)
	}
}

func scale(m domain.BodyMeasurements, shoulders, chest, arms, waist, legs float64) domain.BodyMeasurements {
	return domain.BodyMeasurements{
		Shoulders: m.Shoulders * shoulders,
		Chest:     m.Chest * chest,
		Arms:      m.Arms * arms,
		Waist:     m.Waist * waist,
		Legs:      m.Legs * legs,
	}
}

// interpolate blends from a to b by fraction, rounded to one decimal.
func interpolate(a, b, fraction float64) float64 {
	return math.Round((a+(b-a)*fraction)*10) / 10
}
