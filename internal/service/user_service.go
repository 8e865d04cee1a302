package service

import (
	"context"
	"errors"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidProfile = errors.New("invalid profile values")
)

// ProfileUpdate carries the onboarding fields a user may change. Nil
// pointers leave the stored value untouched.
type ProfileUpdate struct {
	Name           *string  `json:"name,omitempty"`
	Age            *int     `json:"age,omitempty"`
	HeightCm       *float64 `json:"heightCm,omitempty"`
	WeightKg       *float64 `json:"weightKg,omitempty"`
	TargetWeightKg *float64 `json:"targetWeightKg,omitempty"`
	Goal           *string  `json:"goal,omitempty"`
	FitnessLevel   *string  `json:"fitnessLevel,omitempty"`
	ActivityLevel  *string  `json:"activityLevel,omitempty"`
	FreqPerWeek    *int     `json:"freqPerWeek,omitempty"`
}

// UserService manages profiles and weight progress logs.
type UserService interface {
	GetProfile(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// UpdateProfile applies the partial update and refreshes the estimated
	// days to reach the target weight.
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) (*domain.User, error)
	// LogProgress records a weight measurement and folds it back into the
	// profile as the current weight.
	LogProgress(ctx context.Context, ownerID primitive.ObjectID, weightKg float64) (*domain.ProgressLog, error)
	ListProgress(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ProgressLog, error)
}

type userService struct {
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
	clock        Clock
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, progressRepo repository.ProgressRepository, clock Clock) UserService {
	return &userService{
		userRepo:     userRepo,
		progressRepo: progressRepo,
		clock:        clock,
	}
}

func (s *userService) GetProfile(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if update.WeightKg != nil && *update.WeightKg <= 0 {
		return nil, ErrInvalidProfile
	}
	if update.TargetWeightKg != nil && *update.TargetWeightKg <= 0 {
		return nil, ErrInvalidProfile
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Age != nil {
		user.Age = *update.Age
	}
	if update.HeightCm != nil {
		user.HeightCm = *update.HeightCm
	}
	if update.WeightKg != nil {
		user.WeightKg = *update.WeightKg
	}
	if update.TargetWeightKg != nil {
		user.TargetWeightKg = update.TargetWeightKg
	}
	if update.Goal != nil {
		user.Goal = *update.Goal
	}
	if update.FitnessLevel != nil {
		user.FitnessLevel = *update.FitnessLevel
	}
	if update.ActivityLevel != nil {
		user.ActivityLevel = *update.ActivityLevel
	}
	if update.FreqPerWeek != nil {
		user.FreqPerWeek = *update.FreqPerWeek
	}

	s.refreshEstimate(user)

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) LogProgress(ctx context.Context, ownerID primitive.ObjectID, weightKg float64) (*domain.ProgressLog, error) {
	if weightKg <= 0 {
		return nil, ErrInvalidProfile
	}

	user, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	entry := &domain.ProgressLog{
		OwnerID:  ownerID,
		WeightKg: weightKg,
		LoggedAt: s.clock.Now(),
	}
	id, err := s.progressRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	// The newest measurement becomes the profile weight, which in turn
	// shifts the days-to-target estimate.
	user.WeightKg = weightKg
	s.refreshEstimate(user)
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *userService) ListProgress(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ProgressLog, error) {
	return s.progressRepo.ListByOwner(ctx, ownerID)
}

func (s *userService) refreshEstimate(user *domain.User) {
	if user.WeightKg > 0 && user.TargetWeightKg != nil {
		user.EstimateDays = EstimateTransformationDays(user.WeightKg, *user.TargetWeightKg, user.Goal)
	}
}
