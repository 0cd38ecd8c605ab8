package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/sahayuk/sahayuk/internal/errors"
	model "github.com/sahayuk/sahayuk/internal/models"
	repository "github.com/sahayuk/sahayuk/internal/repositories"
)

type ProfileService struct {
	repo *repository.ProfileRepository
}

func NewProfileService(repo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

type UpdateProfileInput struct {
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	City         string
	Bio          string
	Skills       string
	ProfileImage string
}

// Update saves the user's own profile fields. The completed flag flips on
// once name and phone are present; tier and counters are untouchable here.
func (s *ProfileService) Update(ctx context.Context, userID string, in UpdateProfileInput) (*model.UserProfile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.FirstName = strings.TrimSpace(in.FirstName)
	profile.LastName = strings.TrimSpace(in.LastName)
	profile.Phone = strings.TrimSpace(in.Phone)
	profile.Address = strings.TrimSpace(in.Address)
	profile.City = strings.TrimSpace(in.City)
	profile.Bio = strings.TrimSpace(in.Bio)
	profile.Skills = strings.TrimSpace(in.Skills)
	profile.ProfileImage = strings.TrimSpace(in.ProfileImage)
	profile.ProfileCompleted = profile.FirstName != "" && profile.LastName != "" && profile.Phone != ""

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
