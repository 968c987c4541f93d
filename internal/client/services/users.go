package services

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/mvasiljevs/commhub/internal/client/api"
	"github.com/mvasiljevs/commhub/internal/client/models"
)

// UserService accesses user profiles.
type UserService struct {
	api *api.Client
}

func NewUserService(apiClient *api.Client) *UserService {
	return &UserService{api: apiClient}
}

// CurrentProfile returns the authenticated user's full profile.
func (s *UserService) CurrentProfile(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.api.Get(ctx, "/users/profile/", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.api.Get(ctx, "/users/"+url.PathEscape(userID)+"/", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.api.Patch(ctx, "/users/profile/", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfileImage uploads a new profile image as multipart form data and
// returns the updated profile.
func (s *UserService) UpdateProfileImage(ctx context.Context, filename string, image io.Reader) (*models.Profile, error) {
	var out struct {
		Profile models.Profile `json:"profile"`
	}

	err := s.api.PostMultipart(ctx, http.MethodPatch, "/users/profile/", func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("profile.profile_image", filename)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, image)
		return err
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Profile, nil
}
