package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/mvasiljevs/commhub/internal/client/api"
	"github.com/mvasiljevs/commhub/internal/client/models"
)

// ProjectService accesses community projects and their moderation.
type ProjectService struct {
	api *api.Client
}

func NewProjectService(apiClient *api.Client) *ProjectService {
	return &ProjectService{api: apiClient}
}

func (s *ProjectService) List(ctx context.Context, filter *models.ProjectFilter) ([]models.Project, error) {
	path := "/projects/"
	if filter != nil {
		if q := filterQuery(filter); q != "" {
			path += "?" + q
		}
	}

	var projects []models.Project
	if err := s.api.Get(ctx, path, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, projectID string) (*models.Project, error) {
	var project models.Project
	if err := s.api.Get(ctx, "/projects/"+url.PathEscape(projectID)+"/", &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Create(ctx context.Context, create models.ProjectCreate) (*models.Project, error) {
	var project models.Project
	if err := s.api.Post(ctx, "/projects/", create, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Update(ctx context.Context, projectID string, update models.ProjectUpdate) (*models.Project, error) {
	var project models.Project
	path := "/projects/" + url.PathEscape(projectID) + "/"
	if err := s.api.Patch(ctx, path, update, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Moderate approves/features a project. Admin-only; the server enforces the
// role carried by the access token.
func (s *ProjectService) Moderate(ctx context.Context, projectID string, moderation models.ProjectModeration) (*models.Project, error) {
	var project models.Project
	path := "/projects/" + url.PathEscape(projectID) + "/"
	if err := s.api.Patch(ctx, path, moderation, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Delete(ctx context.Context, projectID string) error {
	return s.api.Delete(ctx, "/projects/"+url.PathEscape(projectID)+"/")
}

func filterQuery(f *models.ProjectFilter) string {
	values := url.Values{}
	if f.Industry != "" {
		values.Set("industry", f.Industry)
	}
	if len(f.Technologies) > 0 {
		values.Set("technologies", strings.Join(f.Technologies, ","))
	}
	if len(f.Tools) > 0 {
		values.Set("tools", strings.Join(f.Tools, ","))
	}
	if f.IsReviewed != nil {
		values.Set("is_reviewed", strconv.FormatBool(*f.IsReviewed))
	}
	return values.Encode()
}
