package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mvasiljevs/commhub/internal/client/api"
	"github.com/mvasiljevs/commhub/internal/client/models"
)

// ResourceService accesses the curated resource library.
type ResourceService struct {
	api *api.Client
}

// ResourceFilter narrows resource listings. Zero values are omitted.
type ResourceFilter struct {
	Status       string
	Region       string
	ResourceType string
	Featured     *bool
	Limit        int
	Offset       int
}

func NewResourceService(apiClient *api.Client) *ResourceService {
	return &ResourceService{api: apiClient}
}

func (s *ResourceService) List(ctx context.Context, filter ResourceFilter) (*models.ResourceList, error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	values := url.Values{}
	values.Set("limit", strconv.Itoa(filter.Limit))
	values.Set("offset", strconv.Itoa(filter.Offset))
	if filter.Status != "" {
		values.Set("status", filter.Status)
	}
	if filter.Region != "" {
		values.Set("region", filter.Region)
	}
	if filter.ResourceType != "" {
		values.Set("resource_type", filter.ResourceType)
	}
	if filter.Featured != nil {
		values.Set("featured", strconv.FormatBool(*filter.Featured))
	}

	var list models.ResourceList
	if err := s.api.Get(ctx, "/resources/?"+values.Encode(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *ResourceService) Get(ctx context.Context, resourceID string) (*models.Resource, error) {
	var resource models.Resource
	if err := s.api.Get(ctx, "/resources/"+url.PathEscape(resourceID)+"/", &resource); err != nil {
		return nil, err
	}
	return &resource, nil
}
