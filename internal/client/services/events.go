package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mvasiljevs/commhub/internal/client/api"
	"github.com/mvasiljevs/commhub/internal/client/models"
)

// EventService accesses community events and registrations.
type EventService struct {
	api *api.Client
}

func NewEventService(apiClient *api.Client) *EventService {
	return &EventService{api: apiClient}
}

func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := s.api.Get(ctx, "/events/", &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventService) Featured(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := s.api.Get(ctx, "/events/featured/", &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventService) Upcoming(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := s.api.Get(ctx, "/events/upcoming/", &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventService) Get(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event
	if err := s.api.Get(ctx, "/events/"+url.PathEscape(eventID)+"/", &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) Speakers(ctx context.Context, eventID string) ([]models.Speaker, error) {
	var speakers []models.Speaker
	path := "/events/" + url.PathEscape(eventID) + "/speakers/"
	if err := s.api.Get(ctx, path, &speakers); err != nil {
		return nil, err
	}
	return speakers, nil
}

func (s *EventService) Agenda(ctx context.Context, eventID string) ([]models.AgendaItem, error) {
	var items []models.AgendaItem
	path := "/events/" + url.PathEscape(eventID) + "/agenda/items/"
	if err := s.api.Get(ctx, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *EventService) Related(ctx context.Context, eventID string, limit int) ([]models.Event, error) {
	var events []models.Event
	path := fmt.Sprintf("/events/%s/related/?limit=%d", url.PathEscape(eventID), limit)
	if err := s.api.Get(ctx, path, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventService) Register(ctx context.Context, eventID string) (*models.Registration, error) {
	var reg models.Registration
	path := "/events/" + url.PathEscape(eventID) + "/register/"
	if err := s.api.Post(ctx, path, nil, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *EventService) CancelRegistration(ctx context.Context, eventID string) error {
	return s.api.Delete(ctx, "/events/"+url.PathEscape(eventID)+"/cancel-registration/")
}
