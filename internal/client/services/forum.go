// Package services contains the typed domain callers of the CommHub API.
// Each service is a thin wrapper around the authenticated client: it shapes
// requests and responses but owns no state of its own.
package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mvasiljevs/commhub/internal/client/api"
	"github.com/mvasiljevs/commhub/internal/client/models"
)

// ForumService accesses threads and comments.
type ForumService struct {
	api *api.Client
}

func NewForumService(apiClient *api.Client) *ForumService {
	return &ForumService{api: apiClient}
}

func (s *ForumService) ListThreads(ctx context.Context) ([]models.Thread, error) {
	var threads []models.Thread
	if err := s.api.Get(ctx, "/forum/threads/", &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

func (s *ForumService) ListThreadsByAuthor(ctx context.Context, authorPublicID string) ([]models.Thread, error) {
	var threads []models.Thread
	path := "/forum/threads/?author=" + url.QueryEscape(authorPublicID)
	if err := s.api.Get(ctx, path, &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

// GetThread returns a thread with its first page of comments; limit bounds
// the page size.
func (s *ForumService) GetThread(ctx context.Context, threadID string, limit int) (*models.ThreadDetail, error) {
	var detail models.ThreadDetail
	path := fmt.Sprintf("/forum/threads/%s/?limit=%d", url.PathEscape(threadID), limit)
	if err := s.api.Get(ctx, path, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *ForumService) CreateThread(ctx context.Context, create models.ThreadCreate) (*models.Thread, error) {
	var thread models.Thread
	if err := s.api.Post(ctx, "/forum/threads/", create, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

func (s *ForumService) UpdateThread(ctx context.Context, threadID string, update models.ThreadUpdate) (*models.Thread, error) {
	var thread models.Thread
	path := "/forum/threads/" + url.PathEscape(threadID) + "/"
	if err := s.api.Patch(ctx, path, update, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

func (s *ForumService) DeleteThread(ctx context.Context, threadID string) error {
	return s.api.Delete(ctx, "/forum/threads/"+url.PathEscape(threadID)+"/")
}

func (s *ForumService) AddComment(ctx context.Context, threadID string, content string) (*models.Comment, error) {
	var comment models.Comment
	path := "/forum/threads/" + url.PathEscape(threadID) + "/comments/"
	if err := s.api.Post(ctx, path, map[string]string{"content": content}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *ForumService) ReplyToComment(ctx context.Context, commentID string, content string) (*models.Comment, error) {
	var comment models.Comment
	path := "/forum/comments/" + url.PathEscape(commentID) + "/reply/"
	if err := s.api.Post(ctx, path, map[string]string{"content": content}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *ForumService) EditComment(ctx context.Context, commentID string, content string) (*models.Comment, error) {
	var comment models.Comment
	path := "/forum/comments/" + url.PathEscape(commentID) + "/"
	if err := s.api.Put(ctx, path, map[string]string{"content": content}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *ForumService) DeleteComment(ctx context.Context, commentID string) error {
	return s.api.Delete(ctx, "/forum/comments/"+url.PathEscape(commentID)+"/")
}
