package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mvasiljevs/commhub/internal/client/api"
	"github.com/mvasiljevs/commhub/internal/client/models"
	"github.com/stretchr/testify/require"
)

func newTestProjectService(t *testing.T, h http.HandlerFunc) *ProjectService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewProjectService(api.NewClient(srv.URL, nopLogger()))
}

func TestProjectService_ListUnfiltered(t *testing.T) {
	s := newTestProjectService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/projects/", r.URL.Path)
		require.Empty(t, r.URL.RawQuery)
		w.Write([]byte(`[{"public_id":"pr-1","title":"CommHub"}]`))
	})

	projects, err := s.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "CommHub", projects[0].Title)
}

func TestProjectService_ListWithFilter(t *testing.T) {
	s := newTestProjectService(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "fintech", q.Get("industry"))
		require.Equal(t, "go,sqlite", q.Get("technologies"))
		require.Equal(t, "true", q.Get("is_reviewed"))
		w.Write([]byte(`[]`))
	})

	reviewed := true
	_, err := s.List(context.Background(), &models.ProjectFilter{
		Industry:     "fintech",
		Technologies: []string{"go", "sqlite"},
		IsReviewed:   &reviewed,
	})
	require.NoError(t, err)
}

func TestProjectService_Create(t *testing.T) {
	s := newTestProjectService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/projects/", r.URL.Path)
		var in models.ProjectCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "New project", in.Title)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"public_id":"pr-2","title":"New project","status":"pending"}`))
	})

	project, err := s.Create(context.Background(), models.ProjectCreate{Title: "New project", Description: "d"})
	require.NoError(t, err)
	require.Equal(t, "pr-2", project.PublicID)
}

func TestProjectService_Moderate(t *testing.T) {
	s := newTestProjectService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/projects/pr-1/", r.URL.Path)
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, true, in["is_reviewed"])
		w.Write([]byte(`{"public_id":"pr-1","is_reviewed":true}`))
	})

	reviewed := true
	project, err := s.Moderate(context.Background(), "pr-1", models.ProjectModeration{IsReviewed: &reviewed})
	require.NoError(t, err)
	require.True(t, project.IsReviewed)
}

func TestProjectService_Delete(t *testing.T) {
	s := newTestProjectService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/projects/pr-1/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, s.Delete(context.Background(), "pr-1"))
}
