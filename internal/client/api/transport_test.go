package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mvasiljevs/commhub/internal/client/tokenstore"
	"github.com/mvasiljevs/commhub/internal/common"
	"github.com/mvasiljevs/commhub/internal/logging"
	"github.com/stretchr/testify/require"
)

func nopLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeRefresher counts refresh calls and, on success, installs the new token
// in the store the way the real session manager does.
type fakeRefresher struct {
	store tokenstore.Store
	token string
	err   error
	delay time.Duration
	calls atomic.Int64
}

func (f *fakeRefresher) Refresh(ctx context.Context) (string, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return "", f.err
	}
	if err := f.store.SetAccess(ctx, f.token); err != nil {
		return "", err
	}
	return f.token, nil
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestAuthTransport_AttachesBearerAndRequestID(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "t1", "r1"))

	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(common.AuthorizationHeader)
		gotReqID = r.Header.Get(common.RequestIDHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewAuthTransport(store, nopLogger())
	client := &http.Client{Transport: tr}

	resp, err := client.Get(srv.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "Bearer t1", gotAuth)
	require.NotEmpty(t, gotReqID)
}

func TestAuthTransport_NoTokenNoHeader(t *testing.T) {
	store := tokenstore.NewMemoryStore()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(common.AuthorizationHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewAuthTransport(store, nopLogger())
	client := &http.Client{Transport: tr}

	resp, err := client.Get(srv.URL + "/public")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Empty(t, gotAuth)
}

func TestAuthTransport_RefreshAndRetryOn401(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "stale", "r1"))

	var attempts atomic.Int64
	var retryAuth, retryMarker string
	var retryBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		if r.Header.Get(common.AuthorizationHeader) != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		retryAuth = r.Header.Get(common.AuthorizationHeader)
		retryMarker = r.Header.Get(common.RetryHeader)
		retryBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tr := NewAuthTransport(store, nopLogger())
	ref := &fakeRefresher{store: store, token: "fresh"}
	tr.BindRefresher(ref)
	client := &http.Client{Transport: tr}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL+"/things", bytes.NewReader([]byte(`{"title":"x"}`)))
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, int64(2), attempts.Load())
	require.Equal(t, int64(1), ref.calls.Load())
	require.Equal(t, "Bearer fresh", retryAuth)
	require.Equal(t, "1", retryMarker)
	require.JSONEq(t, `{"title":"x"}`, string(retryBody))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(body))
}

func TestAuthTransport_ConcurrentRequestsShareOneRefresh(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "stale", "r1"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(common.AuthorizationHeader) != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewAuthTransport(store, nopLogger())
	// The delay keeps the refresh in flight long enough for every 401 to join it.
	ref := &fakeRefresher{store: store, token: "fresh", delay: 200 * time.Millisecond}
	tr.BindRefresher(ref)
	client := &http.Client{Transport: tr}

	const n = 10
	var wg sync.WaitGroup
	statuses := make([]int, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := client.Get(srv.URL + "/things")
			if err != nil {
				errs[i] = err
				return
			}
			defer resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, http.StatusOK, statuses[i])
	}
	require.Equal(t, int64(1), ref.calls.Load())
}

func TestAuthTransport_RetriedRequestStillRejected(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "stale", "r1"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := NewAuthTransport(store, nopLogger())
	ref := &fakeRefresher{store: store, token: "fresh"}
	tr.BindRefresher(ref)

	var expired atomic.Int64
	tr.OnSessionExpired(func() { expired.Add(1) })

	client := &http.Client{Transport: tr}
	resp, err := client.Get(srv.URL + "/things")
	require.NoError(t, err)
	defer resp.Body.Close()

	// The 401 is surfaced, not swallowed, and refresh is not attempted again.
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, int64(1), ref.calls.Load())
	require.Equal(t, int64(1), expired.Load())
}

func TestAuthTransport_RefreshFailureExpiresSessionOnce(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "stale", "r1"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := NewAuthTransport(store, nopLogger())
	ref := &fakeRefresher{store: store, err: errors.New("refresh token revoked")}
	tr.BindRefresher(ref)

	var expired atomic.Int64
	tr.OnSessionExpired(func() { expired.Add(1) })

	client := &http.Client{Transport: tr}

	for i := 0; i < 3; i++ {
		resp, err := client.Get(srv.URL + "/things")
		require.Error(t, err)
		require.ErrorIs(t, err, common.ErrSessionExpired)
		require.Nil(t, resp)
	}

	require.Equal(t, int64(1), expired.Load())
}

func TestAuthTransport_ResetRearmsExpiredHook(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "stale", "r1"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := NewAuthTransport(store, nopLogger())
	tr.BindRefresher(&fakeRefresher{store: store, err: errors.New("revoked")})

	var expired atomic.Int64
	tr.OnSessionExpired(func() { expired.Add(1) })

	client := &http.Client{Transport: tr}

	_, err := client.Get(srv.URL + "/a")
	require.Error(t, err)
	_, err = client.Get(srv.URL + "/b")
	require.Error(t, err)
	require.Equal(t, int64(1), expired.Load())

	tr.Reset()

	_, err = client.Get(srv.URL + "/c")
	require.Error(t, err)
	require.Equal(t, int64(2), expired.Load())
}

func TestAuthTransport_NetworkErrorDoesNotRefresh(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	ref := &fakeRefresher{store: store, token: "fresh"}

	tr := NewAuthTransport(store, nopLogger(), WithBaseTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})))
	tr.BindRefresher(ref)

	req, err := http.NewRequest(http.MethodGet, "http://127.0.0.1:1/things", nil)
	require.NoError(t, err)

	_, err = tr.RoundTrip(req)
	require.Error(t, err)
	require.Equal(t, int64(0), ref.calls.Load())
}

func TestAuthTransport_BypassedContextPassesThrough401(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "stale", "r1"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := NewAuthTransport(store, nopLogger())
	ref := &fakeRefresher{store: store, token: "fresh"}
	tr.BindRefresher(ref)

	var expired atomic.Int64
	tr.OnSessionExpired(func() { expired.Add(1) })

	client := &http.Client{Transport: tr}
	req, err := http.NewRequestWithContext(WithoutRefresh(ctx), http.MethodGet, srv.URL+"/users/login/", nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, int64(0), ref.calls.Load())
	require.Equal(t, int64(0), expired.Load())
}

func TestAuthTransport_NoRefresherPassesThrough401(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "stale", "r1"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := NewAuthTransport(store, nopLogger())
	client := &http.Client{Transport: tr}

	resp, err := client.Get(srv.URL + "/things")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
