package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/mvasiljevs/commhub/internal/client/tokenstore"
	"github.com/mvasiljevs/commhub/internal/common"
	"github.com/mvasiljevs/commhub/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Refresher mints a new access token from the stored refresh token and
// persists it. The session manager implements it.
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

type bypassKey struct{}

// WithoutRefresh marks the request context so a 401 response is passed through
// untouched. The session layer uses it for the auth endpoints themselves,
// which must never trigger a recursive refresh.
func WithoutRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassKey{}, true)
}

func refreshBypassed(ctx context.Context) bool {
	v, _ := ctx.Value(bypassKey{}).(bool)
	return v
}

// AuthTransport attaches the stored access token to every outgoing request
// and transparently recovers from access-token expiry: on the first 401 for a
// request it performs a single shared refresh, then retries the request once
// with the new token. Unrecoverable failures raise the session-expired hook
// exactly once until Reset is called.
//
// Concurrent 401s share one refresh call through a singleflight group, which
// preserves the at-most-one-refresh-in-flight invariant under parallelism.
type AuthTransport struct {
	base  http.RoundTripper
	store tokenstore.Store
	log   logging.Logger

	mu        sync.RWMutex
	refresher Refresher
	onExpired func()

	group   singleflight.Group
	expired atomic.Bool
}

// TransportOption configures an AuthTransport.
type TransportOption func(*AuthTransport)

// WithBaseTransport overrides the underlying RoundTripper (default
// http.DefaultTransport).
func WithBaseTransport(rt http.RoundTripper) TransportOption {
	return func(t *AuthTransport) { t.base = rt }
}

func NewAuthTransport(store tokenstore.Store, log logging.Logger, opts ...TransportOption) *AuthTransport {
	t := &AuthTransport{
		base:  http.DefaultTransport,
		store: store,
		log:   log,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// BindRefresher wires the session manager in after construction. The two are
// created in sequence at startup, so a setter avoids a circular constructor
// dependency.
func (t *AuthTransport) BindRefresher(r Refresher) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refresher = r
}

// OnSessionExpired registers the hook invoked when auth recovery fails.
// The hook is fired at most once until Reset re-arms it.
func (t *AuthTransport) OnSessionExpired(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onExpired = fn
}

// Reset re-arms the session-expired hook after a successful login.
func (t *AuthTransport) Reset() {
	t.expired.Store(false)
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	r := req.Clone(ctx)
	access, _, err := t.store.Get(ctx)
	if err != nil {
		t.log.Warn(ctx, "failed to read stored credentials", "error", err)
	}
	if access != "" {
		r.Header.Set(common.AuthorizationHeader, common.BearerPrefix+access)
	}
	if r.Header.Get(common.RequestIDHeader) == "" {
		r.Header.Set(common.RequestIDHeader, uuid.NewString())
	}

	resp, err := t.base.RoundTrip(r)
	if err != nil {
		// Connectivity failure: surfaced as-is, refresh is only for auth
		// failures.
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || refreshBypassed(ctx) {
		return resp, nil
	}

	if r.Header.Get(common.RetryHeader) != "" {
		// Already retried once with a fresh token and still rejected.
		t.fireSessionExpired(ctx)
		return resp, nil
	}

	refresher := t.currentRefresher()
	if refresher == nil {
		return resp, nil
	}

	if req.Body != nil && req.GetBody == nil {
		// Cannot replay the body, so the 401 has to stand.
		return resp, nil
	}

	drainAndClose(resp.Body)

	t.log.Debug(ctx, "access token rejected, refreshing", "method", req.Method, "url", req.URL.Path)

	// The refresh outcome is shared between every request that fails while it
	// is in flight, so it must not die with whichever caller happens to run it.
	v, err, _ := t.group.Do("refresh", func() (any, error) {
		return refresher.Refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		t.fireSessionExpired(ctx)
		return nil, fmt.Errorf("%w: %v", common.ErrSessionExpired, err)
	}
	newAccess := v.(string)

	retry := req.Clone(ctx)
	retry.Header.Set(common.AuthorizationHeader, common.BearerPrefix+newAccess)
	retry.Header.Set(common.RetryHeader, "1")
	retry.Header.Set(common.RequestIDHeader, r.Header.Get(common.RequestIDHeader))
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}

	retryResp, err := t.base.RoundTrip(retry)
	if err != nil {
		return nil, err
	}
	if retryResp.StatusCode == http.StatusUnauthorized {
		t.fireSessionExpired(ctx)
	}
	return retryResp, nil
}

func (t *AuthTransport) currentRefresher() Refresher {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.refresher
}

// fireSessionExpired invokes the hook once per armed period, no matter how
// many requests fail concurrently.
func (t *AuthTransport) fireSessionExpired(ctx context.Context) {
	if !t.expired.CompareAndSwap(false, true) {
		return
	}

	t.log.Warn(ctx, "session expired, forcing logout")

	t.mu.RLock()
	hook := t.onExpired
	t.mu.RUnlock()
	if hook != nil {
		hook()
	}
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4*1024))
	_ = body.Close()
}
