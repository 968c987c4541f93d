// Package session owns the client's authentication lifecycle: who is logged
// in, the current access token, and the login/register/refresh/logout
// operations every other component relies on. It is the single source of
// truth for session state and the sole writer of the token store.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/mvasiljevs/commhub/internal/client/api"
	"github.com/mvasiljevs/commhub/internal/client/models"
	"github.com/mvasiljevs/commhub/internal/client/token"
	"github.com/mvasiljevs/commhub/internal/client/tokenstore"
	"github.com/mvasiljevs/commhub/internal/common"
	"github.com/mvasiljevs/commhub/internal/logging"
)

// Manager coordinates session state. All methods are safe for concurrent use;
// Refresh is additionally serialized so that direct calls and transport-driven
// calls cannot overlap.
type Manager struct {
	api   *api.Client
	store tokenstore.Store
	log   logging.Logger

	mu      sync.RWMutex
	user    *token.Identity
	access  string
	loading bool

	refreshMu sync.Mutex
}

// RegisterResult reports the outcome of a registration attempt. When the
// server requires email verification no tokens are issued and the session
// stays unauthenticated.
type RegisterResult struct {
	VerificationSent bool
	User             *models.UserProfile
}

type loginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type logoutRequest struct {
	Refresh string `json:"refresh"`
}

// tokenResponse is the token-bearing reply shared by the auth endpoints.
// Refresh is optional on refresh replies: rotation is server-controlled.
type tokenResponse struct {
	Token            string              `json:"token"`
	Refresh          string              `json:"refresh"`
	VerificationSent bool                `json:"verification_sent"`
	User             *models.UserProfile `json:"user"`
}

func NewManager(apiClient *api.Client, store tokenstore.Store, log logging.Logger) *Manager {
	return &Manager{
		api:   apiClient,
		store: store,
		log:   log,
	}
}

// Load restores the session from the token store at startup. A stored access
// token that decodes cleanly authenticates immediately; one that fails to
// decode falls back to a refresh attempt. A refresh token alone is treated as
// logged-out until a refresh actually succeeds.
func (m *Manager) Load(ctx context.Context) {
	m.setLoading(true)
	defer m.setLoading(false)

	access, _, err := m.store.Get(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to read stored credentials", "error", err)
		return
	}
	if access == "" {
		return
	}

	identity, err := token.Decode(access)
	if err == nil {
		m.setAuthenticated(identity, access)
		return
	}

	m.log.Warn(ctx, "stored access token is not decodable, attempting refresh", "error", err)
	if _, err := m.Refresh(ctx); err != nil {
		m.log.Warn(ctx, "startup refresh failed, clearing session", "error", err)
		m.clearLocal(ctx)
	}
}

// Login authenticates with an email-or-username identifier and password.
// On success the tokens are persisted and the derived identity is returned
// for caller convenience. On failure the session state is left untouched and
// the server's error is propagated for display.
func (m *Manager) Login(ctx context.Context, identifier string, password string) (*token.Identity, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	var resp tokenResponse
	err := m.api.Post(api.WithoutRefresh(ctx), "/users/login/",
		loginRequest{User: identifier, Password: password}, &resp)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return m.adoptTokens(ctx, resp.Token, resp.Refresh)
}

// Register creates a new account. Depending on server policy the reply either
// asks for email verification (no tokens, session stays unauthenticated) or
// carries tokens directly, in which case the full profile is fetched to
// populate the user beyond the bare token claims.
func (m *Manager) Register(ctx context.Context, email string, username string, password string) (*RegisterResult, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	var resp tokenResponse
	err := m.api.Post(api.WithoutRefresh(ctx), "/users/register/",
		registerRequest{Email: email, Username: username, Password: password}, &resp)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	if resp.VerificationSent {
		return &RegisterResult{VerificationSent: true}, nil
	}

	if _, err := m.adoptTokens(ctx, resp.Token, resp.Refresh); err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := m.api.Get(ctx, "/users/profile/", &profile); err != nil {
		// The session is already authenticated from token claims; the richer
		// profile is a nice-to-have.
		m.log.Warn(ctx, "failed to fetch profile after registration", "error", err)
		return &RegisterResult{}, nil
	}

	m.setAuthenticatedProfile(&profile)
	return &RegisterResult{User: &profile}, nil
}

// GoogleLogin exchanges a Google ID token for a CommHub session.
func (m *Manager) GoogleLogin(ctx context.Context, googleToken string) (*models.UserProfile, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	var resp tokenResponse
	err := m.api.Post(api.WithoutRefresh(ctx), "/users/google-login/",
		googleLoginRequest{Token: googleToken}, &resp)
	if err != nil {
		return nil, fmt.Errorf("google login failed: %w", err)
	}

	if _, err := m.adoptTokens(ctx, resp.Token, resp.Refresh); err != nil {
		return nil, err
	}
	if resp.User != nil {
		m.setAuthenticatedProfile(resp.User)
	}
	return resp.User, nil
}

// SetTokens injects externally obtained tokens (OAuth callback, email
// verification link) and runs the same decode-and-transition path as login.
func (m *Manager) SetTokens(ctx context.Context, access string, refresh string) error {
	_, err := m.adoptTokens(ctx, access, refresh)
	return err
}

// Refresh mints a new access token from the stored refresh token, persists it
// (together with a rotated refresh token if the server sent one), decodes it,
// and updates the session user. Any failure means the session is unusable;
// a failed refresh network call additionally clears the stored credentials.
//
// Refresh implements api.Refresher: the authenticated transport calls it when
// a request is rejected with 401.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	_, refresh, err := m.store.Get(ctx)
	if err != nil {
		return "", err
	}
	if refresh == "" {
		return "", common.ErrNoRefreshToken
	}

	var resp tokenResponse
	err = m.api.Post(api.WithoutRefresh(ctx), "/users/token/refresh/",
		refreshRequest{Refresh: refresh}, &resp)
	if err != nil {
		m.clearLocal(ctx)
		return "", fmt.Errorf("%w: %v", common.ErrRefreshFailed, err)
	}

	if resp.Refresh != "" {
		err = m.store.Set(ctx, resp.Token, resp.Refresh)
	} else {
		err = m.store.SetAccess(ctx, resp.Token)
	}
	if err != nil {
		return "", err
	}

	identity, err := token.Decode(resp.Token)
	if err != nil {
		// The network call succeeded, but an undecodable token is unusable:
		// this counts as a refresh failure.
		return "", fmt.Errorf("%w: %v", common.ErrRefreshFailed, err)
	}

	m.setAuthenticated(identity, resp.Token)
	m.log.Debug(ctx, "access token refreshed", "rotated", resp.Refresh != "")
	return resp.Token, nil
}

// Logout invalidates the refresh token server-side on a best-effort basis and
// unconditionally clears local state. Calling it while already unauthenticated
// is a no-op beyond the redundant cleanup.
func (m *Manager) Logout(ctx context.Context) error {
	_, refresh, err := m.store.Get(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to read stored credentials during logout", "error", err)
	}

	if refresh != "" {
		err := m.api.Post(api.WithoutRefresh(ctx), "/users/logout/",
			logoutRequest{Refresh: refresh}, nil)
		if err != nil {
			m.log.Warn(ctx, "server-side logout failed", "error", err)
		}
	}

	return m.clearLocal(ctx)
}

// adoptTokens persists a token pair and derives the session user from the
// access token claims.
func (m *Manager) adoptTokens(ctx context.Context, access string, refresh string) (*token.Identity, error) {
	if err := m.store.Set(ctx, access, refresh); err != nil {
		return nil, err
	}

	identity, err := token.Decode(access)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	m.setAuthenticated(identity, access)
	return identity, nil
}

func (m *Manager) clearLocal(ctx context.Context) error {
	err := m.store.Clear(ctx)

	m.mu.Lock()
	m.user = nil
	m.access = ""
	m.mu.Unlock()

	return err
}

func (m *Manager) setAuthenticated(identity *token.Identity, access string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = identity
	m.access = access
}

func (m *Manager) setAuthenticatedProfile(p *models.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	role := p.Role
	if role == "" {
		role = token.DefaultRole
	}
	m.user = &token.Identity{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		PublicID: p.PublicID,
		Role:     role,
	}
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = v
}

// User returns the current identity, or nil when unauthenticated.
func (m *Manager) User() *token.Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// AccessToken returns the session's current access token ("" when absent).
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

// IsAuthenticated reports whether a decoded user is present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// IsLoading reports whether an initial decode or refresh is in flight.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}
