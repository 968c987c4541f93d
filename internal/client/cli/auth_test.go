package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mvasiljevs/commhub/internal/client/api"
	"github.com/mvasiljevs/commhub/internal/client/session"
	"github.com/mvasiljevs/commhub/internal/client/token"
	"github.com/mvasiljevs/commhub/internal/client/tokenstore"
	"github.com/mvasiljevs/commhub/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	loginErr    error
	registerRes *session.RegisterResult
	registerErr error
	logoutErr   error
	setErr      error
	user        *token.Identity

	loginCalls  int
	logoutCalls int
	setAccess   string
	setRefresh  string
}

func (f *fakeSession) Load(ctx context.Context) {}

func (f *fakeSession) Login(ctx context.Context, identifier string, password string) (*token.Identity, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.user = &token.Identity{Username: identifier, Role: token.DefaultRole}
	return f.user, nil
}

func (f *fakeSession) Register(ctx context.Context, email string, username string, password string) (*session.RegisterResult, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerRes, nil
}

func (f *fakeSession) Logout(ctx context.Context) error {
	f.logoutCalls++
	f.user = nil
	return f.logoutErr
}

func (f *fakeSession) SetTokens(ctx context.Context, access string, refresh string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setAccess = access
	f.setRefresh = refresh
	f.user = &token.Identity{Username: "carol"}
	return nil
}

func (f *fakeSession) User() *token.Identity { return f.user }
func (f *fakeSession) IsAuthenticated() bool { return f.user != nil }

type captureSink struct {
	successes []string
	errors    []string
}

func (s *captureSink) Success(msg string) { s.successes = append(s.successes, msg) }
func (s *captureSink) Error(msg string)   { s.errors = append(s.errors, msg) }

func newTestApp(t *testing.T, sess *fakeSession) (*App, *captureSink) {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	sink := &captureSink{}
	return &App{
		session:   sess,
		transport: api.NewAuthTransport(tokenstore.NewMemoryStore(), log),
		sink:      sink,
		log:       log,
		reader:    bufio.NewReader(strings.NewReader("")),
	}, sink
}

func stubInputs(t *testing.T, texts []string, password string) {
	t.Helper()
	origText, origPassword := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText, getPassword = origText, origPassword
	})

	i := 0
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		require.Less(t, i, len(texts), "unexpected prompt: %s", prompt)
		v := texts[i]
		i++
		return v, nil
	}
	getPassword = func(w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

func TestAppLogin_Success(t *testing.T) {
	sess := &fakeSession{}
	app, sink := newTestApp(t, sess)
	stubInputs(t, []string{"alice"}, "secret")

	require.NoError(t, app.Login(context.Background()))
	require.Equal(t, 1, sess.loginCalls)
	require.True(t, sess.IsAuthenticated())
	require.Len(t, sink.successes, 1)
	require.Contains(t, sink.successes[0], "alice")
}

func TestAppLogin_FailureIsReturned(t *testing.T) {
	sess := &fakeSession{loginErr: errors.New("invalid credentials")}
	app, sink := newTestApp(t, sess)
	stubInputs(t, []string{"alice"}, "wrong")

	err := app.Login(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid credentials")
	require.False(t, sess.IsAuthenticated())
	require.Empty(t, sink.successes)
}

func TestAppRegister_VerificationSent(t *testing.T) {
	sess := &fakeSession{registerRes: &session.RegisterResult{VerificationSent: true}}
	app, sink := newTestApp(t, sess)
	stubInputs(t, []string{"alice@example.com", "alice"}, "secret")

	require.NoError(t, app.Register(context.Background()))
	require.False(t, sess.IsAuthenticated())
	require.Len(t, sink.successes, 1)
	require.Contains(t, sink.successes[0], "verification")
}

func TestAppRegister_ImmediateLogin(t *testing.T) {
	sess := &fakeSession{registerRes: &session.RegisterResult{}}
	app, sink := newTestApp(t, sess)
	stubInputs(t, []string{"alice@example.com", "alice"}, "secret")

	require.NoError(t, app.Register(context.Background()))
	require.Len(t, sink.successes, 1)
	require.Contains(t, sink.successes[0], "alice")
}

func TestAppLogout(t *testing.T) {
	sess := &fakeSession{user: &token.Identity{Username: "alice"}}
	app, sink := newTestApp(t, sess)

	require.NoError(t, app.Logout(context.Background()))
	require.Equal(t, 1, sess.logoutCalls)
	require.False(t, sess.IsAuthenticated())
	require.Len(t, sink.successes, 1)
}

func TestAppInjectTokens(t *testing.T) {
	sess := &fakeSession{}
	app, sink := newTestApp(t, sess)
	stubInputs(t, []string{"access-token", "refresh-token"}, "")

	require.NoError(t, app.InjectTokens(context.Background()))
	require.Equal(t, "access-token", sess.setAccess)
	require.Equal(t, "refresh-token", sess.setRefresh)
	require.Len(t, sink.successes, 1)
	require.Contains(t, sink.successes[0], "carol")
}
