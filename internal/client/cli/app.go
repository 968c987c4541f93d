// Package cli implements the interactive CommHub command-line client.
package cli

import (
	"bufio"
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/mvasiljevs/commhub/internal/client/api"
	"github.com/mvasiljevs/commhub/internal/client/config"
	"github.com/mvasiljevs/commhub/internal/client/notify"
	"github.com/mvasiljevs/commhub/internal/client/services"
	"github.com/mvasiljevs/commhub/internal/client/session"
	"github.com/mvasiljevs/commhub/internal/client/token"
	"github.com/mvasiljevs/commhub/internal/client/tokenstore"
	"github.com/mvasiljevs/commhub/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionExpiredDelay gives the expiry notification time to be seen before the
// REPL drops back to the login prompt.
const sessionExpiredDelay = 2 * time.Second

// authSession is the slice of the session manager the CLI needs. A seam for
// tests.
type authSession interface {
	Load(ctx context.Context)
	Login(ctx context.Context, identifier string, password string) (*token.Identity, error)
	Register(ctx context.Context, email string, username string, password string) (*session.RegisterResult, error)
	Logout(ctx context.Context) error
	SetTokens(ctx context.Context, access string, refresh string) error
	User() *token.Identity
	IsAuthenticated() bool
}

type App struct {
	config    *config.Config
	store     *tokenstore.SQLiteStore
	session   authSession
	transport *api.AuthTransport
	sink      notify.Sink
	log       logging.Logger

	forums    *services.ForumService
	events    *services.EventService
	projects  *services.ProjectService
	resources *services.ResourceService
	users     *services.UserService

	reader  *bufio.Reader
	expired atomic.Bool
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	store, err := tokenstore.OpenSQLite(ctx, c.DatabasePath, c.KeyPath)
	if err != nil {
		log.Error(ctx, "error initializing credential store", "error", err)
		return nil, err
	}

	app := &App{
		config: c,
		store:  store,
		sink:   notify.NewConsoleSink(os.Stdout),
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}

	tr := api.NewAuthTransport(store, log)
	httpClient := api.NewClient(c.APIBaseURL, log,
		api.WithTransport(tr), api.WithTimeout(c.RequestTimeout))

	sess := session.NewManager(httpClient, store, log)
	tr.BindRefresher(sess)
	tr.OnSessionExpired(func() {
		app.sink.Error("Your session has expired. Please login again.")
		app.expired.Store(true)
	})

	app.transport = tr
	app.session = sess
	app.forums = services.NewForumService(httpClient)
	app.events = services.NewEventService(httpClient)
	app.projects = services.NewProjectService(httpClient)
	app.resources = services.NewResourceService(httpClient)
	app.users = services.NewUserService(httpClient)

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	a.session.Load(ctx)
	a.Root(ctx)
}

// handleExpiredSession drops the local session after the notification delay.
// Safe to call every loop iteration; does nothing while the session is alive.
func (a *App) handleExpiredSession(ctx context.Context) {
	if !a.expired.Load() {
		return
	}

	time.Sleep(sessionExpiredDelay)
	if err := a.session.Logout(ctx); err != nil {
		a.log.Warn(ctx, "cleanup after session expiry failed", "error", err)
	}
	a.transport.Reset()
	a.expired.Store(false)
}
