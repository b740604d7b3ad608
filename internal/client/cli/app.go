package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rferrari/mycommunity-app-sub000/internal/client/api"
	"github.com/rferrari/mycommunity-app-sub000/internal/client/auth"
	"github.com/rferrari/mycommunity-app-sub000/internal/client/cache"
	"github.com/rferrari/mycommunity-app-sub000/internal/client/config"
	"github.com/rferrari/mycommunity-app-sub000/internal/client/keystore"
	"github.com/rferrari/mycommunity-app-sub000/internal/client/models"
	"github.com/rferrari/mycommunity-app-sub000/internal/client/query"
	"github.com/rferrari/mycommunity-app-sub000/internal/client/storage"
	"github.com/rferrari/mycommunity-app-sub000/internal/common"
	"github.com/rferrari/mycommunity-app-sub000/internal/logging"

	_ "modernc.org/sqlite"
)

// App holds the wired client: local storage, API access, session state and
// the background pollers backing the feed and wallet views.
type App struct {
	config *config.Config
	log    logging.Logger

	db    *sql.DB
	auth  *auth.Manager
	api   api.Client
	cache cache.Repository

	feedQuery    *query.Query[[]models.Post]
	balanceQuery *query.Query[*models.Balance]
	balanceStop  context.CancelFunc

	// pollCtx scopes background pollers to the App lifetime; set in Run.
	pollCtx context.Context

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	sealKey, err := keystore.LoadSealKey(c.DeviceKeyPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load device key: %w", err)
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.HTTPTimeout)
	store := keystore.NewSQLiteStore(db, sealKey)

	a := &App{
		config: c,
		log:    log,
		db:     db,
		auth:   auth.NewManager(store, auth.NewHiveValidator(apiClient), log),
		api:    apiClient,
		cache:  cache.NewSQLiteRepository(db),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	a.feedQuery = query.New("feed", c.FeedPollInterval,
		query.WithCache("feed", apiClient.Feed, a.cache, time.Now, log), log)
	return a, nil
}

// Run restores the previous session, starts the feed poller and blocks in
// the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.auth.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.pollCtx = pollCtx

	go a.feedQuery.Run(pollCtx)
	a.syncPollers()

	a.Root(ctx)
	return nil
}

// Close releases the API client and the local database.
func (a *App) Close() {
	a.stopBalancePoller()
	if err := a.api.Close(); err != nil {
		a.log.Warn(context.Background(), "error closing api client", "err", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "error closing database", "err", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.Session().IsAuthenticated()
}

func (a *App) getStatus() string {
	s := a.auth.Session()
	switch {
	case s.IsSpectator():
		return "(spectator)"
	case s.IsAuthenticated():
		return fmt.Sprintf("(%s)", s.Username)
	default:
		return ""
	}
}

// syncPollers aligns background polling with the current session: a signed-in
// user gets a balance poller, spectators and signed-out users do not.
func (a *App) syncPollers() {
	s := a.auth.Session()
	if s.IsAuthenticated() && !s.IsSpectator() {
		a.startBalancePoller(s.Username)
	} else {
		a.stopBalancePoller()
	}
}

func (a *App) startBalancePoller(username string) {
	a.stopBalancePoller()

	key := "balance/" + username
	fetch := func(ctx context.Context) (*models.Balance, error) {
		return a.api.Balance(ctx, username)
	}

	q := query.New(key, a.config.BalancePollInterval,
		query.WithCache(key, fetch, a.cache, time.Now, a.log), a.log)

	base := a.pollCtx
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithCancel(base)
	a.balanceQuery = q
	a.balanceStop = cancel
	go q.Run(ctx)
}

func (a *App) stopBalancePoller() {
	if a.balanceStop != nil {
		a.balanceStop()
		a.balanceStop = nil
		a.balanceQuery = nil
	}
}

// currentUsername returns the signed-in username, or an error suitable for
// showing to the user when nobody (or only the spectator) is signed in.
func (a *App) currentUsername() (string, error) {
	s := a.auth.Session()
	if !s.IsAuthenticated() {
		return "", common.ErrorUnauthorized
	}
	if s.IsSpectator() {
		return "", common.ErrNoStoredCredentials
	}
	return s.Username, nil
}
