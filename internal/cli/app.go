package cli

import (
	"github.com/stonklab/stonk/config"
	"github.com/stonklab/stonk/internal/analytics"
	"github.com/stonklab/stonk/internal/api"
	"github.com/stonklab/stonk/internal/chat"
	"github.com/stonklab/stonk/internal/research"
	"github.com/stonklab/stonk/internal/store"
	"github.com/stonklab/stonk/internal/watchlist"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// storeToken reads the persisted auth token on every request, so a login
// in the same process takes effect without rebuilding the client.
type storeToken struct {
	st *store.Store
}

func (t storeToken) Token() string {
	return t.st.GetString(store.KeyAuthToken)
}

// App bundles the wired subsystems every command works against.
type App struct {
	Config    *config.Config
	Store     *store.Store
	Client    *api.Client
	Tracker   *analytics.Emitter
	Watchlist *watchlist.List
	Flow      *research.Flow
	Chat      *chat.Session
}

// newApp wires the full client stack from configuration.
func newApp(cfg *config.Config) (*App, error) {
	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout(), storeToken{st: st})
	tracker := analytics.New(client, st, Version, cfg.AnalyticsEnabled)

	return &App{
		Config:    cfg,
		Store:     st,
		Client:    client,
		Tracker:   tracker,
		Watchlist: watchlist.NewList(st),
		Flow:      research.NewFlow(client, tracker, cfg.StepTimeout()),
		Chat:      chat.NewSession(client, tracker),
	}, nil
}

// Close flushes in-flight analytics.
func (a *App) Close() {
	a.Tracker.SessionEnd()
	a.Tracker.Close()
}
