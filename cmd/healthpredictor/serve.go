package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gabrielmiguelok/healthpredictor/client"
	"github.com/gabrielmiguelok/healthpredictor/content"
	"github.com/gabrielmiguelok/healthpredictor/internal/pages"
	"github.com/gabrielmiguelok/healthpredictor/pkg/core"
	"github.com/gabrielmiguelok/healthpredictor/pkg/health"
	"github.com/gabrielmiguelok/healthpredictor/pkg/logging"
	"github.com/gabrielmiguelok/healthpredictor/pkg/router"
	"github.com/gabrielmiguelok/healthpredictor/pkg/security"
	"github.com/gabrielmiguelok/healthpredictor/pkg/shutdown"
	"github.com/gabrielmiguelok/healthpredictor/pkg/state"
	"github.com/gabrielmiguelok/healthpredictor/pkg/transport"
	"github.com/gabrielmiguelok/healthpredictor/plugins/auth"
)

var serveFlags struct {
	config  string
	addr    string
	content string
	dev     bool
	watch   bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web site",
	Long: `Serve the Health Predictor site.

Configuration is read from --config (YAML) on top of the defaults, then
HEALTHPREDICTOR_* environment variables, then flags.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVarP(&serveFlags.config, "config", "c", "", "YAML config file")
	f.StringVar(&serveFlags.addr, "addr", "", "listen address (overrides config)")
	f.StringVar(&serveFlags.content, "content", "", "site content YAML (overrides the embedded copy)")
	f.BoolVar(&serveFlags.dev, "dev", false, "development mode: debug logs, relaxed security")
	f.BoolVar(&serveFlags.watch, "watch", false, "reload site content when the file changes")
}

func loadServeConfig() (core.Config, error) {
	var (
		cfg core.Config
		err error
	)
	if serveFlags.dev && serveFlags.config == "" {
		cfg = core.DevelopmentConfig()
	} else {
		cfg, err = core.LoadConfig(serveFlags.config)
		if err != nil {
			return cfg, err
		}
		if serveFlags.dev {
			cfg.Debug = true
			cfg.Log.Level = "debug"
		}
	}
	if serveFlags.addr != "" {
		cfg.Address = serveFlags.addr
	}
	if serveFlags.content != "" {
		cfg.Content.Path = serveFlags.content
	}
	if serveFlags.watch {
		cfg.Content.Watch = true
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)

	if cfg.Security.CSRFEnabled && cfg.Security.CSRFSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return err
		}
		cfg.Security.CSRFSecret = secret
		logger.Warn("no CSRF secret configured; using a random one, tokens reset on restart",
			logging.String("env", core.EnvCSRFSecret))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	return a.run(cmd.Context())
}

type app struct {
	cfg      core.Config
	logger   logging.Logger
	content  *content.Provider
	store    *state.MemoryStore
	router   *router.Router
	checker  *health.Checker
	handler  http.Handler
	shutdown *shutdown.Handler
}

// newApp wires the router, pages, health checks and shutdown hooks.
func newApp(cfg core.Config, logger logging.Logger) (*app, error) {
	provider, err := content.NewProvider(cfg.Content.Path)
	if err != nil {
		return nil, err
	}

	store := state.NewMemoryStore(state.WithCleanupInterval(cfg.Session.CleanupInterval))

	opts := []router.Option{
		router.WithLogger(logger),
		router.WithStateManager(state.NewStateManager(store, state.WithTTL(cfg.Session.TTL))),
		router.WithTransportConfig(transport.Config{
			ReadTimeout:     cfg.Timeouts.WebSocketRead,
			WriteTimeout:    cfg.Timeouts.WebSocketWrite,
			MaxMessageSize:  cfg.MaxMessageSize,
			AllowedOrigins:  cfg.Security.AllowedOrigins,
			InsecureDevMode: cfg.Security.InsecureDevMode,
			Logger:          logger,
		}),
		router.WithSessionConfig(cfg.Session),
		router.WithTimeouts(cfg.Timeouts),
		router.WithSecureCookies(!cfg.Debug),
	}

	csrfField := ""
	if cfg.Security.CSRFEnabled {
		csrf := security.NewCSRFProtection(security.CSRFConfig{
			Secret: []byte(cfg.Security.CSRFSecret),
			MaxAge: cfg.Security.CSRFTokenExpiry,
		})
		csrfField = csrf.FormField()
		opts = append(opts, router.WithCSRF(csrf))
	}

	r := router.New(opts...)
	r.Use(logging.RequestLogger(logger), router.Recover(logger))
	if cfg.Security.SecureHeaders {
		r.Use(router.SecureHeaders())
	}

	signIn, err := auth.New(auth.DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err := pages.Register(r, pages.Deps{
		Content:   provider,
		Auth:      signIn,
		CSRFField: csrfField,
	}, pages.WithScript("/"+client.ScriptName)); err != nil {
		return nil, err
	}
	r.Handle("/"+client.ScriptName, client.ScriptHandler())

	checker := health.NewChecker(version)
	checker.AddCriticalCheck("state", health.PingCheck(store.Ping), time.Second)
	checker.AddCriticalCheck("content", health.ReadyCheck("content", provider.Loaded), time.Second)
	checker.AddCheck("live_sessions", health.CapacityCheck("live sessions", r.Sessions().Count, cfg.Session.MaxSessions), time.Second)
	r.Handle("/healthz", checker.ReadinessHandler())
	r.Handle("/livez", checker.LivenessHandler())

	return &app{
		cfg:      cfg,
		logger:   logger,
		content:  provider,
		store:    store,
		router:   r,
		checker:  checker,
		handler:  r,
		shutdown: shutdown.NewHandler(cfg.Timeouts.GracefulShutdown, logger),
	}, nil
}

// run serves until ctx is cancelled or the listener fails, then runs the
// shutdown hooks.
func (a *app) run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Address,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	a.shutdown.Register(shutdown.HTTPServerHook("http server", srv.Shutdown))
	a.shutdown.RegisterFunc("live sessions", shutdown.PriorityLive, a.router.Shutdown)
	a.shutdown.Register(shutdown.CloseableHook("state store", shutdown.PriorityStore, a.store))

	if a.cfg.Content.Watch {
		w, err := content.NewWatcher(a.content, a.logger)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("watch content: %w", err)
		}
		a.shutdown.RegisterFunc("content watcher", shutdown.PriorityWatcher, func(context.Context) error {
			return w.Stop()
		})
	}

	if syncer, ok := a.logger.(interface{ Sync() error }); ok {
		a.shutdown.RegisterFunc("logger", shutdown.PriorityLast, func(context.Context) error {
			// zap returns EINVAL syncing a terminal stderr.
			_ = syncer.Sync()
			return nil
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("listening",
			logging.String("addr", a.cfg.Address),
			logging.Bool("debug", a.cfg.Debug),
			logging.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")
		return a.shutdown.Shutdown()
	})
	return g.Wait()
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate csrf secret: %w", err)
	}
	return fmt.Sprintf("%x", b), nil
}
