package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/signal"
	"syscall"
	"time"

	client "github.com/agendanoir/go-client"
	"github.com/agendanoir/go-client/api"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

type App struct {
	cfg     *Config
	logger  *glog.BaseLogger
	session *client.SessionManager
	api     *api.Client
	srv     router.Server[*fiber.App]
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Debug),
		glog.WithName("agendanoir"),
		glog.WithAddSource(false),
	)

	fmt.Println(print.MaybePrettyJSON(cfg))

	jar, err := cookiejar.New(nil)
	if err != nil {
		panic(err)
	}

	store, err := client.NewCookieTokenStore(jar, cfg.APIBaseURL,
		client.WithCookieName(cfg.CookieName),
		client.WithCookieTTL(cfg.CookieTTL),
		client.WithProductionAttributes(cfg.Production),
	)
	if err != nil {
		panic(err)
	}

	// One HTTP client, one jar: the persisted token and outgoing
	// requests stay in sync the way a browser keeps them.
	httpClient := &http.Client{Jar: jar, Timeout: 30 * time.Second}

	apiClient := api.New(cfg.APIBaseURL,
		api.WithHTTPClient(httpClient),
		api.WithLogger(lgr.GetLogger("api")),
	)

	resolver := client.NewRoleAuthorityResolver(cfg.APIBaseURL,
		client.WithResolverHTTPClient(httpClient),
		client.WithResolverLogger(lgr.GetLogger("authority")),
	)

	session := client.NewSessionManager(store, apiClient, resolver,
		client.WithSessionLogger(lgr.GetLogger("session")),
	)
	apiClient.SetTokenSource(session.Token)

	engine := django.New(cfg.ViewsDir, ".html")

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			Views:             engine,
			PassLocalsToViews: true,
		}))
	})
	srv.Router().WithLogger(lgr.GetLogger("router"))

	app := &App{
		cfg:     cfg,
		logger:  lgr,
		session: session,
		api:     apiClient,
		srv:     srv,
	}
	app.registerRoutes()

	state := session.Initialize(context.Background())
	app.GetLogger("session").Info("session restored", "state", string(state))

	srv.Serve(cfg.ListenAddr)

	WaitExitSignal()

	session.Close()
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
