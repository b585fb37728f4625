package main

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment at boot.
type Config struct {
	APIBaseURL           string        `env:"AGENDA_API_URL" envDefault:"http://localhost:8080/api/v1"`
	ListenAddr           string        `env:"AGENDA_LISTEN_ADDR" envDefault:":8572"`
	ViewsDir             string        `env:"AGENDA_VIEWS_DIR" envDefault:"./cmd/agendanoir/views"`
	Production           bool          `env:"AGENDA_PRODUCTION" envDefault:"false"`
	CookieName           string        `env:"AGENDA_COOKIE_NAME" envDefault:"access_token"`
	CookieTTL            time.Duration `env:"AGENDA_COOKIE_TTL" envDefault:"3h"`
	LoginRoute           string        `env:"AGENDA_LOGIN_ROUTE" envDefault:"/login"`
	RejectedRouteKey     string        `env:"AGENDA_REJECTED_ROUTE_KEY" envDefault:"rejected_route"`
	RejectedRouteDefault string        `env:"AGENDA_REJECTED_ROUTE_DEFAULT" envDefault:"/projects"`
	PageSize             int           `env:"AGENDA_PAGE_SIZE" envDefault:"10"`
}

func loadConfig() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) GetAPIBaseURL() string { return c.APIBaseURL }

func (c *Config) GetCookieName() string { return c.CookieName }

func (c *Config) GetCookieTTL() time.Duration { return c.CookieTTL }

func (c *Config) GetLoginRoute() string { return c.LoginRoute }

func (c *Config) GetRejectedRouteKey() string { return c.RejectedRouteKey }

func (c *Config) GetRejectedRouteDefault() string { return c.RejectedRouteDefault }

func (c *Config) IsProduction() bool { return c.Production }
