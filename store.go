package client

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// DefaultCookieName is the cookie under which the bearer token is
	// persisted.
	DefaultCookieName = "access_token"

	// DefaultTokenTTL is the fixed client-side cookie lifetime. It is
	// intentionally independent of the token's own exp claim; expiry
	// reconciliation happens when the session decodes the token.
	DefaultTokenTTL = 3 * time.Hour
)

// CookieTokenStore persists the bearer token as a cookie in an
// http.CookieJar scoped to the API origin. Sharing the jar with the
// HTTP client keeps the persisted credential and outgoing requests in
// sync, the way a browser would.
type CookieTokenStore struct {
	jar        http.CookieJar
	origin     *url.URL
	name       string
	ttl        time.Duration
	production bool
	now        func() time.Time
}

type CookieStoreOption func(*CookieTokenStore)

// WithCookieName overrides the cookie name.
func WithCookieName(name string) CookieStoreOption {
	return func(s *CookieTokenStore) {
		if name != "" {
			s.name = name
		}
	}
}

// WithCookieTTL overrides the fixed cookie lifetime.
func WithCookieTTL(ttl time.Duration) CookieStoreOption {
	return func(s *CookieTokenStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithProductionAttributes enables SameSite=Strict and the Secure
// flag. Development builds keep SameSite=Lax over plain HTTP.
func WithProductionAttributes(production bool) CookieStoreOption {
	return func(s *CookieTokenStore) {
		s.production = production
	}
}

// WithCookieClock injects a custom clock (useful for tests).
func WithCookieClock(clock func() time.Time) CookieStoreOption {
	return func(s *CookieTokenStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

func NewCookieTokenStore(jar http.CookieJar, apiBaseURL string, opts ...CookieStoreOption) (*CookieTokenStore, error) {
	origin, err := url.Parse(apiBaseURL)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid API base URL")
	}

	s := &CookieTokenStore{
		jar:    jar,
		origin: origin,
		name:   DefaultCookieName,
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *CookieTokenStore) Read() (string, bool) {
	for _, cookie := range s.jar.Cookies(s.origin) {
		if cookie.Name == s.name && cookie.Value != "" {
			return cookie.Value, true
		}
	}
	return "", false
}

func (s *CookieTokenStore) Write(token string) {
	s.jar.SetCookies(s.origin, []*http.Cookie{s.cookie(token, s.ttl)})
}

func (s *CookieTokenStore) Delete() {
	s.jar.SetCookies(s.origin, []*http.Cookie{s.cookie("", -time.Hour * (24 * 365))})
}

func (s *CookieTokenStore) cookie(value string, ttl time.Duration) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if s.production {
		sameSite = http.SameSiteStrictMode
	}

	return &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  s.now().Add(ttl),
		Secure:   s.production,
		SameSite: sameSite,
	}
}

// MemoryTokenStore is an in-process TokenStore for tests and headless
// callers that have no cookie jar to persist into.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Read() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.set
}

func (s *MemoryTokenStore) Write(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
}

func (s *MemoryTokenStore) Delete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
}

var _ TokenStore = (*CookieTokenStore)(nil)
var _ TokenStore = (*MemoryTokenStore)(nil)
