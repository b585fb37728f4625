package client

import (
	"context"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
)

// SessionState identifies where the session is in its lifecycle.
type SessionState string

const (
	StateUninitialized SessionState = "uninitialized"
	StateInitializing  SessionState = "initializing"
	StateAuthenticated SessionState = "authenticated"
	StateAnonymous     SessionState = "anonymous"
	StateTerminated    SessionState = "terminated"
)

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required, is.EmailFormat),
		validation.Field(&c.Password, validation.Required),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login credentials").
			WithCode(goerrors.CodeBadRequest)
	}
	return nil
}

// SessionManager owns the single client session: the bearer token,
// the claims derived from it, and the resolved authority set. It is
// the only component that mutates session state.
//
// Claims are always a pure derivation of the current token; the two
// are committed together under the same lock. Authority resolution
// lags behind token assignment, so consumers must treat an
// authenticated session with zero authorities as a normal transient
// window rather than an error.
type SessionManager struct {
	store    TokenStore
	login    LoginService
	resolver AuthorityResolver
	logger   Logger
	now      func() time.Time

	mu          sync.Mutex
	state       SessionState
	token       string
	claims      *TokenClaims
	authorities AuthoritySet
	loading     bool
}

type SessionOption func(*SessionManager)

// WithSessionLogger overrides the session logger.
func WithSessionLogger(logger Logger) SessionOption {
	return func(m *SessionManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithSessionClock injects a custom clock (useful for tests).
func WithSessionClock(clock func() time.Time) SessionOption {
	return func(m *SessionManager) {
		if clock != nil {
			m.now = clock
		}
	}
}

// NewSessionManager returns an empty, uninitialized session. Call
// Initialize once at application start and Close at shutdown.
func NewSessionManager(store TokenStore, login LoginService, resolver AuthorityResolver, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		store:       store,
		login:       login,
		resolver:    resolver,
		logger:      defLogger{},
		now:         time.Now,
		state:       StateUninitialized,
		authorities: NewAuthoritySet(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Initialize restores the session from the token store. A missing,
// malformed, or expired token settles to anonymous; a valid token
// settles to authenticated, with authorities resolved best-effort.
// It never returns an error: background session bootstrapping must
// not crash navigation.
func (m *SessionManager) Initialize(ctx context.Context) SessionState {
	m.begin(StateInitializing)
	defer m.end()

	token, ok := m.store.Read()
	if !ok {
		m.settleAnonymous()
		return m.State()
	}

	m.adoptToken(ctx, token)
	return m.State()
}

// Login authenticates against the login service and replaces the
// session wholesale on success. On failure the prior session is left
// untouched and the error is propagated for user-facing display.
func (m *SessionManager) Login(ctx context.Context, creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	m.begin("")
	defer m.end()

	token, err := m.login.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		m.logger.Error("Login failed", "error", err)
		return err
	}

	m.store.Write(token)
	m.adoptToken(ctx, token)
	return nil
}

// Logout deletes the persisted token and clears the session
// immediately. No network call is involved; it always succeeds and is
// idempotent.
func (m *SessionManager) Logout() {
	m.store.Delete()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.claims = nil
	m.authorities = NewAuthoritySet()
	if m.state != StateTerminated {
		m.state = StateAnonymous
	}
}

// Close disposes the session at application shutdown. The persisted
// token is left in place so the next start can restore it.
func (m *SessionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.claims = nil
	m.authorities = NewAuthoritySet()
	m.loading = false
	m.state = StateTerminated
}

// HasAuthority reports whether the current session holds the given
// permission name. Anonymous sessions hold nothing.
func (m *SessionManager) HasAuthority(name string) bool {
	m.expireIfNeeded()

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAuthenticated && m.authorities.Has(name)
}

// IsAuthenticated reports whether a token is currently held.
func (m *SessionManager) IsAuthenticated() bool {
	m.expireIfNeeded()

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAuthenticated
}

// Token returns the current bearer token, or false when anonymous.
func (m *SessionManager) Token() (string, bool) {
	m.expireIfNeeded()

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

// Claims returns a copy of the decoded claims, or nil when anonymous.
func (m *SessionManager) Claims() *TokenClaims {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claims == nil {
		return nil
	}
	claims := *m.claims
	return &claims
}

// Username returns the subject claim, empty when anonymous.
func (m *SessionManager) Username() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claims == nil {
		return ""
	}
	return m.claims.Subject()
}

// UserUUID returns the userUuid claim, empty when anonymous.
func (m *SessionManager) UserUUID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claims == nil {
		return ""
	}
	return m.claims.UserUUID
}

// Authorities returns the resolved permission names in lexical order.
func (m *SessionManager) Authorities() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authorities.Values()
}

func (m *SessionManager) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Loading reports whether initialization or a login is in flight.
func (m *SessionManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// adoptToken runs the decode, expiry-check, authority-resolve
// sequence shared by Initialize and Login.
func (m *SessionManager) adoptToken(ctx context.Context, token string) {
	claims, err := DecodeToken(token)
	if err != nil {
		m.logger.Error("Token decode failed", "error", err)
		m.store.Delete()
		m.settleAnonymous()
		return
	}

	if claims.Expired(m.now()) {
		m.logger.Info("Token expired, clearing stored session", "expired_at", claims.Expires())
		m.store.Delete()
		m.settleAnonymous()
		return
	}

	m.mu.Lock()
	m.token = token
	m.claims = claims
	m.authorities = NewAuthoritySet()
	m.state = StateAuthenticated
	m.mu.Unlock()

	if claims.UserUUID == "" {
		m.logger.Warn("Token carries no userUuid claim, skipping authority resolution")
		return
	}

	authorities, err := m.resolver.Resolve(ctx, token, claims.UserUUID)
	if err != nil {
		m.logger.Warn("Authority resolution failed", "error", err)
		authorities = NewAuthoritySet()
	}

	// Commit only if the token that keyed this resolution is still
	// current. A logout issued mid-flight must win; a stale result
	// must not resurrect a session the user ended.
	m.mu.Lock()
	if m.state == StateAuthenticated && m.token == token {
		m.authorities = authorities
	}
	m.mu.Unlock()
}

func (m *SessionManager) settleAnonymous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.claims = nil
	m.authorities = NewAuthoritySet()
	if m.state != StateTerminated {
		m.state = StateAnonymous
	}
}

// expireIfNeeded performs the implicit logout when the exp claim has
// passed since the session was established.
func (m *SessionManager) expireIfNeeded() {
	m.mu.Lock()
	expired := m.claims != nil && m.claims.Expired(m.now())
	m.mu.Unlock()

	if expired {
		m.logger.Info("Session token expired, logging out")
		m.Logout()
	}
}

func (m *SessionManager) begin(state SessionState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = true
	if state != "" {
		m.state = state
	}
}

func (m *SessionManager) end() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
}
