package client_test

import (
	"context"
	"mime/multipart"
	"time"

	client "github.com/agendanoir/go-client"
	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"
)

// MockLoginService implements client.LoginService
type MockLoginService struct {
	mock.Mock
}

func (m *MockLoginService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

// MockAuthorityResolver implements client.AuthorityResolver
type MockAuthorityResolver struct {
	mock.Mock
}

func (m *MockAuthorityResolver) Resolve(ctx context.Context, token, userUUID string) (client.AuthoritySet, error) {
	args := m.Called(ctx, token, userUUID)
	set, _ := args.Get(0).(client.AuthoritySet)
	if set == nil {
		set = client.NewAuthoritySet()
	}
	return set, args.Error(1)
}

// blockingResolver parks Resolve until released, so tests can overlap
// a logout with an in-flight authority resolution.
type blockingResolver struct {
	entered chan struct{}
	release chan struct{}
	result  client.AuthoritySet
}

func newBlockingResolver(result client.AuthoritySet) *blockingResolver {
	return &blockingResolver{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		result:  result,
	}
}

func (r *blockingResolver) Resolve(ctx context.Context, token, userUUID string) (client.AuthoritySet, error) {
	close(r.entered)
	<-r.release
	return r.result, nil
}

// mintToken builds an unsigned-trust test token. The decoder never
// verifies signatures, so any HMAC key works.
func mintToken(subject, userUUID string, expiresAt time.Time) string {
	claims := jwt.MapClaims{}
	if subject != "" {
		claims["sub"] = subject
	}
	if userUUID != "" {
		claims["userUuid"] = userUUID
	}
	if !expiresAt.IsZero() {
		claims["exp"] = expiresAt.Unix()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	if err != nil {
		panic(err)
	}
	return token
}

// testConfig implements client.Config for guard tests.
type testConfig struct {
	production bool
}

func (c testConfig) GetAPIBaseURL() string          { return "http://localhost:8080/api/v1" }
func (c testConfig) GetCookieName() string          { return "access_token" }
func (c testConfig) GetCookieTTL() time.Duration    { return 3 * time.Hour }
func (c testConfig) GetLoginRoute() string          { return "/login" }
func (c testConfig) GetRejectedRouteKey() string    { return "rejected_route" }
func (c testConfig) GetRejectedRouteDefault() string { return "/projects" }
func (c testConfig) IsProduction() bool             { return c.production }

// fakeContext is a hand-rolled router.Context that records the calls
// the guard makes. Unused methods return zero values.
type fakeContext struct {
	method      string
	originalURL string
	cookies     map[string]string

	status       int
	sentBody     string
	redirectPath string
	redirectCode int
	setCookies   []*router.Cookie
	nextCalled   bool
}

func newFakeContext(method, originalURL string) *fakeContext {
	return &fakeContext{
		method:      method,
		originalURL: originalURL,
		cookies:     map[string]string{},
	}
}

func (f *fakeContext) Next() error {
	f.nextCalled = true
	return nil
}

func (f *fakeContext) Context() context.Context         { return context.Background() }
func (f *fakeContext) SetContext(ctx context.Context)   {}
func (f *fakeContext) Path() string                     { return f.originalURL }
func (f *fakeContext) Method() string                   { return f.method }
func (f *fakeContext) Body() []byte                     { return nil }
func (f *fakeContext) OriginalURL() string              { return f.originalURL }
func (f *fakeContext) Referer() string                  { return "" }
func (f *fakeContext) OnNext(callback func() error)     {}

func (f *fakeContext) Status(code int) router.Context {
	f.status = code
	return f
}

func (f *fakeContext) SendString(s string) error {
	f.sentBody = s
	return nil
}

func (f *fakeContext) Send(b []byte) error        { return nil }
func (f *fakeContext) JSON(code int, val any) error { return nil }
func (f *fakeContext) NoContent(code int) error   { return nil }

func (f *fakeContext) Render(name string, bind any, layout ...string) error { return nil }

func (f *fakeContext) Redirect(path string, status ...int) error {
	f.redirectPath = path
	if len(status) > 0 {
		f.redirectCode = status[0]
	}
	return nil
}

func (f *fakeContext) RedirectToRoute(name string, data router.ViewContext, status ...int) error {
	return nil
}

func (f *fakeContext) RedirectBack(fallback string, status ...int) error { return nil }

func (f *fakeContext) SetHeader(key, val string) router.Context { return f }
func (f *fakeContext) Header(key string) string                 { return "" }

func (f *fakeContext) Get(key string, defaultValue any) any          { return defaultValue }
func (f *fakeContext) GetBool(key string, defaultValue bool) bool    { return defaultValue }
func (f *fakeContext) GetInt(key string, defaultValue int) int       { return defaultValue }
func (f *fakeContext) GetString(key, defaultValue string) string     { return defaultValue }
func (f *fakeContext) Set(key string, val any)                       {}

func (f *fakeContext) Bind(i any) error        { return nil }
func (f *fakeContext) BindJSON(i any) error    { return nil }
func (f *fakeContext) BindXML(i any) error     { return nil }
func (f *fakeContext) BindQuery(i any) error   { return nil }
func (f *fakeContext) CookieParser(i any) error { return nil }

func (f *fakeContext) Cookie(cookie *router.Cookie) {
	f.setCookies = append(f.setCookies, cookie)
	if cookie.Expires.Before(time.Now()) {
		delete(f.cookies, cookie.Name)
		return
	}
	f.cookies[cookie.Name] = cookie.Value
}

func (f *fakeContext) Cookies(key string, defaultValue ...string) string {
	if v, ok := f.cookies[key]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (f *fakeContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (f *fakeContext) ParamsInt(key string, defaultValue int) int { return defaultValue }

func (f *fakeContext) Query(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (f *fakeContext) QueryInt(key string, defaultValue int) int { return defaultValue }

func (f *fakeContext) Queries() map[string]string { return map[string]string{} }

func (f *fakeContext) Locals(key any, value ...any) any { return nil }

func (f *fakeContext) LocalsMerge(key any, value map[string]any) map[string]any { return value }

func (f *fakeContext) FormFile(key string) (*multipart.FileHeader, error) { return nil, nil }

func (f *fakeContext) FormValue(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (f *fakeContext) IP() string { return "" }

func (f *fakeContext) SendStatus(code int) error {
	f.status = code
	return nil
}

func (f *fakeContext) RouteName() string { return "" }

func (f *fakeContext) RouteParams() map[string]string { return map[string]string{} }
