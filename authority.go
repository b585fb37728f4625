package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// AuthoritySet is a deduplicated set of permission names, compound
// ACTION_RESOURCE identifiers such as "READ_ROLE".
type AuthoritySet map[string]struct{}

func NewAuthoritySet(names ...string) AuthoritySet {
	s := make(AuthoritySet, len(names))
	s.Add(names...)
	return s
}

func (s AuthoritySet) Add(names ...string) {
	for _, name := range names {
		if name != "" {
			s[name] = struct{}{}
		}
	}
}

func (s AuthoritySet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s AuthoritySet) Len() int {
	return len(s)
}

// Values returns the permission names in lexical order.
func (s AuthoritySet) Values() []string {
	values := make([]string, 0, len(s))
	for name := range s {
		values = append(values, name)
	}
	sort.Strings(values)
	return values
}

// roleGrant mirrors the role payload returned by the role service.
type roleGrant struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Permissions []permissionGrant `json:"permissions"`
}

type permissionGrant struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// RoleAuthorityResolver resolves authorities against the remote role
// service: GET /users/{uuid}/roles with a bearer token, flattening
// each role's permission list into a single deduplicated set.
type RoleAuthorityResolver struct {
	baseURL string
	client  *http.Client
	logger  Logger
}

type ResolverOption func(*RoleAuthorityResolver)

// WithResolverHTTPClient overrides the HTTP client used for role
// fetches.
func WithResolverHTTPClient(client *http.Client) ResolverOption {
	return func(r *RoleAuthorityResolver) {
		if client != nil {
			r.client = client
		}
	}
}

// WithResolverLogger overrides the resolver logger.
func WithResolverLogger(logger Logger) ResolverOption {
	return func(r *RoleAuthorityResolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRoleAuthorityResolver(apiBaseURL string, opts ...ResolverOption) *RoleAuthorityResolver {
	r := &RoleAuthorityResolver{
		baseURL: apiBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  defLogger{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve fetches the roles assigned to userUUID and flattens their
// permissions. A non-nil error always comes with an empty set so the
// caller can commit the result either way; the session becomes
// maximally restrictive until the next successful resolution.
func (r *RoleAuthorityResolver) Resolve(ctx context.Context, token, userUUID string) (AuthoritySet, error) {
	authorities := NewAuthoritySet()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/users/%s/roles", r.baseURL, userUUID), nil)
	if err != nil {
		return authorities, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build role fetch request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := r.client.Do(req)
	if err != nil {
		return authorities, goerrors.Wrap(err, goerrors.CategoryInternal, "role fetch failed")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		r.logger.Warn("Role fetch returned non-success status", "status", res.StatusCode, "user_uuid", userUUID)
		return authorities, goerrors.New("role fetch failed", goerrors.CategoryAuth).
			WithCode(res.StatusCode)
	}

	var roles []roleGrant
	if err := json.NewDecoder(res.Body).Decode(&roles); err != nil {
		return authorities, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to decode role response")
	}

	for _, role := range roles {
		for _, permission := range role.Permissions {
			authorities.Add(permission.Name)
		}
	}

	return authorities, nil
}

var _ AuthorityResolver = (*RoleAuthorityResolver)(nil)
