// Package client implements the Agenda Noir session core: the pieces a
// client application needs to authenticate against the remote API and
// gate its UI on the resulting permission set.
//
// Session lifecycle:
//   - SessionManager owns the single client session. Construct it at
//     application start, call Initialize once to restore a persisted
//     token, and Close it on shutdown. Login and Logout replace or
//     clear the session wholesale; there is no partial teardown.
//   - Token claims (subject, userUuid, exp) are decoded without
//     signature verification. They feed display and UX gating only;
//     the server remains the authority for every real decision.
//
// Authorities:
//   - AuthorityResolver turns a user identifier into a flattened,
//     deduplicated set of permission names (ACTION_RESOURCE strings)
//     by fetching the user's roles. Resolution failures degrade to an
//     empty set so a flaky role service can never crash navigation.
//
// Route guarding:
//   - RouteGuard redirects unauthenticated navigation to the login
//     entry point and RequireAuthority gates individual subtrees on a
//     permission name. Both consume the SessionManager directly.
package client
