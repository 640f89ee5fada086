// Package session manages the authenticated Paycon session.
//
// It covers account registration, login, logout, and credential
// persistence. The credential is a single opaque token issued by the
// service; it is stored between runs in a file with restricted permissions
// and cleared on logout. Absence of a stored credential surfaces as
// ErrNotLoggedIn, which callers translate into their login prompt.
//
// The token store never participates in request authorization directly:
// callers read the credential out and pass it explicitly into every API
// call.
package session
