// Package auth defines the session contract between the UI and the
// session layer.
package auth

import (
	"context"

	"github.com/medease/desktop/internal/types"
)

// State tags the outcome of a session resolution. Resolution never
// reports transport errors to callers; any failure collapses to
// Unauthenticated and control flow is driven by the tag alone.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

// Session is the tagged result of resolving the current user.
type Session struct {
	State   State
	Profile types.UserProfile
}

// Role returns the parsed role of the session, RoleUnknown when
// unauthenticated.
func (s Session) Role() types.Role {
	if s.State != Authenticated {
		return types.RoleUnknown
	}
	return types.ParseRole(s.Profile.Role)
}

// Service defines the session operations the UI depends on.
type Service interface {
	// Resolve fetches (or, on failure, invalidates) the current
	// session. Run once per protected view mount.
	Resolve(ctx context.Context) Session
	// Login authenticates and establishes a new session.
	Login(ctx context.Context, email, password string) (types.UserProfile, error)
	// Logout tears the session down, purging the stored credential
	// and cached profile as a pair.
	Logout() error
}
