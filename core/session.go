package core

import (
	"context"

	"github.com/medease/desktop/internal/auth"
	"github.com/medease/desktop/internal/types"
	"github.com/medease/desktop/pkg/logger"
	"github.com/medease/desktop/services"
)

// SessionManager owns the session lifecycle: it is created once at app
// start, resolves the current user for protected views and tears the
// session down at logout. It implements auth.Service.
type SessionManager struct {
	store   *CredentialStore
	authSvc *services.AuthService
}

// NewSessionManager wires the manager to the credential store and the
// auth service.
func NewSessionManager(store *CredentialStore, authSvc *services.AuthService) *SessionManager {
	return &SessionManager{store: store, authSvc: authSvc}
}

// Resolve fetches the authenticated user's profile and caches it. Every
// failure collapses to Unauthenticated: this layer does not distinguish
// a network outage from an expired session, that distinction only
// matters for user-facing messaging. A credential whose profile cannot
// be resolved is purged: the client never operates with a token it
// cannot attribute to a role.
func (m *SessionManager) Resolve(ctx context.Context) auth.Session {
	if _, ok := m.store.Token(); !ok {
		return auth.Session{State: auth.Unauthenticated}
	}

	profile, err := m.authSvc.Profile(ctx)
	if err != nil {
		log := logger.Get()
		log.Info().Err(err).Msg("session resolution failed, treating as unauthenticated")
		if purgeErr := m.store.Purge(); purgeErr != nil {
			log := logger.Get()
			log.Error().Err(purgeErr).Msg("failed to purge unattributable session")
		}
		return auth.Session{State: auth.Unauthenticated}
	}

	if err := m.store.SetProfile(profile); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Msg("failed to cache resolved profile")
	}
	return auth.Session{State: auth.Authenticated, Profile: profile}
}

// Login authenticates and establishes the new session, replacing any
// previous one wholesale. The returned profile drives the role-based
// redirect.
func (m *SessionManager) Login(ctx context.Context, email, password string) (types.UserProfile, error) {
	resp, err := m.authSvc.Login(ctx, email, password)
	if err != nil {
		return types.UserProfile{}, err
	}
	if err := m.store.SetSession(resp.Token, resp.User); err != nil {
		return types.UserProfile{}, err
	}
	log := logger.Get()
	log.Info().Str("role", resp.User.Role).Msg("logged in")
	return resp.User, nil
}

// Logout purges the token and cached profile pair.
func (m *SessionManager) Logout() error {
	log := logger.Get()
	log.Info().Msg("logging out")
	return m.store.Purge()
}

var _ auth.Service = (*SessionManager)(nil)
