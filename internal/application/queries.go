package application

import (
	"time"

	"github.com/bnema/driver-partner-cli/internal/domain"
)

type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

type Status struct {
	Screen  domain.Screen
	Profile *domain.UserProfile
	Claims  *TokenClaims
}

func (s Status) SignedIn() bool {
	return s.Screen.Tree == domain.ScreenMain || (s.Screen.Tree == domain.ScreenOnboarding && s.Screen.Route != domain.RouteHome)
}

func StatusFromSession(session domain.Session, claims *TokenClaims) Status {
	return Status{
		Screen:  domain.ResolveScreen(session),
		Profile: session.Profile,
		Claims:  claims,
	}
}
