package domain

import "strings"

type Session struct {
	AccessToken   string
	Profile       *UserProfile
	Bootstrapping bool
}

func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.AccessToken) != ""
}

// Clone returns a copy that shares no profile pointer with s.
func (s Session) Clone() Session {
	if s.Profile != nil {
		profile := *s.Profile
		s.Profile = &profile
	}
	return s
}
