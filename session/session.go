// Package session holds the browser session state: the bearer token for
// the marketplace API and the identity derived from it.
package session

import (
	"time"
	"unicode/utf8"

	"github.com/designmatch/web-client/backend"
)

// Session is one browser session. LoggedIn is only ever true after a
// successful authenticated details fetch; the token may still be present
// while logged out (its validity is discovered opportunistically by the
// next authenticated call failing).
type Session struct {
	ID        string
	Token     string
	LoggedIn  bool
	User      backend.UserDetails
	Claims    TokenClaims
	CreatedAt time.Time
}

// IsVendor reports whether the session user has a vendor profile,
// consulting both the backend record and the decoded token claims. The
// claims win immediately after onboarding, before the record catches up.
func (s *Session) IsVendor() bool {
	return s.User.IsVendor || s.Claims.IsVendor
}

// DisplayName is the short name shown in the navigation shell.
func (s *Session) DisplayName() string {
	return s.User.FirstName
}

// Initials returns the two-letter avatar text, empty when names are not
// yet known. The first rune of each name is taken, not the first byte,
// so multibyte names stay valid UTF-8.
func (s *Session) Initials() string {
	if s.User.FirstName == "" || s.User.LastName == "" {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(s.User.FirstName)
	last, _ := utf8.DecodeRuneInString(s.User.LastName)
	return string(first) + string(last)
}

func (s *Session) clear() {
	s.Token = ""
	s.LoggedIn = false
	s.User = backend.UserDetails{}
	s.Claims = TokenClaims{}
}
