// Package users holds the registration form schema and its validation
// rules.
package users

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"

	"github.com/designmatch/web-client/backend"
)

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)
)

// RegistrationForm is the typed signup form. Fields are named explicitly
// rather than harvested from the submitted form by naming convention, and
// ToRequest is the single serialization point.
type RegistrationForm struct {
	FirstName       string
	LastName        string
	Email           string
	Mobile          string
	Password        string
	ConfirmPassword string

	// JoinAsPro marks the professional signup variant, which also
	// requires a profession selection.
	JoinAsPro  bool
	Profession string
}

// Validate checks the form and returns the first failure as a
// user-displayable message. The messages are part of the UI contract.
func (f RegistrationForm) Validate() error {
	if f.FirstName == "" {
		return fmt.Errorf("Please enter your first name.")
	}
	if f.LastName == "" {
		return fmt.Errorf("Please enter your last name.")
	}
	if f.Email == "" {
		return fmt.Errorf("Please enter your email.")
	}
	if !emailRegex.MatchString(f.Email) {
		return fmt.Errorf("Please enter a valid email.")
	}
	if f.Mobile == "" {
		return fmt.Errorf("Please enter your mobile number.")
	}
	if !mobileRegex.MatchString(f.Mobile) {
		return fmt.Errorf("Please enter a valid mobile number.")
	}
	if f.JoinAsPro && f.Profession == "" {
		return fmt.Errorf("Please select the professional type")
	}
	if f.Password == "" {
		return fmt.Errorf("Please enter your password.")
	}
	if f.Password != f.ConfirmPassword {
		return fmt.Errorf("Passwords do not match.")
	}
	return nil
}

// ToRequest builds the wire payload. The confirm field never leaves the
// form; the password travels as its SHA-1 hex digest, which is what the
// backend expects from this client.
func (f RegistrationForm) ToRequest() backend.RegisterRequest {
	return backend.RegisterRequest{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Mobile:    f.Mobile,
		Password:  DigestPassword(f.Password),
	}
}

// DigestPassword returns the SHA-1 hex digest the backend accepts in
// place of a plain-text password.
func DigestPassword(password string) string {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}
