package backend

import (
	"context"
	"net/http"
)

// UserDetails is the backend's record of the current session user.
type UserDetails struct {
	UserID    int    `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	IsVendor  bool   `json:"is_vendor"`
	VendorID  int    `json:"vendor_id,omitempty"`
}

// RegisterRequest is the account-creation payload. Password carries the
// SHA-1 hex digest, not the plain text — the wire format the backend
// accepts from the original client.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Password  string `json:"password"`
}

// LoginRequest carries password login credentials, with the same
// SHA-1 digest convention as registration.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserDetails fetches the authenticated user's record.
func (c *Client) UserDetails(ctx context.Context, token string) (UserDetails, error) {
	var details UserDetails
	if err := c.doData(ctx, "user_details", http.MethodGet, "/user/details", nil, token, &details); err != nil {
		return UserDetails{}, err
	}
	return details, nil
}

// Register creates an account and returns the issued access token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var resp TokenResponse
	if err := c.do(ctx, "user_register", http.MethodPost, "/user/register", nil, "", req, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (string, error) {
	var resp TokenResponse
	if err := c.do(ctx, "user_login", http.MethodPost, "/user/login", nil, "", req, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Logout invalidates the session server-side. Callers clear local state
// whether or not this succeeds.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, "user_logout", http.MethodDelete, "/user/logout", nil, token, nil, nil)
}
