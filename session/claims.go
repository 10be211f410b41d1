package session

import (
	"errors"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the fields decoded from the bearer token. The client
// has no verification key for the backend's tokens, so the decode is
// unverified — the claims are display/state hints, never an authorization
// decision; the backend re-checks the token on every authenticated call.
type TokenClaims struct {
	Sub      string
	Email    string
	IsVendor bool
	VendorID int
	Iat      int64
	Exp      int64
}

// DecodeClaims extracts claims from a raw JWT without verifying the
// signature.
func DecodeClaims(rawToken string) (TokenClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return TokenClaims{}, errors.New("empty token")
	}

	unverifiedToken, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return TokenClaims{}, err
	}

	claims, ok := unverifiedToken.Claims.(jwtlib.MapClaims)
	if !ok {
		return TokenClaims{}, errors.New("error extracting claims")
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	isVendor, _ := claims["is_vendor"].(bool)
	vendorID, _ := claims["vendor_id"].(float64)
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)

	return TokenClaims{
		Sub:      sub,
		Email:    email,
		IsVendor: isVendor,
		VendorID: int(vendorID),
		Iat:      int64(iat),
		Exp:      int64(exp),
	}, nil
}
