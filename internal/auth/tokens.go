package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const staffTokenIssuer = "flightcore"

var ErrInvalidToken = errors.New("invalid staff token")

// IssueStaffToken signs an HS256 token for a staff member
func IssueStaffToken(secret, subject string, role StaffRole, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("staff token secret is empty")
	}
	if !role.Valid() {
		return "", time.Time{}, fmt.Errorf("unknown staff role %q", role)
	}

	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := &StaffClaims{
		RoleValue: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    staffTokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign staff token: %w", err)
	}
	return signed, exp, nil
}

// ParseStaffToken validates signature, expiry, issuer and role
func ParseStaffToken(secret, raw string) (*StaffClaims, error) {
	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(staffTokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || !claims.RoleValue.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
