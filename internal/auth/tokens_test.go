package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffTokenRoundTrip(t *testing.T) {
	token, exp, err := IssueStaffToken("s3cret", "ops-17", RoleScheduler, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ParseStaffToken("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "ops-17", claims.UserID())
	assert.Equal(t, "SCHEDULER", claims.Role())
	assert.Equal(t, "JWT", claims.Source())
}

func TestParseStaffToken_Rejects(t *testing.T) {
	valid, _, err := IssueStaffToken("s3cret", "ops-17", RoleAdmin, time.Hour)
	require.NoError(t, err)
	expired, _, err := IssueStaffToken("s3cret", "ops-17", RoleAdmin, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"wrong secret", "other", valid},
		{"expired", "s3cret", expired},
		{"garbage", "s3cret", "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStaffToken(tt.secret, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestIssueStaffToken_Validation(t *testing.T) {
	_, _, err := IssueStaffToken("", "ops", RoleAdmin, time.Hour)
	assert.Error(t, err)

	_, _, err = IssueStaffToken("s3cret", "ops", StaffRole("PILOT"), time.Hour)
	assert.Error(t, err)
}

func TestRequestContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Nil(t, GetUserClaims(ctx))

	ctx = SetRequestID(ctx, "req-1")
	ctx = SetUserClaims(ctx, AnonymousClaims{})
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "anonymous", GetUserClaims(ctx).UserID())
}
