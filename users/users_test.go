package users_test

import (
	"testing"

	"github.com/leagueforge/leagueforge/users"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := users.HashPassword("Sup3rSecret")
	require.NoError(t, err)
	require.NotEqual(t, "Sup3rSecret", hash)

	require.True(t, users.CheckPasswordHash("Sup3rSecret", hash))
	require.False(t, users.CheckPasswordHash("WrongPassw0rd", hash))
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Passw0rd", false},
		{"too short", "Pa0", true},
		{"no uppercase", "passw0rd", true},
		{"no lowercase", "PASSW0RD", true},
		{"no number", "Password", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := users.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCanAuthenticate(t *testing.T) {
	user := &users.User{Enabled: true}
	require.True(t, user.CanAuthenticate())

	for _, modify := range []func(*users.User){
		func(u *users.User) { u.Enabled = false },
		func(u *users.User) { u.AccountExpired = true },
		func(u *users.User) { u.AccountLocked = true },
		func(u *users.User) { u.CredentialsExpired = true },
	} {
		u := &users.User{Enabled: true}
		modify(u)
		require.False(t, u.CanAuthenticate())
	}
}

func TestAuthorities(t *testing.T) {
	user := &users.User{Roles: []string{users.RoleUser, users.RoleAdmin}}
	require.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, user.Authorities())
	require.True(t, user.HasRole(users.RoleAdmin))
	require.False(t, user.HasRole("LEAGUE_OWNER"))
}
