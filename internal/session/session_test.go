package session_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/notewind/notewind/internal/model"
	appErr "github.com/notewind/notewind/internal/pkg/errors"
	"github.com/notewind/notewind/internal/session"
)

func signToken(t *testing.T, userID, email string, exp time.Time) string {
	t.Helper()
	claims := jwtlib.MapClaims{
		"user_id": userID,
		"email":   email,
	}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSetTokenPopulatesSnapshot(t *testing.T) {
	st := session.NewState()
	exp := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.SetToken(signToken(t, "u1", "student@example.com", exp)))

	snap := st.Current()
	require.True(t, snap.LoggedIn)
	require.Equal(t, "u1", snap.UserID)
	require.Equal(t, "student@example.com", snap.Email)
	require.True(t, snap.ExpiresAt.Equal(exp))
	require.NotEmpty(t, st.Token())
}

func TestSetTokenRejectsGarbage(t *testing.T) {
	st := session.NewState()

	require.ErrorIs(t, st.SetToken("not-a-jwt"), appErr.ErrInvalid)

	// A well-formed token without a user id is no better.
	anon, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{"email": "x@y.z"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	require.ErrorIs(t, st.SetToken(anon), appErr.ErrInvalid)

	require.False(t, st.Current().LoggedIn)
}

func TestSetTokenKeepsProfile(t *testing.T) {
	st := session.NewState()
	require.NoError(t, st.SetToken(signToken(t, "u1", "", time.Time{})))
	st.SetProfile(&model.User{ID: "u1", Name: "Ada"})

	// A token refresh must not wipe the already fetched profile.
	require.NoError(t, st.SetToken(signToken(t, "u1", "", time.Time{})))
	require.NotNil(t, st.Current().Profile)
	require.Equal(t, "Ada", st.Current().Profile.Name)
}

func TestClear(t *testing.T) {
	st := session.NewState()
	require.NoError(t, st.SetToken(signToken(t, "u1", "", time.Time{})))
	st.SetProfile(&model.User{ID: "u1", Name: "Ada", Interests: []string{"math"}})

	st.Clear()

	snap := st.Current()
	require.False(t, snap.LoggedIn)
	require.Empty(t, snap.UserID)
	require.Nil(t, snap.Profile)
	require.Empty(t, st.Token())
}

func TestOnChange(t *testing.T) {
	st := session.NewState()
	var seen []session.Snapshot
	st.OnChange(func(snap session.Snapshot) {
		seen = append(seen, snap)
	})

	require.NoError(t, st.SetToken(signToken(t, "u1", "", time.Time{})))
	st.SetProfile(&model.User{ID: "u1"})
	st.Clear()

	require.Len(t, seen, 3)
	require.True(t, seen[0].LoggedIn)
	require.NotNil(t, seen[1].Profile)
	require.False(t, seen[2].LoggedIn)
}

func TestNeedsOnboarding(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		want bool
	}{
		{name: "anonymous", snap: session.Snapshot{}, want: false},
		{name: "logged in without profile", snap: session.Snapshot{LoggedIn: true}, want: true},
		{
			name: "profile missing name",
			snap: session.Snapshot{LoggedIn: true, Profile: &model.User{Interests: []string{"math"}}},
			want: true,
		},
		{
			name: "profile missing interests",
			snap: session.Snapshot{LoggedIn: true, Profile: &model.User{Name: "Ada"}},
			want: true,
		},
		{
			name: "complete profile",
			snap: session.Snapshot{LoggedIn: true, Profile: &model.User{Name: "Ada", Interests: []string{"math"}}},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, session.NeedsOnboarding(tt.snap))
		})
	}
}
