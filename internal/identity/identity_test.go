package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/wealthflow/internal/common"
	"github.com/bobmcallan/wealthflow/internal/models"
)

func testProvider() *TokenProvider {
	return NewTokenProvider(common.AuthConfig{
		JWTSecret:   "test-secret",
		Issuer:      "wealthflow",
		TokenExpiry: "1h",
	}, common.NewSilentLogger())
}

func TestUserFromClaims_Fallbacks(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   models.User
	}{
		{
			name:   "all claims present",
			claims: jwt.MapClaims{"sub": "u1", "name": "王小明", "email": "ming@example.com", "picture": "https://img/x.png"},
			want:   models.User{ID: "u1", Name: "王小明", Email: "ming@example.com", AvatarURL: "https://img/x.png"},
		},
		{
			name:   "name from email local part",
			claims: jwt.MapClaims{"sub": "u2", "email": "amy.chen@example.com"},
			want:   models.User{ID: "u2", Name: "amy.chen", Email: "amy.chen@example.com", AvatarURL: avatarBaseURL + "u2"},
		},
		{
			name:   "no name and no email",
			claims: jwt.MapClaims{"sub": "u3"},
			want:   models.User{ID: "u3", Name: "User", AvatarURL: avatarBaseURL + "u3"},
		},
		{
			name:   "avatar seed is escaped",
			claims: jwt.MapClaims{"sub": "a b&c", "name": "X"},
			want:   models.User{ID: "a b&c", Name: "X", AvatarURL: avatarBaseURL + "a+b%26c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UserFromClaims(tt.claims)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserFromClaims_MissingSubject(t *testing.T) {
	_, err := UserFromClaims(jwt.MapClaims{"name": "x"})
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestIssueAndVerify(t *testing.T) {
	p := testProvider()
	token, err := p.IssueToken(models.User{ID: "u1", Email: "ming@example.com"})
	require.NoError(t, err)

	user, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "ming", user.Name)
}

func TestVerify_Rejects(t *testing.T) {
	p := testProvider()

	other := NewTokenProvider(common.AuthConfig{JWTSecret: "other-secret", Issuer: "wealthflow"}, nil)
	wrongKey, err := other.IssueToken(models.User{ID: "u1"})
	require.NoError(t, err)

	wrongIssuer, err := NewTokenProvider(common.AuthConfig{JWTSecret: "test-secret", Issuer: "someone-else"}, nil).
		IssueToken(models.User{ID: "u1"})
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"iss": "wealthflow",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong key":    wrongKey,
		"wrong issuer": wrongIssuer,
		"expired":      expired,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := p.Verify(token)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}

func TestSignInSignOutEvents(t *testing.T) {
	p := testProvider()
	ctx := context.Background()

	token, err := p.IssueToken(models.User{ID: "u1", Name: "王小明"})
	require.NoError(t, err)

	user, err := p.SignIn(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "王小明", user.Name)
	require.NotNil(t, p.Current())

	ev := <-p.Events()
	require.NotNil(t, ev.Principal)
	assert.Equal(t, "u1", ev.Principal.ID)

	require.NoError(t, p.SignOut(ctx))
	ev = <-p.Events()
	assert.Nil(t, ev.Principal)
	assert.Nil(t, p.Current())
}

func TestSignIn_InvalidTokenPublishesNothing(t *testing.T) {
	p := testProvider()

	_, err := p.SignIn(context.Background(), "bogus")
	require.Error(t, err)

	select {
	case ev := <-p.Events():
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestClose(t *testing.T) {
	p := testProvider()
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	_, open := <-p.Events()
	assert.False(t, open)
	assert.True(t, errors.Is(p.SignOut(context.Background()), ErrClosed))
}
