// Package identity turns signed bearer tokens into principals and publishes
// sign-in/sign-out transitions.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bobmcallan/wealthflow/internal/common"
	"github.com/bobmcallan/wealthflow/internal/models"
)

var (
	// ErrInvalidToken is returned for tokens that fail verification or carry no subject.
	ErrInvalidToken = errors.New("invalid identity token")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("identity provider closed")
)

const avatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// Event is one identity transition. A nil Principal means signed out.
type Event struct {
	Principal *models.User
}

// Provider publishes identity transitions.
type Provider interface {
	Events() <-chan Event
}

// TokenProvider verifies HS256 tokens and emits an Event per sign-in or sign-out.
type TokenProvider struct {
	secret []byte
	issuer string
	expiry time.Duration
	logger *common.Logger

	mu      sync.Mutex
	events  chan Event
	current *models.User
	closed  bool
}

// NewTokenProvider creates a provider from the [auth] config section.
func NewTokenProvider(config common.AuthConfig, logger *common.Logger) *TokenProvider {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &TokenProvider{
		secret: []byte(config.JWTSecret),
		issuer: config.Issuer,
		expiry: config.GetTokenExpiry(),
		logger: logger,
		events: make(chan Event, 8),
	}
}

// Events returns the transition stream. It is closed by Close.
func (p *TokenProvider) Events() <-chan Event {
	return p.events
}

// Current returns the signed-in principal, or nil.
func (p *TokenProvider) Current() *models.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	u := *p.current
	return &u
}

// SignIn verifies token and publishes the principal it names.
func (p *TokenProvider) SignIn(ctx context.Context, token string) (*models.User, error) {
	user, err := p.Verify(token)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Sign-in rejected")
		return nil, err
	}
	if err := p.publish(ctx, &user); err != nil {
		return nil, err
	}
	p.logger.Info().Str("user_id", user.ID).Msg("Signed in")
	return &user, nil
}

// SignOut publishes a signed-out transition.
func (p *TokenProvider) SignOut(ctx context.Context) error {
	if err := p.publish(ctx, nil); err != nil {
		return err
	}
	p.logger.Info().Msg("Signed out")
	return nil
}

func (p *TokenProvider) publish(ctx context.Context, user *models.User) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.events <- Event{Principal: user}:
		p.current = user
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close ends the event stream.
func (p *TokenProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.events)
	}
	return nil
}

// Verify parses token and maps its claims to a User without publishing anything.
func (p *TokenProvider) Verify(token string) (models.User, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	}, opts...)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return UserFromClaims(claims)
}

// IssueToken signs a token for user. Intended for local tooling and tests.
func (p *TokenProvider) IssueToken(user models.User) (string, error) {
	if user.ID == "" {
		return "", fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"picture": user.AvatarURL,
		"iat":     now.Unix(),
		"exp":     now.Add(p.expiry).Unix(),
	}
	if p.issuer != "" {
		claims["iss"] = p.issuer
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// UserFromClaims maps token claims to a User. A missing name falls back to the
// local part of the email, then to "User"; a missing picture gets a generated avatar.
func UserFromClaims(claims jwt.MapClaims) (models.User, error) {
	uid, _ := claims.GetSubject()
	if uid == "" {
		return models.User{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	email := stringClaim(claims, "email")

	name := stringClaim(claims, "name")
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	if name == "" {
		name = "User"
	}

	avatar := stringClaim(claims, "picture")
	if avatar == "" {
		avatar = avatarBaseURL + url.QueryEscape(uid)
	}

	return models.User{ID: uid, Name: name, Email: email, AvatarURL: avatar}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return strings.TrimSpace(v)
}

var _ Provider = (*TokenProvider)(nil)
