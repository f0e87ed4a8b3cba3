package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/supabase-community/supabase-go"
)

var ErrUnauthorized = errors.New("unauthorized")

// Admin is the authenticated caller of an admin route.
type Admin struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Authenticator turns a bearer token into an Admin or ErrUnauthorized.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Admin, error)
}

// ════════════════════════════════════════════════════════════
// Local verification of Supabase access tokens
// ════════════════════════════════════════════════════════════

// SupabaseClaims is the subset of a Supabase access token we rely on.
type SupabaseClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

const authenticatedRole = "authenticated"

// JWTAuthenticator verifies HS256 tokens signed with the project's JWT secret
// without a network round trip.
type JWTAuthenticator struct {
	secret []byte
	now    func() time.Time
}

func NewJWTAuthenticator(secret string) (*JWTAuthenticator, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	return &JWTAuthenticator{secret: []byte(secret), now: time.Now}, nil
}

func (a *JWTAuthenticator) Authenticate(_ context.Context, token string) (Admin, error) {
	claims := &SupabaseClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !parsed.Valid {
		return Admin{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.Subject == "" || claims.Role != authenticatedRole {
		return Admin{}, fmt.Errorf("%w: token is not a signed-in user", ErrUnauthorized)
	}
	return Admin{ID: claims.Subject, Email: claims.Email}, nil
}

// IssueToken signs a token shaped like a Supabase access token for local
// testing. Production tokens come from Supabase Auth.
func (a *JWTAuthenticator) IssueToken(admin Admin, ttl time.Duration) (string, error) {
	now := a.now()
	claims := SupabaseClaims{
		Email: admin.Email,
		Role:  authenticatedRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// ════════════════════════════════════════════════════════════
// Remote verification through Supabase Auth
// ════════════════════════════════════════════════════════════

type SupabaseAuthenticator struct {
	client *supabase.Client
}

func NewSupabaseAuthenticator(client *supabase.Client) *SupabaseAuthenticator {
	return &SupabaseAuthenticator{client: client}
}

func (a *SupabaseAuthenticator) Authenticate(ctx context.Context, token string) (Admin, error) {
	if err := ctx.Err(); err != nil {
		return Admin{}, err
	}
	user, err := a.client.Auth.WithToken(token).GetUser()
	if err != nil {
		return Admin{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return Admin{ID: user.ID.String(), Email: user.Email}, nil
}

// ChainAuthenticator accepts a token when any authenticator does, trying
// them in order.
type ChainAuthenticator []Authenticator

func (c ChainAuthenticator) Authenticate(ctx context.Context, token string) (Admin, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Admin{}, fmt.Errorf("%w: empty token", ErrUnauthorized)
	}
	err := error(ErrUnauthorized)
	for _, a := range c {
		admin, aerr := a.Authenticate(ctx, token)
		if aerr == nil {
			return admin, nil
		}
		err = aerr
	}
	return Admin{}, err
}
