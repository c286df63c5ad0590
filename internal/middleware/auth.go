package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"

	"newsmarketplace/internal/models"
)

const principalKey = "user"

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid token")
)

// Claims are the bearer token claims issued by the marketplace auth service.
// The subject is the numeric user or admin id.
type Claims struct {
	Email       string   `json:"email,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for p.
func IssueToken(secret, issuer string, p *models.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email:       p.Email,
		Role:        p.Role,
		Permissions: p.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.ID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// AuthMiddleware authenticates requests from their bearer token.
type AuthMiddleware struct {
	secret []byte
	parser *jwt.Parser
}

// NewAuthMiddleware creates a new auth middleware instance. An empty issuer
// accepts tokens from any issuer.
func NewAuthMiddleware(secret, issuer string) *AuthMiddleware {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &AuthMiddleware{secret: []byte(secret), parser: jwt.NewParser(opts...)}
}

func (m *AuthMiddleware) principal(c fiber.Ctx) (*models.Principal, error) {
	h := c.Get(fiber.HeaderAuthorization)
	raw, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || raw == "" {
		return nil, errMissingToken
	}

	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidToken, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: bad subject %q", errInvalidToken, claims.Subject)
	}

	return &models.Principal{
		ID:          id,
		Email:       claims.Email,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}, nil
}

func unauthorized(c fiber.Ctx, err error) error {
	msg := "authentication required"
	if errors.Is(err, errInvalidToken) {
		msg = "invalid or expired token"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}

// RequireAuth ensures the request carries a valid token for an end-user.
// Admin tokens are rejected here; admins use the admin routes.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	p, err := m.principal(c)
	if err != nil {
		return unauthorized(c, err)
	}
	if p.Role != models.RoleUser {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "user access required"})
	}
	c.Locals(principalKey, p)
	return c.Next()
}

// RequireAdmin ensures the request carries a valid admin or super-admin token.
// Per-kind permissions are checked by the moderation service.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	p, err := m.principal(c)
	if err != nil {
		return unauthorized(c, err)
	}
	if !p.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
	}
	c.Locals(principalKey, p)
	return c.Next()
}

// RequireAny ensures the request carries a valid token of any role.
func (m *AuthMiddleware) RequireAny(c fiber.Ctx) error {
	p, err := m.principal(c)
	if err != nil {
		return unauthorized(c, err)
	}
	c.Locals(principalKey, p)
	return c.Next()
}

// OptionalAuth loads the principal if a valid token is present, but doesn't
// require one.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	if p, err := m.principal(c); err == nil {
		c.Locals(principalKey, p)
	}
	return c.Next()
}

// Principal returns the authenticated caller, or nil.
func Principal(c fiber.Ctx) *models.Principal {
	p, _ := c.Locals(principalKey).(*models.Principal)
	return p
}
