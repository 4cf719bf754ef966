package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/auth"
)

const identityKey = "identity"

// Identity is the token payload attached to the request for downstream handlers.
type Identity struct {
	ID               string
	StellarPublicKey string
	IsAdmin          bool
	IsStaff          bool
}

// TokenGuard validates bearer tokens and attaches the embedded identity.
func TokenGuard(jwtSecret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "Unauthenticated")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		claims, err := auth.ParseToken(tokenStr, jwtSecret)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "Invalid token")
		}

		c.Locals(identityKey, Identity{
			ID:               claims.UserID,
			StellarPublicKey: claims.StellarPublicKey,
			IsAdmin:          claims.IsAdmin,
			IsStaff:          claims.IsStaff,
		})
		return c.Next()
	}
}

// IdentityFrom returns the identity attached by TokenGuard, if any.
func IdentityFrom(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(identityKey).(Identity)
	return id, ok
}

// AdminOnly rejects identities without the admin flag. Compose after TokenGuard.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		if !ok || !id.IsAdmin {
			return fiber.NewError(http.StatusForbidden, "Access denied. Admin only.")
		}
		return c.Next()
	}
}

// StaffOrAdmin rejects identities with neither the staff nor the admin flag.
func StaffOrAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		if !ok || (!id.IsStaff && !id.IsAdmin) {
			return fiber.NewError(http.StatusForbidden, "Access denied. Staff or Admin only.")
		}
		return c.Next()
	}
}
