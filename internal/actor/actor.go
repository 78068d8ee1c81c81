package actor

import (
	"errors"

	"github.com/artbranch/admin-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Actor is the authenticated identity performing an operation. It is derived
// once at the HTTP boundary and passed explicitly into every service call so
// authorization checks stay testable in isolation.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsStaff() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleSuperAdmin
}

func (a Actor) IsSuperAdmin() bool {
	return a.Role == models.RoleSuperAdmin
}

// Owner builds the actor for a profile acting on its own record, e.g. an
// artist submitting verification proof.
func Owner(profileID uuid.UUID, role string) Actor {
	return Actor{ID: profileID, Role: role}
}

// Store pins a freshly-verified actor on the request, letting middleware
// override the role claim with the current profile row.
func Store(c *fiber.Ctx, a Actor) {
	c.Locals("actor", a)
}

// FromContext extracts the actor for the request: the middleware-verified
// one when present, otherwise straight from the JWT claims.
func FromContext(c *fiber.Ctx) (Actor, error) {
	if a, ok := c.Locals("actor").(Actor); ok {
		return a, nil
	}

	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Actor{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Actor{}, errors.New("missing sub claim")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return Actor{}, err
	}

	role, _ := claims["role"].(string)
	return Actor{ID: id, Role: role}, nil
}
