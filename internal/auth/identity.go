package auth

import (
	"github.com/gofiber/fiber/v2"

	"wastage-backend/internal/models"
	"wastage-backend/internal/store"
)

const (
	CtxUserIDKey    = "user_id"
	CtxUserRoleKey  = "user_role"
	CtxUserEmailKey = "user_email"
)

// Identity: isteği yapan kullanıcı. Servislere açıkça geçirilir.
type Identity struct {
	UserID string
	Email  string
	Role   models.UserRole
}

func (i Identity) Scope() store.Scope {
	return store.ScopeFor(i.Role, i.UserID)
}

func setIdentity(c *fiber.Ctx, id Identity) {
	c.Locals(CtxUserIDKey, id.UserID)
	c.Locals(CtxUserRoleKey, id.Role)
	c.Locals(CtxUserEmailKey, id.Email)
}

// IdentityFrom: middleware'in locals'a yazdığı kullanıcıyı okur
func IdentityFrom(c *fiber.Ctx) (Identity, error) {
	userID, ok := c.Locals(CtxUserIDKey).(string)
	if !ok || userID == "" {
		return Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}
	role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
	if !ok {
		return Identity{}, fiber.NewError(fiber.StatusForbidden, "Role information is missing")
	}
	email, _ := c.Locals(CtxUserEmailKey).(string)
	return Identity{UserID: userID, Email: email, Role: role}, nil
}
