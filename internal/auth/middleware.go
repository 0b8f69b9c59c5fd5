package auth

import (
	"context"
	"strings"

	"wastage-backend/internal/models"
	"wastage-backend/internal/store"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
	}
	return strings.TrimSpace(parts[1]), nil
}

func JWTMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims, err := ParseToken(secret, tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		setIdentity(c, Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role})
		return c.Next()
	}
}

// TokenVerifier: *fbauth.Client bunu sağlar, testlerde sahte verilir
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseMiddleware: Firebase ID token doğrular, profil yoksa owner olarak açar.
// Rol her zaman profilden okunur, token claim'lerine güvenilmez.
func FirebaseMiddleware(verifier TokenVerifier, profiles store.ProfileStore, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, err := bearerToken(c)
		if err != nil {
			return err
		}

		token, err := verifier.VerifyIDToken(c.UserContext(), tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		email, _ := token.Claims["email"].(string)
		profile, err := store.EnsureProfile(c.UserContext(), profiles, token.UID, email)
		if err != nil {
			// depo yoksa kullanıcı yine de owner olarak devam eder (salt-okunur mod)
			log.WithError(err).WithField("user_id", token.UID).Warn("profile could not be loaded")
			profile = &models.User{ID: token.UID, Email: email, Role: models.RoleOwner}
		}

		setIdentity(c, Identity{UserID: profile.ID, Email: profile.Email, Role: profile.Role})
		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Role information is missing")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "You are not allowed to perform this action")
	}
}
