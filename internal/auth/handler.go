package auth

import (
	"errors"
	"strings"

	"wastage-backend/internal/apperr"
	"wastage-backend/internal/models"
	"wastage-backend/internal/store"
	"wastage-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	Role            models.UserRole `json:"role"`
	WeeklyWasteGoal *float64        `json:"weekly_waste_goal"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Role: u.Role, WeeklyWasteGoal: u.WeeklyWasteGoal}
}

func createUser(c *fiber.Ctx, users store.ProfileStore, role models.UserRole) (*models.User, error) {
	var body RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if err := validation.Struct(body); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Password could not be hashed")
	}

	user := &models.User{
		Email:        body.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := users.CreateUser(c.UserContext(), user); err != nil {
		return nil, apperr.FromStore(err, "User could not be created")
	}
	return user, nil
}

// POST /api/auth/register — yeni kullanıcılar her zaman owner
func RegisterHandler(users store.ProfileStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := createUser(c, users, models.RoleOwner)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
	}
}

// POST /api/auth/register-super-admin — sadece ilk super admin
func RegisterSuperAdminHandler(users store.ProfileStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := users.CountUsersByRole(c.UserContext(), models.RoleSuperAdmin)
		if err != nil {
			return apperr.FromStore(err, "Users could not be counted")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "A super admin already exists")
		}

		user, err := createUser(c, users, models.RoleSuperAdmin)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
	}
}

func LoginHandler(secret string, users store.ProfileStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		user, err := users.FindUserByEmail(c.UserContext(), body.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
			}
			return apperr.FromStore(err, "Login failed")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}

		token, err := GenerateToken(secret, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token could not be created")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user":  toUserResponse(user),
		})
	}
}

func MeHandler(users store.ProfileStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := IdentityFrom(c)
		if err != nil {
			return err
		}

		if user, err := users.GetUserProfile(c.UserContext(), id.UserID); err == nil {
			return c.JSON(toUserResponse(user))
		}

		// Fallback: profil okunamazsa token bilgisinden döndür
		return c.JSON(UserResponse{ID: id.UserID, Email: id.Email, Role: id.Role})
	}
}
