package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/pkg/jwt"
)

// Locals keys para UserID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
