package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/booking-dashboard/internal/application/dto"
	"github.com/jhoicas/booking-dashboard/pkg/jwt"
)

// LocalUserID clave en c.Locals del usuario autenticado.
const LocalUserID = "user_id"

// SessionCookie cookie con el token de sesión del dashboard (alternativa al header Authorization).
const SessionCookie = "session"

// AuthMiddleware valida el token JWT (Bearer o cookie de sesión) y guarda el UserID en c.Locals.
// Con jwtSecret vacío no exige token.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if jwtSecret == "" {
			return c.Next()
		}
		tokenString, code := tokenFromRequest(c)
		if code != "" {
			return unauthorized(c, code, "token de sesión requerido")
		}
		userID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// tokenFromRequest devuelve el token o un código de error.
func tokenFromRequest(c *fiber.Ctx) (string, string) {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", "INVALID_TOKEN"
		}
		if tok := strings.TrimSpace(parts[1]); tok != "" {
			return tok, ""
		}
		return "", "MISSING_TOKEN"
	}
	if tok := c.Cookies(SessionCookie); tok != "" {
		return tok, ""
	}
	return "", "MISSING_TOKEN"
}

// unauthorized responde JSON a la API y texto plano al navegador.
func unauthorized(c *fiber.Ctx, code, msg string) error {
	if wantsJSON(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}
	return c.Status(fiber.StatusUnauthorized).SendString("401 Unauthorized")
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/") || c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}
