package middleware

import (
	"strings"

	"produtos/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Locals keys set by AuthRequired.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
)

// AuthRequired rejects requests that do not carry a valid bearer token and
// stores the token's user in the request locals. Rejections go through the
// app's ErrorHandler as 401 fiber errors.
func AuthRequired(authService *services.AuthService, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			logger.Debug("Rejected bearer token", zap.String("path", c.Path()), zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido ou expirado.")
		}

		raw, _ := claims[LocalUserID].(string)
		userID, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token sem usuário válido.")
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalUsername, claims[LocalUsername])
		return c.Next()
	}
}

// UserID returns the user stored by AuthRequired.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(LocalUserID).(uuid.UUID)
	return id, ok
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Cabeçalho Authorization ausente.")
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Use o formato 'Bearer <token>'.")
	}
	return strings.TrimSpace(token), nil
}
