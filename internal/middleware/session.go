package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/veritest/assess-api/internal/repository"
	"github.com/veritest/assess-api/internal/utils"
)

// SessionProtected validates the bearer token, resolves the login session it
// names, and rejects expired sessions. On success the candidate and session
// ids are bound to the request.
func SessionProtected(secret string, sessions repository.SessionRepository, now func() time.Time) fiber.Handler {
	if now == nil {
		now = time.Now
	}

	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		sessionID := extractSessionID(claims)
		if sessionID == 0 {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		session, err := sessions.GetByID(c.Context(), sessionID)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "session not found")
		}
		if session.Expired(now()) {
			return utils.SendError(c, fiber.StatusUnauthorized, "session expired")
		}

		c.Locals("session_id", session.ID)
		c.Locals("candidate_id", session.CandidateID)

		return c.Next()
	}
}

func extractSessionID(claims jwt.MapClaims) uint {
	keys := []string{"session_id", "sid", "sub"}
	for _, key := range keys {
		if value, ok := claims[key]; ok {
			if id, ok := value.(float64); ok && id > 0 {
				return uint(id)
			}
		}
	}
	return 0
}
