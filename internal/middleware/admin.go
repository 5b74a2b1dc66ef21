package middleware

import (
	"crypto/subtle"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/config"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"golang.org/x/crypto/bcrypt"
)

const OperatorRealm = "Sighting moderation"

// OperatorRequired gates a route on the shared operator secret presented
// as the HTTP Basic password. The username is not checked.
func OperatorRequired(cfg *config.Config) fiber.Handler {
	check := OperatorSecretChecker(cfg.AdminPassword, cfg.AdminPasswordHash)

	return basicauth.New(basicauth.Config{
		Realm: OperatorRealm,
		Authorizer: func(_, password string) bool {
			return check(password)
		},
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="`+OperatorRealm+`"`)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "unauthorized",
			})
		},
	})
}

// OperatorSecretChecker compares against a bcrypt hash when one is
// configured, otherwise against the plain secret in constant time. With
// neither configured every credential is refused.
func OperatorSecretChecker(plain, hash string) func(string) bool {
	if hash != "" {
		hashed := []byte(hash)
		return func(presented string) bool {
			return bcrypt.CompareHashAndPassword(hashed, []byte(presented)) == nil
		}
	}
	if plain == "" {
		return func(string) bool { return false }
	}
	secret := []byte(plain)
	return func(presented string) bool {
		return subtle.ConstantTimeCompare(secret, []byte(presented)) == 1
	}
}
