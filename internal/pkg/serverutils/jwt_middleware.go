package serverutils

import (
	"strings"

	"promptia-be/internal/pkg/credentials"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalsUserId    = "user_id"
	LocalsUserEmail = "user_email"
)

// JwtMiddleware authenticates the bearer token and stores the verified
// subject in ctx.Locals. The token manager is injected rather than read from
// the environment per request.
func JwtMiddleware(tokens *credentials.TokenManager) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return Unauthorized("No autorizado")
		}

		claims, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return Unauthorized("Token inválido")
		}

		ctx.Locals(LocalsUserId, claims.UserId)
		ctx.Locals(LocalsUserEmail, claims.Email)
		return ctx.Next()
	}
}
