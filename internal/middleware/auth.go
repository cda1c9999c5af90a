package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/courseway-io/Courseway/internal/config"
	"github.com/courseway-io/Courseway/internal/modules/serializer"
	"github.com/courseway-io/Courseway/internal/pkg/keys"
)

// APIKeyAuth returns a middleware that authenticates kiosk and staff
// requests with a bearer API key. The key is matched by HMAC against the
// configured digest; when an argon2id hash is configured it is verified as
// well. With auth disabled the middleware is a no-op.
func APIKeyAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Auth.Enabled {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		_, authSpan := otel.Tracer("middleware").Start(ctx, "api_key_auth",
			trace.WithAttributes(attribute.String("middleware", "api_key_auth")))

		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		secret, ok := keys.ParseKey(raw, cfg.Auth.KeyPrefix)
		if !ok {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		lookup := keys.HMAC256Hex(cfg.Auth.SecretPepper, secret)
		if !keys.EqualHex(lookup, cfg.Auth.APIKeyHMAC) {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		if cfg.Auth.APIKeyPHC != "" {
			_, verifySpan := otel.Tracer("middleware").Start(ctx, "api_key_auth.verify_secret")
			pass, err := keys.VerifySecret(secret, cfg.Auth.SecretPepper, cfg.Auth.APIKeyPHC)
			verifySpan.End()
			if err != nil || !pass {
				authSpan.SetAttributes(attribute.Bool("authenticated", false))
				authSpan.End()
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
				return
			}
		}

		authSpan.SetAttributes(attribute.Bool("authenticated", true))
		authSpan.End()

		c.Next()
	}
}
