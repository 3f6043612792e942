package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key holding the verified model.Identity.
const IdentityKey = "identity"

type identityCtxKey struct{}

// Verifier turns a raw token into the identity it asserts.
type Verifier interface {
	Verify(token string) (model.Identity, error)
}

// TokenAuth accepts the raw Authorization header value as the token; there
// is no "Bearer " prefix. Both failures answer 403.
func TokenAuth(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "Access Denied"})
			return
		}
		id, err := v.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "Invalid Token"})
			return
		}
		c.Set(IdentityKey, id)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// IdentityFrom returns the identity TokenAuth stored on c.
func IdentityFrom(c *gin.Context) (model.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return model.Identity{}, false
	}
	id, ok := v.(model.Identity)
	return id, ok
}

func WithIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(model.Identity)
	return id, ok
}
