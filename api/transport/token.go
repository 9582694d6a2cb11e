package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/GitShailendra/HackOnX-sub001/logging"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys under which the authenticated actor is exposed to handlers.
const (
	ContextActorEmail = "actorEmail"
	ContextActorName  = "actorName"
	ContextActorRole  = "actorRole"
)

type actorClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the bearer tokens handed out at login.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
}

func (t *TokenIssuer) Issue(email, name, role string) (string, error) {
	now := time.Now().UTC()
	claims := &actorClaims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}

func (t *TokenIssuer) parse(raw string) (*actorClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &actorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*actorClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// RoleAuthMiddleware resolves the Authorization bearer token to an actor and
// rejects the request unless the actor holds one of the given roles.
func RoleAuthMiddleware(issuer *TokenIssuer, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if header == "" || raw == header {
			logging.Log.Warnf("AUTH: missing bearer token on %s", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := issuer.parse(raw)
		if err != nil {
			logging.Log.Warnf("AUTH: invalid bearer token on %s: %v", c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid bearer token"})
			return
		}
		if !allowed[claims.Role] {
			logging.Log.Warnf("AUTH: role %s not allowed on %s", claims.Role, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient role"})
			return
		}

		c.Set(ContextActorEmail, claims.Subject)
		c.Set(ContextActorName, claims.Name)
		c.Set(ContextActorRole, claims.Role)
		c.Next()
	}
}
