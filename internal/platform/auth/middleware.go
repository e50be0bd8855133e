package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"library-backend/internal/platform/apierr"
)

const (
	CtxUserIDKey = "user_id"
	CtxRoleKey   = "role"
)

// RequireAuth: header（例: X-Library-Token）か Authorization: Bearer <token> を検証して context に sub/role を詰める
func RequireAuth(issuer *Issuer, header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c, header)
		if tokenStr == "" {
			abortUnauthorized(c, "missing token")
			return
		}

		p, err := issuer.Parse(tokenStr)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		c.Set(CtxUserIDKey, p.Subject)
		c.Set(CtxRoleKey, p.Role)
		c.Next()
	}
}

func extractToken(c *gin.Context, header string) string {
	if header != "" {
		if v := strings.TrimSpace(c.GetHeader(header)); v != "" {
			return v
		}
	}
	h := c.GetHeader("Authorization")
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apierr.Body(apierr.CodeUnauthorized, msg))
}

// RequireRole: 例) admin のみ許可したい時に追加
func RequireRole(roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]struct{})
	for _, r := range roles {
		if r == "" {
			continue
		}
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(CtxRoleKey)
		if _, allowed := roleSet[role]; !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, apierr.Body(apierr.CodeNotPrivileged, "forbidden"))
			return
		}
		c.Next()
	}
}

// PrincipalFrom は RequireAuth が詰めた値を取り出す。service には引数で渡すこと。
func PrincipalFrom(c *gin.Context) Principal {
	return Principal{
		Subject: c.GetString(CtxUserIDKey),
		Role:    c.GetString(CtxRoleKey),
	}
}
