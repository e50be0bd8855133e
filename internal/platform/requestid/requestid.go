package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	Header = "X-Request-ID"
	ctxKey = "request_id"
)

// Middleware は X-Request-ID を引き継ぐか新しく採番し、レスポンスにも付ける。
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ctxKey, id)
		c.Header(Header, id)
		c.Next()
	}
}

func Get(c *gin.Context) string {
	return c.GetString(ctxKey)
}
