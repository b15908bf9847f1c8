package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/utils"
)

// WebSocketAuthMiddleware igual ao de HTTP, mas aceita o token via
// query string porque o handshake de WebSocket nao envia headers
// customizados a partir do browser.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil || claims.CompanyID == "" {
			c.AbortWithStatus(401)
			return
		}

		c.Set("company_id", claims.CompanyID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
