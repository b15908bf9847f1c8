package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/utils"
)

// CompanyAuthMiddleware consome o token do colaborador de autenticacao
// e injeta a empresa ativa no contexto. Login e selecao de empresa
// acontecem fora deste core.
func CompanyAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			token = c.Query("token")
		}

		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token nao encontrado"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(token, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		if claims.CompanyID == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token sem empresa ativa"))
			c.Abort()
			return
		}

		c.Set("company_id", claims.CompanyID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
