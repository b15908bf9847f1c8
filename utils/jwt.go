package utils

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

func init() {
	secret, err := loadJWTSecret()
	if err != nil {
		log.Fatal(err)
	}
	JWTSecret = secret
}

// loadJWTSecret resolve o segredo JWT do ambiente. Em modo release o
// segredo e obrigatorio; o fallback de desenvolvimento so vale fora
// de release, para nenhum deploy rodar com segredo publicado.
func loadJWTSecret() ([]byte, error) {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret), nil
	}
	if os.Getenv("GIN_MODE") == "release" {
		return nil, errors.New("JWT_SECRET obrigatorio em modo release")
	}
	// fallback de desenvolvimento, igual ao .env de exemplo
	return []byte("DominioDashSecret2024"), nil
}

// CustomClaims claims emitidos pelo servico de autenticacao.
// Este core so consome o token; nunca faz login nem emite sessao.
type CustomClaims struct {
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken usado apenas em testes e ferramentas locais; em producao
// o token vem do colaborador de autenticacao.
func GenerateToken(companyID, role string) (string, error) {
	claims := &CustomClaims{
		CompanyID: companyID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "sistema-restaurante-dominio",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
