package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// StateClaims OAuth state 参数中携带的信息
type StateClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}
