package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	stateIssuer     = "pinwall"
	StateExpiration = 10 * time.Minute
)

var ErrStateMismatch = errors.New("oauth state mismatch")

// RandomToken 生成 n 字节随机数的 base64url 编码
func RandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateStateToken 签发携带 nonce 的 state, nonce 同时写入浏览器 Cookie
func GenerateStateToken(secret, nonce string, now time.Time) (string, error) {
	claims := &StateClaims{
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(StateExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    stateIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign state token: %w", err)
	}
	return tokenString, nil
}

// ValidateStateToken 校验 state 签名与有效期, 并与 Cookie 中的 nonce 比对
func ValidateStateToken(secret, tokenString, cookieNonce string) error {
	claims := &StateClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(stateIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("parse state token: %w", err)
	}
	if !token.Valid {
		return ErrStateMismatch
	}

	if cookieNonce == "" || subtle.ConstantTimeCompare([]byte(claims.Nonce), []byte(cookieNonce)) != 1 {
		return ErrStateMismatch
	}
	return nil
}
