package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Linkstone"
	JWTExpirationTime        = time.Hour * 24
)

// UserClaims Token 中携带的业务信息
type UserClaims struct {
	UserID uint64 `json:"user_id"`
	Plan   string `json:"plan"`
	jwt.RegisteredClaims
}
